package header_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ghettovoice/rtsp/header"
)

var _ = Describe("IsStandard", Label("header", "standard"), func() {
	It("recognizes all 58 RFC 7826 §16 header names, case-insensitively", func() {
		Expect(header.IsStandard(header.CSeq)).To(BeTrue())
		Expect(header.IsStandard(header.Transport)).To(BeTrue())

		lower, err := header.ParseName("transport")
		Expect(err).NotTo(HaveOccurred())
		Expect(header.IsStandard(lower)).To(BeTrue())
	})

	It("reports false for an extension header name", func() {
		n, err := header.ParseName("X-My-Header")
		Expect(err).NotTo(HaveOccurred())
		Expect(header.IsStandard(n)).To(BeFalse())
	})

	It("distinguishes Require from Proxy-Require", func() {
		Expect(header.IsStandard(header.Require)).To(BeTrue())
		Expect(header.IsStandard(header.ProxyRequire)).To(BeTrue())
		Expect(header.Require.Equal(header.ProxyRequire)).To(BeFalse())
	})
})
