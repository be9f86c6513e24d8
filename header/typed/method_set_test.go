package typed_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/header/typed"
)

var _ = Describe("Public and Allow", Label("typed", "method-set"), func() {
	It("round-trips Public through Encode/Decode", func() {
		p := typed.Public{MethodSet: typed.MethodSet{
			typed.MethodDescribe: {},
			typed.MethodSetup:    {},
			typed.MethodPlay:     {},
		}}
		got, err := typed.DecodePublic(p.Encode())
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Has(typed.MethodDescribe)).To(BeTrue())
		Expect(got.Has(typed.MethodSetup)).To(BeTrue())
		Expect(got.Has(typed.MethodPlay)).To(BeTrue())
		Expect(got.Has(typed.MethodTeardown)).To(BeFalse())
	})

	It("round-trips Allow through Encode/Decode", func() {
		a := typed.Allow{MethodSet: typed.MethodSet{typed.MethodOptions: {}}}
		got, err := typed.DecodeAllow(a.Encode())
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Has(typed.MethodOptions)).To(BeTrue())
	})

	It("parses a comma-separated list across multiple values", func() {
		got, err := typed.DecodePublic([]header.Value{"DESCRIBE, SETUP", "PLAY"})
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Has(typed.MethodDescribe)).To(BeTrue())
		Expect(got.Has(typed.MethodSetup)).To(BeTrue())
		Expect(got.Has(typed.MethodPlay)).To(BeTrue())
	})

	It("rejects an invalid method token", func() {
		_, err := typed.DecodeAllow([]header.Value{"NOT A METHOD"})
		Expect(err).To(MatchError(typed.ErrInvalid))
	})

	It("rejects an empty value list", func() {
		_, err := typed.DecodePublic(nil)
		Expect(err).To(MatchError(typed.ErrInvalid))
	})
})
