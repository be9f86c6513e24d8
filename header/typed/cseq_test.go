package typed_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/header/typed"
)

var _ = Describe("CSeq", Label("typed", "cseq"), func() {
	It("round-trips through Encode/Decode", func() {
		c := typed.CSeq(42)
		got, err := typed.DecodeCSeq(c.Encode())
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(c))
	})

	It("rejects zero values", func() {
		_, err := typed.DecodeCSeq(nil)
		Expect(err).To(MatchError(typed.ErrInvalid))
	})

	It("rejects more than one value", func() {
		_, err := typed.DecodeCSeq([]header.Value{"1", "2"})
		Expect(err).To(MatchError(typed.ErrInvalid))
	})

	It("rejects a non-decimal value", func() {
		_, err := typed.DecodeCSeq([]header.Value{"abc"})
		Expect(err).To(MatchError(typed.ErrInvalid))
	})

	It("rejects a value exceeding MaxCSeq", func() {
		_, err := typed.DecodeCSeq([]header.Value{"9999999999"})
		Expect(err).To(MatchError(typed.ErrInvalid))
	})

	It("tolerates surrounding optional whitespace", func() {
		got, err := typed.DecodeCSeq([]header.Value{" 7 "})
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(typed.CSeq(7)))
	})
})
