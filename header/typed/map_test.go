package typed_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/header/typed"
)

var _ = Describe("Map", Label("typed", "map"), func() {
	It("stores a typed value and projects it back to raw", func() {
		m := typed.NewMap()
		m.SetTyped(typed.CSeq(42))

		v, ok := m.Typed(header.CSeq)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(typed.CSeq(42)))
		Expect(m.Raw(header.CSeq)).To(Equal([]header.Value{"42"}))
	})

	It("stores raw values for headers without a decoder", func() {
		m := typed.NewMap()
		m.SetRaw(header.UserAgent, "rtsp-client/1.0")

		_, ok := m.Typed(header.UserAgent)
		Expect(ok).To(BeFalse())
		Expect(m.Raw(header.UserAgent)).To(Equal([]header.Value{"rtsp-client/1.0"}))
	})

	It("lifts a header map, decoding known headers and keeping the rest raw", func() {
		h := header.NewMap()
		h.Set(header.CSeq, "7")
		h.Set(header.Session, "abc123;timeout=60")
		h.Set(header.UserAgent, "rtsp-client/1.0")

		m, err := typed.FromHeaderMap(h)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Len()).To(Equal(3))

		cseq, ok := m.Typed(header.CSeq)
		Expect(ok).To(BeTrue())
		Expect(cseq).To(Equal(typed.CSeq(7)))

		sess, ok := m.Typed(header.Session)
		Expect(ok).To(BeTrue())
		Expect(sess.(typed.Session).ID).To(Equal("abc123"))

		_, ok = m.Typed(header.UserAgent)
		Expect(ok).To(BeFalse())
	})

	It("reports a decode failure when lifting a malformed known header", func() {
		h := header.NewMap()
		h.Set(header.CSeq, "not-a-number")

		_, err := typed.FromHeaderMap(h)
		Expect(err).To(MatchError(typed.ErrInvalid))
	})

	It("round-trips through the untyped projection", func() {
		h := header.NewMap()
		h.Set(header.CSeq, "7")
		h.Set(header.ContentLength, "12")
		h.Set(header.UserAgent, "rtsp-client/1.0")

		m, err := typed.FromHeaderMap(h)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.HeaderMap().Equal(h)).To(BeTrue())
	})

	It("replaces a slot on re-set and forgets it on Del", func() {
		m := typed.NewMap()
		m.SetTyped(typed.CSeq(1))
		m.SetTyped(typed.CSeq(2))
		Expect(m.Len()).To(Equal(1))
		Expect(m.Raw(header.CSeq)).To(Equal([]header.Value{"2"}))

		m.Del(header.CSeq)
		Expect(m.Has(header.CSeq)).To(BeFalse())
		Expect(m.Len()).To(BeZero())
	})
})
