package message_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ghettovoice/rtsp/message"
)

var _ = Describe("RequestBuilder", Label("message", "builder"), func() {
	It("chains mutators and builds a valid request", func() {
		req, err := message.NewRequestBuilder().
			Method(message.MethodSetup).
			URI("rtsp://example.com/media/track1").
			CSeq(3).
			Session("47112344").
			Build(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Method).To(Equal(message.MethodSetup))
		Expect(req.URI).To(Equal("rtsp://example.com/media/track1"))

		cseq, err := req.Headers.CSeq()
		Expect(err).NotTo(HaveOccurred())
		Expect(cseq).To(BeEquivalentTo(3))

		sess, ok, err := req.Headers.Session()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(sess.ID).To(Equal("47112344"))
	})

	It("defaults CSeq to 1 when never set", func() {
		req, err := message.NewRequestBuilder().Method(message.MethodOptions).URI("rtsp://example.com/media").Build(nil)
		Expect(err).NotTo(HaveOccurred())
		cseq, err := req.Headers.CSeq()
		Expect(err).NotTo(HaveOccurred())
		Expect(cseq).To(BeEquivalentTo(1))
	})

	It("fails Build with ErrMissingMethod when Method is never called", func() {
		_, err := message.NewRequestBuilder().URI("rtsp://example.com/media").Build(nil)
		Expect(errors.Is(err, message.ErrMissingMethod)).To(BeTrue())
	})

	It("fails Build with ErrMissingRequestURI when URI is never called", func() {
		_, err := message.NewRequestBuilder().Method(message.MethodOptions).Build(nil)
		Expect(errors.Is(err, message.ErrMissingRequestURI)).To(BeTrue())
	})

	It("stores the first error and short-circuits later mutators", func() {
		b := message.NewRequestBuilder().URI("") // ErrMissingRequestURI
		b = b.Method(message.MethodOptions)      // must not clear the stored error
		_, err := b.Build(nil)
		Expect(errors.Is(err, message.ErrMissingRequestURI)).To(BeTrue())
	})

	It("rejects an unsupported version", func() {
		_, err := message.NewRequestBuilder().
			Method(message.MethodOptions).
			URI("rtsp://example.com/media").
			Version(message.Version{Name: "RTSP", Number: "1.0"}).
			Build(nil)
		Expect(errors.Is(err, message.ErrUnsupportedVersion)).To(BeTrue())
	})

	It("is sugar-equivalent to the per-method convenience constructors", func() {
		req, err := message.NewSetup("rtsp://example.com/media/track1").Build(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Method).To(Equal(message.MethodSetup))
		Expect(req.URI).To(Equal("rtsp://example.com/media/track1"))
	})
})

var _ = Describe("ResponseBuilder", Label("message", "builder"), func() {
	It("copies CSeq and Session from the request", func() {
		req, err := message.NewPlay("rtsp://example.com/media").CSeq(9).Session("abc123").Build(nil)
		Expect(err).NotTo(HaveOccurred())

		res, err := message.NewResponseBuilder(req, message.StatusOK).Build(nil)
		Expect(err).NotTo(HaveOccurred())

		cseq, err := res.Headers.CSeq()
		Expect(err).NotTo(HaveOccurred())
		Expect(cseq).To(BeEquivalentTo(9))

		sess, ok, err := res.Headers.Session()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(sess.ID).To(Equal("abc123"))
	})

	It("defaults the reason phrase for a standard status code", func() {
		res, err := message.NewResponseBuilder(nil, message.StatusNotFound).Build(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Reason).To(Equal("Not Found"))
	})

	It("fails Build with ErrMissingReasonPhrase for an extension status with no reason", func() {
		_, err := message.NewResponseBuilder(nil, message.StatusCode(999)).Build(nil)
		Expect(errors.Is(err, message.ErrMissingReasonPhrase)).To(BeTrue())
	})

	It("accepts an extension status code given an explicit reason", func() {
		res, err := message.NewResponseBuilder(nil, message.StatusCode(999)).Reason("Made Up").Build(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Reason).To(Equal("Made Up"))
	})

	It("sets Content-Length from the body", func() {
		res, err := message.NewResponseBuilder(nil, message.StatusOK).Build([]byte("hello"))
		Expect(err).NotTo(HaveOccurred())
		cl, err := res.Headers.ContentLength()
		Expect(err).NotTo(HaveOccurred())
		Expect(cl).To(BeEquivalentTo(5))
	})
})
