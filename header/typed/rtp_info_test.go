package typed_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/header/typed"
)

var _ = Describe("RTPInfo", Label("typed", "rtp-info"), func() {
	It("round-trips a single stream", func() {
		ri := typed.RTPInfo{Streams: []typed.RTPStreamInfo{
			{URL: "rtsp://example.com/media/track1", Seq: "45102", RTPTime: "12345"},
		}}
		got, err := typed.DecodeRTPInfo(ri.Encode())
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(ri))
	})

	It("round-trips multiple comma-joined streams", func() {
		ri := typed.RTPInfo{Streams: []typed.RTPStreamInfo{
			{URL: "rtsp://example.com/media/track1", Seq: "1", RTPTime: "100"},
			{URL: "rtsp://example.com/media/track2", Seq: "2", RTPTime: "200"},
		}}
		got, err := typed.DecodeRTPInfo(ri.Encode())
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(ri))
	})

	It("rejects a stream missing the url parameter", func() {
		_, err := typed.DecodeRTPInfo([]header.Value{"seq=1;rtptime=100"})
		Expect(err).To(MatchError(typed.ErrInvalid))
	})

	It("rejects an empty value list", func() {
		_, err := typed.DecodeRTPInfo(nil)
		Expect(err).To(MatchError(typed.ErrInvalid))
	})
})
