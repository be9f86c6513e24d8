package engine_test

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
	"go.uber.org/mock/gomock"

	"github.com/ghettovoice/rtsp/codec"
	"github.com/ghettovoice/rtsp/engine"
	"github.com/ghettovoice/rtsp/header"
	"github.com/ghettovoice/rtsp/internal/testutil/rtspmock"
	"github.com/ghettovoice/rtsp/message"
)

// decodeFrom blocks until a complete message has arrived on conn, feeding
// the decoder more bytes as needed.
func decodeFrom(conn net.Conn) (any, error) {
	dec := codec.NewDecoder()
	buf := make([]byte, 4096)
	for {
		msg, err := dec.Decode()
		if err == nil {
			return msg, nil
		}
		if !errors.Is(err, codec.ErrNeedMore) {
			return nil, err
		}
		n, rerr := conn.Read(buf)
		if rerr != nil {
			return nil, rerr
		}
		dec.Write(buf[:n]) //nolint:errcheck
	}
}

var _ = Describe("Connection", Label("engine", "connection"), func() {
	var (
		clientTransport, serverTransport net.Conn
	)

	BeforeEach(func() {
		clientTransport, serverTransport = net.Pipe()
		DeferCleanup(func() {
			clientTransport.Close() //nolint:errcheck
			serverTransport.Close() //nolint:errcheck
		})
	})

	It("round-trips a request and response, assigning the CSeq", func() {
		server := engine.NewConnection(serverTransport, &engine.Options{
			Service: engine.ServiceFunc(func(_ context.Context, req *message.Request) *message.Response {
				return message.NewResponseTo(req, message.StatusOK, nil)
			}),
		})
		defer server.Handle().Close() //nolint:errcheck

		client := engine.NewConnection(clientTransport, nil)
		defer client.Handle().Close() //nolint:errcheck

		req, err := message.NewOptions("rtsp://example.com/media").Build(nil)
		Expect(err).NotTo(HaveOccurred())

		res, err := client.Handle().SendRequest(context.Background(), req)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(message.StatusOK))

		cseq, err := res.Headers.CSeq()
		Expect(err).NotTo(HaveOccurred())
		Expect(cseq).To(BeEquivalentTo(1))
	})

	It("correlates concurrent requests by CSeq", func() {
		server := engine.NewConnection(serverTransport, &engine.Options{
			Service: engine.ServiceFunc(func(_ context.Context, req *message.Request) *message.Response {
				res := message.NewResponseTo(req, message.StatusOK, nil)
				res.Headers.Set(header.MustParseName("X-Echo-URI"), header.Value(req.URI))
				return res
			}),
		})
		defer server.Handle().Close() //nolint:errcheck

		client := engine.NewConnection(clientTransport, nil)
		defer client.Handle().Close() //nolint:errcheck

		const n = 8
		results := make(chan *message.Response, n)
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			uri := "rtsp://example.com/media/track" + string(rune('0'+i))
			go func() {
				req, err := message.NewDescribe(uri).Build(nil)
				if err != nil {
					errs <- err
					return
				}
				res, err := client.Handle().SendRequest(context.Background(), req)
				if err != nil {
					errs <- err
					return
				}
				results <- res
			}()
		}

		seen := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			select {
			case err := <-errs:
				Expect(err).NotTo(HaveOccurred())
			case res := <-results:
				echo := res.Headers.Get(header.MustParseName("X-Echo-URI"))
				Expect(echo).To(HaveLen(1))
				seen[string(echo[0])] = true
			case <-time.After(5 * time.Second):
				Fail("timed out waiting for responses")
			}
		}
		Expect(seen).To(HaveLen(n))
	})

	It("times out when no response arrives within the context deadline", func() {
		client := engine.NewConnection(clientTransport, nil)
		defer client.Handle().Close() //nolint:errcheck

		// Nothing reads serverTransport's incoming bytes nor ever writes a
		// response back, so the request is delivered but never answered.
		go func() {
			buf := make([]byte, 4096)
			for {
				if _, err := serverTransport.Read(buf); err != nil {
					return
				}
			}
		}()

		req, err := message.NewOptions("rtsp://example.com/media").Build(nil)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err = client.Handle().SendRequest(ctx, req)
		Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
	})

	It("reports the connection's default timeout as an OperationError wrapping ErrTimeout", func() {
		client := engine.NewConnection(clientTransport, &engine.Options{
			DefaultTimeout: 50 * time.Millisecond,
		})
		defer client.Handle().Close() //nolint:errcheck

		// Nothing reads serverTransport's incoming bytes nor ever writes a
		// response back, so the request is delivered but never answered.
		go func() {
			buf := make([]byte, 4096)
			for {
				if _, err := serverTransport.Read(buf); err != nil {
					return
				}
			}
		}()

		req, err := message.NewOptions("rtsp://example.com/media").Build(nil)
		Expect(err).NotTo(HaveOccurred())

		_, err = client.Handle().SendRequest(context.Background(), req)
		Expect(errors.Is(err, engine.ErrTimeout)).To(BeTrue())
		var opErr *engine.OperationError
		Expect(errors.As(err, &opErr)).To(BeTrue())
	})

	It("fails pending and future requests after Close", func() {
		client := engine.NewConnection(clientTransport, nil)

		go func() {
			buf := make([]byte, 4096)
			for {
				if _, err := serverTransport.Read(buf); err != nil {
					return
				}
			}
		}()

		Expect(client.Handle().Close()).To(Succeed())

		req, err := message.NewOptions("rtsp://example.com/media").Build(nil)
		Expect(err).NotTo(HaveOccurred())

		_, err = client.Handle().SendRequest(context.Background(), req)
		Expect(err).To(HaveOccurred())
		var opErr *engine.OperationError
		Expect(errors.As(err, &opErr)).To(BeTrue())
	})

	It("answers an inbound request missing CSeq with a synthetic 400 without failing the connection", func() {
		server := engine.NewConnection(serverTransport, nil)
		defer server.Handle().Close() //nolint:errcheck

		req, err := message.NewOptions("rtsp://example.com/media").Build(nil)
		Expect(err).NotTo(HaveOccurred())
		req.Headers.Del(header.CSeq)

		Expect(codec.NewEncoder().Encode(clientTransport, req)).To(Succeed())

		clientTransport.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
		msg, err := decodeFrom(clientTransport)
		Expect(err).NotTo(HaveOccurred())

		res := msg.(*message.Response)
		Expect(res.Status).To(Equal(message.StatusBadRequest))
	})

	It("fails the connection on an unsolicited response", func() {
		server := engine.NewConnection(serverTransport, nil)
		defer server.Handle().Close() //nolint:errcheck

		res, err := message.NewResponseBuilder(nil, message.StatusOK).CSeq(999).Build(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(codec.NewEncoder().Encode(clientTransport, res)).To(Succeed())

		Eventually(func() error {
			req, err := message.NewOptions("rtsp://example.com/media").Build(nil)
			Expect(err).NotTo(HaveOccurred())
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()
			_, err = server.Handle().SendRequest(ctx, req)
			return err
		}).WithTimeout(5 * time.Second).WithPolling(50 * time.Millisecond).Should(HaveOccurred())
	})

	It("delivers out-of-order responses to their matching callers", func() {
		client := engine.NewConnection(clientTransport, nil)
		defer client.Handle().Close() //nolint:errcheck

		type outcome struct {
			uri  string
			res  *message.Response
			err  error
			echo string
		}
		outcomes := make(chan outcome, 2)
		firstDecoded := make(chan struct{})
		echoName := header.MustParseName("X-Echo-URI")

		send := func(uri string) {
			defer GinkgoRecover()
			req, err := message.NewDescribe(uri).Build(nil)
			if err != nil {
				outcomes <- outcome{uri: uri, err: err}
				return
			}
			res, err := client.Handle().SendRequest(context.Background(), req)
			o := outcome{uri: uri, res: res, err: err}
			if err == nil {
				if vs := res.Headers.Get(echoName); len(vs) == 1 {
					o.echo = string(vs[0])
				}
			}
			outcomes <- o
		}

		go send("rtsp://example.com/a")
		go func() {
			<-firstDecoded
			send("rtsp://example.com/b")
		}()

		// The peer decodes both requests, then answers them in reverse order.
		go func() {
			defer GinkgoRecover()
			reqs := make([]*message.Request, 0, 2)
			for i := 0; i < 2; i++ {
				msg, err := decodeFrom(serverTransport)
				Expect(err).NotTo(HaveOccurred())
				reqs = append(reqs, msg.(*message.Request))
				if i == 0 {
					close(firstDecoded)
				}
			}
			enc := codec.NewEncoder()
			for i := len(reqs) - 1; i >= 0; i-- {
				res := message.NewResponseTo(reqs[i], message.StatusOK, nil)
				res.Headers.Set(echoName, header.Value(reqs[i].URI))
				Expect(enc.Encode(serverTransport, res)).To(Succeed())
			}
		}()

		for i := 0; i < 2; i++ {
			select {
			case o := <-outcomes:
				Expect(o.err).NotTo(HaveOccurred())
				Expect(o.echo).To(Equal(o.uri))
			case <-time.After(5 * time.Second):
				Fail("timed out waiting for responses")
			}
		}
	})

	It("serves OPTIONS * with a literal 501 wire image via EmptyService", func() {
		server := engine.NewConnection(serverTransport, nil)
		defer server.Handle().Close() //nolint:errcheck

		_, err := clientTransport.Write([]byte("OPTIONS * RTSP/2.0\r\nCSeq: 7\r\n\r\n"))
		Expect(err).NotTo(HaveOccurred())

		clientTransport.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
		var wire []byte
		buf := make([]byte, 4096)
		for !strings.HasSuffix(string(wire), "\r\n\r\n") {
			n, err := clientTransport.Read(buf)
			Expect(err).NotTo(HaveOccurred())
			wire = append(wire, buf[:n]...)
		}
		Expect(string(wire)).To(Equal("RTSP/2.0 501 Not Implemented\r\nCSeq: 7\r\nContent-Length: 0\r\n\r\n"))
	})

	It("fails pending calls with ErrBadStartLine and rejects later sends after malformed input", func() {
		client := engine.NewConnection(clientTransport, nil)

		go func() {
			defer GinkgoRecover()
			msg, err := decodeFrom(serverTransport)
			Expect(err).NotTo(HaveOccurred())
			Expect(msg).To(BeAssignableToTypeOf(&message.Request{}))
			_, err = serverTransport.Write([]byte("INVALID\r\n\r\n"))
			Expect(err).NotTo(HaveOccurred())
		}()

		req, err := message.NewDescribe("rtsp://example.com/media").Build(nil)
		Expect(err).NotTo(HaveOccurred())

		_, err = client.Handle().SendRequest(context.Background(), req)
		Expect(errors.Is(err, codec.ErrBadStartLine)).To(BeTrue())
		var protoErr *engine.ProtocolError
		Expect(errors.As(err, &protoErr)).To(BeTrue())

		_, err = client.Handle().SendRequest(context.Background(), req)
		Expect(errors.Is(err, engine.ErrConnectionClosed)).To(BeTrue())
	})

	It("keeps other requests unaffected when one caller's context is cancelled", func() {
		release := make(chan struct{})
		DeferCleanup(func() { close(release) })

		server := engine.NewConnection(serverTransport, &engine.Options{
			Service: engine.ServiceFunc(func(_ context.Context, req *message.Request) *message.Response {
				if strings.HasSuffix(req.URI, "/block") {
					<-release
				}
				return message.NewResponseTo(req, message.StatusOK, nil)
			}),
		})
		defer server.Handle().Close() //nolint:errcheck

		client := engine.NewConnection(clientTransport, nil)
		defer client.Handle().Close() //nolint:errcheck

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		blockedErr := make(chan error, 1)
		go func() {
			defer GinkgoRecover()
			req, err := message.NewDescribe("rtsp://example.com/block").Build(nil)
			if err != nil {
				blockedErr <- err
				return
			}
			_, err = client.Handle().SendRequest(ctx, req)
			blockedErr <- err
		}()

		// Let the blocked request reach the wire before cancelling it.
		time.Sleep(50 * time.Millisecond)
		cancel()
		Expect(<-blockedErr).To(MatchError(context.Canceled))

		req, err := message.NewDescribe("rtsp://example.com/media").Build(nil)
		Expect(err).NotTo(HaveOccurred())
		res, err := client.Handle().SendRequest(context.Background(), req)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(message.StatusOK))
	})

	It("dispatches inbound requests through the configured Service", func() {
		ctrl := gomock.NewController(GinkgoT())
		svc := rtspmock.NewMockService(ctrl)
		svc.EXPECT().
			Serve(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *message.Request) *message.Response {
				return message.NewResponseTo(req, message.StatusOK, nil)
			}).
			Times(2)

		server := engine.NewConnection(serverTransport, &engine.Options{Service: svc})
		defer server.Handle().Close() //nolint:errcheck

		client := engine.NewConnection(clientTransport, nil)
		defer client.Handle().Close() //nolint:errcheck

		for i := 0; i < 2; i++ {
			req, err := message.NewGetParameter("rtsp://example.com/media").Build(nil)
			Expect(err).NotTo(HaveOccurred())
			res, err := client.Handle().SendRequest(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Status).To(Equal(message.StatusOK))
		}
	})

	It("leaves no goroutines behind after Close", func() {
		goods := Goroutines()

		server := engine.NewConnection(serverTransport, nil)
		client := engine.NewConnection(clientTransport, nil)

		req, err := message.NewOptions("rtsp://example.com/media").Build(nil)
		Expect(err).NotTo(HaveOccurred())
		res, err := client.Handle().SendRequest(context.Background(), req)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(message.StatusNotImplemented))

		Expect(client.Handle().Close()).To(Succeed())
		server.Handle().Close() //nolint:errcheck

		Eventually(Goroutines).Within(time.Second).ProbeEvery(10 * time.Millisecond).
			ShouldNot(HaveLeaked(goods), "no leaked goroutines")
	})

	It("fails the connection when the Service panics", func() {
		server := engine.NewConnection(serverTransport, &engine.Options{
			Service: engine.ServiceFunc(func(context.Context, *message.Request) *message.Response {
				panic("boom")
			}),
		})
		defer server.Handle().Close() //nolint:errcheck

		client := engine.NewConnection(clientTransport, nil)
		defer client.Handle().Close() //nolint:errcheck

		req, err := message.NewOptions("rtsp://example.com/media").Build(nil)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_, _ = client.Handle().SendRequest(ctx, req) //nolint:errcheck

		Eventually(func() error {
			req, err := message.NewOptions("rtsp://example.com/media").Build(nil)
			Expect(err).NotTo(HaveOccurred())
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()
			_, err = server.Handle().SendRequest(ctx, req)
			return err
		}).WithTimeout(5 * time.Second).WithPolling(50 * time.Millisecond).Should(HaveOccurred())
	})
})
