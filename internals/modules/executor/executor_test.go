package executor_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/chaudl113/uptime-web-api/internals/modules/executor"
	"github.com/chaudl113/uptime-web-api/internals/modules/result"
	"github.com/chaudl113/uptime-web-api/pkg/httpclient"
)

var _ = Describe("Executor", func() {
	var (
		logger zerolog.Logger
		ex     *executor.Executor
		ctx    context.Context
	)

	BeforeEach(func() {
		logger = zerolog.Nop()
		ctx = context.Background()
		ex = executor.NewExecutor(httpclient.NewHttpClient(0), 2*time.Second, "", &logger)
	})

	statusServer := func(code int) *httptest.Server {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			w.Write([]byte("body"))
		}))
		DeferCleanup(srv.Close)
		return srv
	}

	It("classifies a 2xx response as up", func() {
		srv := statusServer(http.StatusOK)

		res := ex.Probe(ctx, srv.URL)

		Expect(res.Status).To(Equal(result.StatusUp))
		Expect(res.StatusCode).To(HaveValue(Equal(http.StatusOK)))
		Expect(res.ErrorMessage).To(BeNil())
		Expect(res.ResponseTime).To(BeNumerically(">=", 0))
		Expect(res.CheckedAt).NotTo(BeZero())
	})

	It("treats any 2xx code as up", func() {
		srv := statusServer(http.StatusNoContent)

		res := ex.Probe(ctx, srv.URL)
		Expect(res.Status).To(Equal(result.StatusUp))
		Expect(res.StatusCode).To(HaveValue(Equal(http.StatusNoContent)))
	})

	DescribeTable("non-2xx responses are down with the code in the message",
		func(code int, msg string) {
			srv := statusServer(code)

			res := ex.Probe(ctx, srv.URL)

			Expect(res.Status).To(Equal(result.StatusDown))
			Expect(res.StatusCode).To(HaveValue(Equal(code)))
			Expect(res.ErrorMessage).To(HaveValue(Equal(msg)))
		},
		Entry("503", http.StatusServiceUnavailable, "HTTP 503"),
		Entry("404", http.StatusNotFound, "HTTP 404"),
		Entry("500", http.StatusInternalServerError, "HTTP 500"),
	)

	It("sends the configured user agent", func() {
		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
		}))
		defer srv.Close()

		ex.Probe(ctx, srv.URL)
		Expect(got).To(Equal(executor.DefaultUserAgent))
	})

	Context("when the deadline expires", func() {
		var (
			srv      *httptest.Server
			released chan struct{}
		)

		BeforeEach(func() {
			released = make(chan struct{})
			srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				<-r.Context().Done()
				close(released)
			}))
			DeferCleanup(srv.Close)
		})

		It("reports a timeout and releases the connection", func() {
			ex = executor.NewExecutor(httpclient.NewHttpClient(0), 100*time.Millisecond, "", &logger)

			start := time.Now()
			res := ex.Probe(ctx, srv.URL)

			Expect(res.Status).To(Equal(result.StatusDown))
			Expect(res.StatusCode).To(BeNil())
			Expect(res.ErrorMessage).To(HaveValue(Equal("Request timeout (100ms)")))
			Expect(res.ResponseTime).To(BeNumerically(">=", 100))
			Expect(res.ResponseTime).To(BeNumerically("<=", time.Since(start).Milliseconds()))
			Eventually(released).Should(BeClosed())
		})

		It("renders the default deadline as 30s", func() {
			ex = executor.NewExecutor(httpclient.NewHttpClient(0), 0, "", &logger)

			short, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
			defer cancel()

			res := ex.Probe(short, srv.URL)

			Expect(res.Status).To(Equal(result.StatusDown))
			Expect(res.StatusCode).To(BeNil())
			Expect(res.ErrorMessage).To(HaveValue(Equal("Request timeout (30s)")))
			Eventually(released).Should(BeClosed())
		})
	})

	It("reports transport failures with the underlying error text", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		res := ex.Probe(ctx, url)

		Expect(res.Status).To(Equal(result.StatusDown))
		Expect(res.StatusCode).To(BeNil())
		Expect(res.ErrorMessage).NotTo(BeNil())
		Expect(*res.ErrorMessage).NotTo(BeEmpty())
		Expect(*res.ErrorMessage).NotTo(ContainSubstring("Request timeout"))
	})

	It("reports an unusable url as down", func() {
		res := ex.Probe(ctx, "://not-a-url")

		Expect(res.Status).To(Equal(result.StatusDown))
		Expect(res.StatusCode).To(BeNil())
		Expect(res.ErrorMessage).NotTo(BeNil())
	})

	It("does not call a cancelled probe a timeout", func() {
		srv := statusServer(http.StatusOK)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		res := ex.Probe(cancelled, srv.URL)

		Expect(res.Status).To(Equal(result.StatusDown))
		Expect(*res.ErrorMessage).To(ContainSubstring("context canceled"))
	})
})
