package cycle_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/chaudl113/uptime-web-api/internals/modules/alert"
	"github.com/chaudl113/uptime-web-api/internals/modules/cycle"
	"github.com/chaudl113/uptime-web-api/internals/modules/executor"
	"github.com/chaudl113/uptime-web-api/internals/modules/monitor"
	"github.com/chaudl113/uptime-web-api/internals/modules/result"
	"github.com/chaudl113/uptime-web-api/internals/modules/settings"
	"github.com/chaudl113/uptime-web-api/pkg/sqlitestore"
	"github.com/chaudl113/uptime-web-api/pkg/telegram"
)

type sentMessages struct {
	mu    sync.Mutex
	texts []string
}

func (s *sentMessages) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	s.texts = append(s.texts, body.Text)
	s.mu.Unlock()

	_, _ = w.Write([]byte(`{"ok":true}`))
}

func (s *sentMessages) all() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

var _ = Describe("check pipeline", func() {
	var (
		ctx    context.Context
		store  *sqlitestore.Store
		sent   *sentMessages
		orch   *cycle.Orchestrator
		target *httptest.Server
		owner  uuid.UUID
		now    time.Time
	)

	strPtr := func(s string) *string { return &s }

	register := func(name, url string) monitor.Monitor {
		m := monitor.Monitor{ID: uuid.New(), UserID: owner, Name: name, URL: url, IntervalSec: 60, Active: true}
		Expect(store.CreateMonitor(ctx, m)).To(Succeed())
		return m
	}

	BeforeEach(func() {
		ctx = context.Background()
		logger := zerolog.Nop()
		now = time.Now().UTC()
		owner = uuid.New()

		var err error
		store, err = sqlitestore.Open(":memory:")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(store.Close)

		sent = &sentMessages{}
		bot := httptest.NewServer(sent)
		DeferCleanup(bot.Close)

		target = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/unavailable":
				w.WriteHeader(http.StatusServiceUnavailable)
			default:
				w.WriteHeader(http.StatusOK)
			}
		}))
		DeferCleanup(target.Close)

		Expect(store.UpsertChannelConfig(ctx, settings.ChannelConfig{
			UserID:   owner,
			Enabled:  true,
			ChatID:   strPtr("42"),
			BotToken: strPtr("token"),
		})).To(Succeed())

		ex := executor.NewExecutor(target.Client(), 2*time.Second, "", &logger)
		recorder := result.NewRecorder(store, store, &logger)
		notifier := alert.NewService(store, telegram.New(bot.URL, bot.Client()), &logger)
		orch = cycle.NewOrchestrator(store, ex, recorder, notifier, &logger)
	})

	It("records an up result and advances last checked", func() {
		m := register("Home", target.URL+"/")

		summary, err := orch.RunCycle(ctx, now)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Results).To(HaveLen(1))
		Expect(summary.Results[0].Status).To(Equal(result.StatusUp))
		Expect(summary.Results[0].StatusCode).To(HaveValue(Equal(200)))

		history, err := store.ListCheckResults(ctx, m.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(history).To(HaveLen(1))

		got, err := store.GetMonitor(ctx, m.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.LastCheckedAt).To(HaveValue(BeTemporally("==", now)))
		Expect(sent.all()).To(BeEmpty())
	})

	It("does not check the same monitor twice within its interval", func() {
		m := register("Home", target.URL+"/")

		_, err := orch.RunCycle(ctx, now)
		Expect(err).NotTo(HaveOccurred())
		summary, err := orch.RunCycle(ctx, now.Add(30*time.Second))
		Expect(err).NotTo(HaveOccurred())

		Expect(summary.Checked).To(BeZero())
		Expect(summary.Skipped).To(Equal(1))
		history, err := store.ListCheckResults(ctx, m.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(history).To(HaveLen(1))
	})

	It("alerts once for an unreachable monitor", func() {
		closed := httptest.NewServer(http.NotFoundHandler())
		url := closed.URL
		closed.Close()
		register("Gone", url)

		summary, err := orch.RunCycle(ctx, now)
		Expect(err).NotTo(HaveOccurred())

		res := summary.Results[0]
		Expect(res.Status).To(Equal(result.StatusDown))
		Expect(res.StatusCode).To(BeNil())
		Expect(res.ErrorMessage).To(HaveValue(Not(BeEmpty())))

		Expect(sent.all()).To(HaveLen(1))
		Expect(sent.all()[0]).To(ContainSubstring("Gone"))
		Expect(sent.all()[0]).To(ContainSubstring(url))
	})

	It("records HTTP 503 as down", func() {
		register("Shop", target.URL+"/unavailable")

		summary, err := orch.RunCycle(ctx, now)
		Expect(err).NotTo(HaveOccurred())

		res := summary.Results[0]
		Expect(res.Status).To(Equal(result.StatusDown))
		Expect(res.StatusCode).To(HaveValue(Equal(503)))
		Expect(res.ErrorMessage).To(HaveValue(Equal("HTTP 503")))
		Expect(sent.all()).To(HaveLen(1))
	})

	It("stays silent when the owner disabled notifications", func() {
		Expect(store.UpsertChannelConfig(ctx, settings.ChannelConfig{
			UserID:   owner,
			Enabled:  false,
			ChatID:   strPtr("42"),
			BotToken: strPtr("token"),
		})).To(Succeed())
		register("Shop", target.URL+"/unavailable")

		summary, err := orch.RunCycle(ctx, now)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Results[0].Status).To(Equal(result.StatusDown))
		Expect(sent.all()).To(BeEmpty())
	})
})
