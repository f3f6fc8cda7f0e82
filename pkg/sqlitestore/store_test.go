package sqlitestore_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/chaudl113/uptime-web-api/internals/modules/monitor"
	"github.com/chaudl113/uptime-web-api/internals/modules/result"
	"github.com/chaudl113/uptime-web-api/internals/modules/settings"
	"github.com/chaudl113/uptime-web-api/pkg/apperror"
	"github.com/chaudl113/uptime-web-api/pkg/sqlitestore"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

var _ = Describe("Store", func() {
	var (
		store *sqlitestore.Store
		ctx   context.Context
		m     monitor.Monitor
		base  time.Time
	)

	BeforeEach(func() {
		var err error
		store, err = sqlitestore.Open(":memory:")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(store.Close)

		ctx = context.Background()
		base = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
		m = monitor.Monitor{
			ID:          uuid.New(),
			UserID:      uuid.New(),
			Name:        "api",
			URL:         "https://api.example",
			IntervalSec: 60,
			Active:      true,
		}
		Expect(store.CreateMonitor(ctx, m)).To(Succeed())
	})

	Describe("ListActive", func() {
		It("returns only active monitors in registration order", func() {
			second := monitor.Monitor{ID: uuid.New(), UserID: m.UserID, URL: "https://b.example", IntervalSec: 30, Active: true}
			paused := monitor.Monitor{ID: uuid.New(), UserID: m.UserID, URL: "https://c.example", IntervalSec: 30, Active: false}
			Expect(store.CreateMonitor(ctx, second)).To(Succeed())
			Expect(store.CreateMonitor(ctx, paused)).To(Succeed())

			monitors, err := store.ListActive(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(monitors).To(HaveLen(2))
			Expect(monitors[0].ID).To(Equal(m.ID))
			Expect(monitors[1].ID).To(Equal(second.ID))
			Expect(monitors[0].LastCheckedAt).To(BeNil())
			Expect(monitors[0].IntervalSec).To(Equal(int32(60)))
		})

		It("returns an empty list for an empty store", func() {
			empty, err := sqlitestore.Open(":memory:")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(empty.Close)

			monitors, err := empty.ListActive(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(monitors).NotTo(BeNil())
			Expect(monitors).To(BeEmpty())
		})
	})

	Describe("UpdateLastChecked", func() {
		It("advances the timestamp", func() {
			Expect(store.UpdateLastChecked(ctx, m.ID, base)).To(Succeed())

			got, err := store.GetMonitor(ctx, m.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.LastCheckedAt).To(HaveValue(BeTemporally("==", base)))
		})

		It("never moves the timestamp backwards", func() {
			Expect(store.UpdateLastChecked(ctx, m.ID, base)).To(Succeed())
			Expect(store.UpdateLastChecked(ctx, m.ID, base.Add(-time.Minute))).To(Succeed())

			got, err := store.GetMonitor(ctx, m.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.LastCheckedAt).To(HaveValue(BeTemporally("==", base)))
		})

		It("compares instants regardless of zone", func() {
			Expect(store.UpdateLastChecked(ctx, m.ID, base)).To(Succeed())
			later := base.Add(time.Second).In(time.FixedZone("W", -5*3600))
			Expect(store.UpdateLastChecked(ctx, m.ID, later)).To(Succeed())

			got, err := store.GetMonitor(ctx, m.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.LastCheckedAt).To(HaveValue(BeTemporally("==", later)))
		})

		Context("when the stored value carries a zone offset", func() {
			BeforeEach(func() {
				// 12:00+02:00 is 10:00Z but sorts after 11:00Z as text
				Expect(sqlitestore.Exec(ctx, store,
					`UPDATE monitors SET last_checked_at = ? WHERE id = ?`,
					"2026-05-01T12:00:00+02:00", m.ID)).To(Succeed())
			})

			It("advances to a later instant and normalises the value", func() {
				later := base.Add(time.Hour)
				Expect(store.UpdateLastChecked(ctx, m.ID, later)).To(Succeed())

				got, err := store.GetMonitor(ctx, m.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(got.LastCheckedAt).To(HaveValue(BeTemporally("==", later)))
			})

			It("refuses an earlier instant", func() {
				Expect(store.UpdateLastChecked(ctx, m.ID, base.Add(-time.Hour))).To(Succeed())

				got, err := store.GetMonitor(ctx, m.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(got.LastCheckedAt).To(HaveValue(BeTemporally("==", base)))
			})
		})

		It("ignores unknown monitors", func() {
			Expect(store.UpdateLastChecked(ctx, uuid.New(), base)).To(Succeed())
		})
	})

	Describe("InsertCheckResult", func() {
		It("appends a row per call, even for identical results", func() {
			res := result.CheckResult{
				MonitorID:    m.ID,
				Status:       result.StatusUp,
				StatusCode:   intPtr(200),
				ResponseTime: 120,
				CheckedAt:    base,
			}
			Expect(store.InsertCheckResult(ctx, res)).To(Succeed())
			Expect(store.InsertCheckResult(ctx, res)).To(Succeed())

			history, err := store.ListCheckResults(ctx, m.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(2))
			for _, h := range history {
				Expect(h.MonitorID).To(Equal(m.ID))
				Expect(h.Status).To(Equal(result.StatusUp))
				Expect(h.StatusCode).To(HaveValue(Equal(200)))
				Expect(h.ResponseTime).To(Equal(int64(120)))
				Expect(h.ErrorMessage).To(BeNil())
				Expect(h.CheckedAt).To(BeTemporally("==", base))
			}
		})

		It("keeps nullable columns nil", func() {
			res := result.CheckResult{
				MonitorID:    m.ID,
				Status:       result.StatusDown,
				ErrorMessage: strPtr("Request timeout (30s)"),
				CheckedAt:    base,
			}
			Expect(store.InsertCheckResult(ctx, res)).To(Succeed())

			history, err := store.ListCheckResults(ctx, m.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(1))
			Expect(history[0].StatusCode).To(BeNil())
			Expect(history[0].ErrorMessage).To(HaveValue(Equal("Request timeout (30s)")))
		})

		It("rejects results for unknown monitors", func() {
			res := result.CheckResult{MonitorID: uuid.New(), Status: result.StatusUp, CheckedAt: base}

			err := store.InsertCheckResult(ctx, res)
			Expect(apperror.IsKind(err, apperror.DatabaseErr)).To(BeTrue())
		})
	})

	Describe("GetChannelConfig", func() {
		It("returns not found when the owner has no settings", func() {
			_, err := store.GetChannelConfig(ctx, m.UserID)
			Expect(apperror.IsKind(err, apperror.NotFound)).To(BeTrue())
		})

		It("round trips the settings row", func() {
			cfg := settings.ChannelConfig{UserID: m.UserID, Enabled: true, ChatID: strPtr("42"), BotToken: strPtr("t")}
			Expect(store.UpsertChannelConfig(ctx, cfg)).To(Succeed())

			got, err := store.GetChannelConfig(ctx, m.UserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(cfg))
			Expect(got.Deliverable()).To(BeTrue())
		})

		It("reads a missing token as nil", func() {
			cfg := settings.ChannelConfig{UserID: m.UserID, Enabled: true, ChatID: strPtr("42")}
			Expect(store.UpsertChannelConfig(ctx, cfg)).To(Succeed())

			got, err := store.GetChannelConfig(ctx, m.UserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.BotToken).To(BeNil())
			Expect(got.Deliverable()).To(BeFalse())
		})
	})
})
