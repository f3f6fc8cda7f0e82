package redisstore_test

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/chaudl113/uptime-web-api/config"
	"github.com/chaudl113/uptime-web-api/internals/modules/settings"
	"github.com/chaudl113/uptime-web-api/pkg/redisstore"
)

// These specs talk to a real server and run only when TEST_REDIS_ADDR is set.
var _ = Describe("Client", func() {
	var (
		client *redisstore.Client
		raw    *redis.Client
		ctx    context.Context
	)

	BeforeEach(func() {
		addr := os.Getenv("TEST_REDIS_ADDR")
		if addr == "" {
			Skip("TEST_REDIS_ADDR not set")
		}

		ctx = context.Background()
		var err error
		client, err = redisstore.New(ctx, &config.RedisConfig{Addr: addr, DB: 15})
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(client.Close)

		raw = redis.NewClient(&redis.Options{Addr: addr, DB: 15})
		DeferCleanup(raw.Close)
	})

	It("stores the status snapshot as a hash", func() {
		id := uuid.New()
		checkedAt := time.Unix(1_760_000_000, 0)
		DeferCleanup(func() { raw.Del(ctx, "monitor:status:"+id.String()) })

		Expect(client.StoreStatus(ctx, id, "down", 503, 87, checkedAt)).To(Succeed())

		got, err := raw.HGetAll(ctx, "monitor:status:"+id.String()).Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(map[string]string{
			"status":      "down",
			"status_code": "503",
			"latency_ms":  "87",
			"checked_at":  "1760000000",
		}))
	})

	It("caches channel config without the bot token", func() {
		chat, token := "42", "t"
		cfg := settings.ChannelConfig{UserID: uuid.New(), Enabled: false, ChatID: &chat, BotToken: &token}
		key := "user:settings:" + cfg.UserID.String()
		DeferCleanup(func() { raw.Del(ctx, key) })

		_, ok := client.GetChannelConfig(ctx, cfg.UserID)
		Expect(ok).To(BeFalse())

		Expect(client.SetChannelConfig(ctx, cfg, time.Minute)).To(Succeed())
		got, ok := client.GetChannelConfig(ctx, cfg.UserID)
		Expect(ok).To(BeTrue())
		Expect(got.UserID).To(Equal(cfg.UserID))
		Expect(got.ChatID).To(Equal(cfg.ChatID))
		Expect(got.BotToken).To(BeNil())

		stored, err := raw.Get(ctx, key).Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(stored).NotTo(ContainSubstring("bot_token"))

		ttl, err := raw.TTL(ctx, key).Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(ttl).To(BeNumerically(">", 0))
	})
})

var _ = Describe("New", func() {
	It("fails fast when the server is unreachable", func() {
		_, err := redisstore.New(context.Background(), &config.RedisConfig{Addr: "127.0.0.1:1"})
		Expect(err).To(MatchError(ContainSubstring("redis ping")))
	})
})
