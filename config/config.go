package config

import "time"

type DBConfig struct {
	Driver          string        `mapstructure:"driver" validate:"oneof=postgres sqlite"`
	URL             string        `mapstructure:"url" validate:"required"`
	MaxOpenConns    int32         `mapstructure:"max_open_conns" validate:"gte=1"`
	MinIdleConns    int32         `mapstructure:"min_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	HealthTimeout   time.Duration `mapstructure:"health_timeout" validate:"gt=0"`
}

type ProbeConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UserAgent string        `mapstructure:"user_agent"`
}

type TelegramConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// SchedulerConfig drives the optional in-process trigger. Zero interval leaves
// triggering to an external caller.
type SchedulerConfig struct {
	Interval time.Duration `mapstructure:"interval" validate:"gte=0"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db" validate:"gte=0"`
	SettingsTTL time.Duration `mapstructure:"settings_ttl" validate:"gte=0"`
}

type RabbitMQConfig struct {
	BrokerLink   string `mapstructure:"broker_link"`
	ExchangeName string `mapstructure:"exchange_name"`
	ExchangeType string `mapstructure:"exchange_type" validate:"oneof=direct topic fanout"`
	RoutingKey   string `mapstructure:"routing_key"`
}

type AuthConfig struct {
	Secret    string `mapstructure:"secret"`
	ExpiryMin int    `mapstructure:"expiry_min" validate:"gte=1"`
}

type Config struct {
	Env         string          `mapstructure:"env" validate:"required"`
	ServiceName string          `mapstructure:"service_name" validate:"required"`
	Port        int             `mapstructure:"port" validate:"gte=1,lte=65535"`
	DB          DBConfig        `mapstructure:"db"`
	Probe       ProbeConfig     `mapstructure:"probe"`
	Telegram    TelegramConfig  `mapstructure:"telegram"`
	Scheduler   SchedulerConfig `mapstructure:"scheduler"`
	Redis       RedisConfig     `mapstructure:"redis"`
	RabbitMQ    RabbitMQConfig  `mapstructure:"rabbitmq"`
	Auth        AuthConfig      `mapstructure:"auth"`
}
