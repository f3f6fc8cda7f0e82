package config

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

func (c *Config) RabbitMQEnabled() bool {
	return c.RabbitMQ.BrokerLink != ""
}

func (c *Config) AuthEnabled() bool {
	return c.Auth.Secret != ""
}
