package config

type Config interface {
	EnvConfig
	GatewayConfig
	GoogleConfig
	SessionConfig
}

type mainConfig struct {
	EnvVars
	Gateway
	Google
	Session
}

func New() Config {
	return mainConfig{}
}
