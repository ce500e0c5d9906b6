package auth

import "github.com/kelseyhightower/envconfig"

type Config struct {
	TokenSecret string `envconfig:"MEDVAULT_AUTH_TOKEN_SECRET" required:"true"`
}

func NewConfig() (Config, error) {
	config := Config{}
	err := envconfig.Process("", &config)
	return config, err
}
