package store

import "github.com/kelseyhightower/envconfig"

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

type Config struct {
	DatabaseName string `envconfig:"MEDVAULT_DATABASE_NAME" default:"medvault"`
	Hosts        string `envconfig:"MEDVAULT_STORE_ADDRESSES" default:"localhost"`
	OptParams    string `envconfig:"MEDVAULT_STORE_OPT_PARAMS"`
	Password     string `envconfig:"MEDVAULT_STORE_PASSWORD"`
	Scheme       string `envconfig:"MEDVAULT_STORE_SCHEME" default:"mongodb"`
	Ssl          bool   `envconfig:"MEDVAULT_STORE_TLS"`
	User         string `envconfig:"MEDVAULT_STORE_USERNAME"`
}

func (c *Config) GetConnectionString() (string, error) {
	cs := c.Scheme
	if cs == "" {
		cs = "mongodb"
	}
	cs += "://"

	if c.User != "" {
		cs += c.User
		if c.Password != "" {
			cs += ":"
			cs += c.Password
		}
		cs += "@"
	}

	if c.Hosts != "" {
		cs += c.Hosts
	} else {
		cs += "localhost"
	}
	cs += "/"

	if c.Ssl {
		cs += "?ssl=true"
	} else {
		cs += "?ssl=false"
	}

	if c.OptParams != "" {
		cs += "&"
		cs += c.OptParams
	}
	return cs, nil
}

func GetConnectionString(cfg *Config) (string, error) {
	return cfg.GetConnectionString()
}
