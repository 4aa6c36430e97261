package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/koding/multiconfig"
)

// Config is filled from the environment (and .env outside production).
type Config struct {
	Host        string `default:""`
	Port        string `default:"3000"`
	MonitorAddr string `default:""`
	Release     bool

	TempRoot   string        `default:"./temp"`
	RunTimeout time.Duration `default:"3s"`

	DisabledLanguages string `default:""`

	SessionDisabled bool
	RedisHost       string `default:"localhost"`
	RedisPort       string `default:"6379"`
	RedisPrefix     string `default:"sess"`

	Cxx            string `default:"g++"`
	CxxtestGen     string `default:"cxxtestgen"`
	CxxtestInclude string `default:""`
	Javac          string `default:"javac"`
	Java           string `default:"java"`
	JunitClasspath string `default:""`
	Python         string `default:"python3"`
	Pytest         string `default:"pytest"`
}

// Init loads .env in non-production environments, then resolves the Config
// from tag defaults and environment variables (PORT, REDIS_HOST, CXX, ...).
func Init() (*Config, error) {
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load()
	}

	c := &Config{}
	loader := multiconfig.MultiLoader(
		&multiconfig.TagLoader{},
		&multiconfig.EnvironmentLoader{CamelCase: true},
	)
	if err := loader.Load(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Disabled splits the DISABLED_LANGUAGES list.
func (c *Config) Disabled() []string {
	if c.DisabledLanguages == "" {
		return nil
	}
	return strings.Split(c.DisabledLanguages, ",")
}
