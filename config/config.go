package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"launchmaster/persistence"
	"launchmaster/notify"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceName string `yaml:"serviceName"`
	HTTPAddr    string `yaml:"httpAddr"`
	LogLevel    string `yaml:"logLevel"`
	LogFormat   string `yaml:"logFormat"`

	Database persistence.DatabaseConfig `yaml:"database"`

	ESAddresses     []string      `yaml:"esAddresses"`
	NotificationTTL time.Duration `yaml:"notificationTTL"`
}

func Default() Config {
	return Config{
		ServiceName:     "launchmaster",
		HTTPAddr:        ":8080",
		LogLevel:        "info",
		LogFormat:       "text",
		Database:        persistence.DatabaseConfig{DriverType: persistence.DriverMysql},
		NotificationTTL: notify.DefaultTTL,
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped when path is empty)
// and the environment. A .env file in the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("SERVICE_NAME"); v != "" {
		c.ServiceName = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v, ok := os.LookupEnv("ES_ADDRESSES"); ok {
		c.ESAddresses = splitList(v)
	}
	if v := os.Getenv("NOTIFICATION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFICATION_TTL '%s': %w", v, err)
		}
		c.NotificationTTL = ttl
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return nil, err
	}

	db, err := persistence.ParseDatabaseConfigFromEnv(&c.Database)
	if err != nil {
		return nil, err
	}
	c.Database = *db
	return &c, nil
}

func splitList(v string) []string {
	items := []string{}
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
