package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Scraper struct {
		TimeoutSeconds    int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		UserAgent         string  `yaml:"user_agent" json:"user_agent"`
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		Burst             int     `yaml:"burst" json:"burst"`
	} `yaml:"scraper" json:"scraper"`

	Batch struct {
		Concurrency       int     `yaml:"concurrency" json:"concurrency"`
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	} `yaml:"batch" json:"batch"`

	RulesCache struct {
		TTLMinutes int `yaml:"ttl_minutes" json:"ttl_minutes"`
	} `yaml:"rules_cache" json:"rules_cache"`

	Refresh struct {
		Enabled         bool `yaml:"enabled" json:"enabled"`
		IntervalMinutes int  `yaml:"interval_minutes" json:"interval_minutes"`
		MaxAgeHours     int  `yaml:"max_age_hours" json:"max_age_hours"`
	} `yaml:"refresh" json:"refresh"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) ScrapeTimeout() time.Duration {
	if c.Scraper.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Scraper.TimeoutSeconds) * time.Second
}

func (c Config) RulesTTL() time.Duration {
	if c.RulesCache.TTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.RulesCache.TTLMinutes) * time.Minute
}

func (c Config) RefreshInterval() time.Duration {
	if c.Refresh.IntervalMinutes <= 0 {
		return 6 * time.Hour
	}
	return time.Duration(c.Refresh.IntervalMinutes) * time.Minute
}

func (c Config) RefreshMaxAge() time.Duration {
	if c.Refresh.MaxAgeHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.Refresh.MaxAgeHours) * time.Hour
}
