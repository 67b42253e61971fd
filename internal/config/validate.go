package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus the structured
// validation result the UI renders.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	out.Scraper.UserAgent = strings.TrimSpace(out.Scraper.UserAgent)
	if out.Scraper.TimeoutSeconds < 0 {
		res.addErr("scraper.timeout_seconds must be >= 0")
	}
	if out.Scraper.TimeoutSeconds > 120 {
		res.addWarn("scraper.timeout_seconds over 120s will stall batch lanes")
	}
	if out.Scraper.RequestsPerSecond < 0 {
		res.addErr("scraper.requests_per_second must be >= 0")
	}
	if out.Scraper.Burst < 0 {
		res.addErr("scraper.burst must be >= 0")
	}

	if out.Batch.Concurrency < 0 {
		res.addErr("batch.concurrency must be >= 0")
	}
	if out.Batch.Concurrency > 8 {
		res.addWarn("batch.concurrency over 8 is aggressive toward target sites")
	}
	if out.Batch.RequestsPerSecond < 0 {
		res.addErr("batch.requests_per_second must be >= 0")
	}

	if out.RulesCache.TTLMinutes < 0 {
		res.addErr("rules_cache.ttl_minutes must be >= 0")
	}

	if out.Refresh.Enabled {
		if out.Refresh.IntervalMinutes <= 0 {
			res.addWarn("refresh.interval_minutes unset, defaulting to 360")
		}
		if out.Refresh.MaxAgeHours <= 0 {
			res.addWarn("refresh.max_age_hours unset, defaulting to 168")
		}
	}

	return out, res
}
