package httpapi

import (
	"database/sql"
	"sync/atomic"

	"greenchainz-intel/internal/config"
	"greenchainz-intel/internal/distributor"
	"greenchainz-intel/internal/events"
	"greenchainz-intel/internal/rules"
	"greenchainz-intel/internal/scrape"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic config snapshot, swapped by PUT /config.
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Rules    *rules.Service
	Scraper  *scrape.Runner
	Analyzer *distributor.Analyzer
}
