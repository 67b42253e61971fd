package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"greenchainz-intel/internal/config"
	"greenchainz-intel/internal/distributor"
	"greenchainz-intel/internal/events"
	"greenchainz-intel/internal/fetch"
	"greenchainz-intel/internal/httpapi"
	"greenchainz-intel/internal/match"
	"greenchainz-intel/internal/persona"
	"greenchainz-intel/internal/rules"
	"greenchainz-intel/internal/scheduler"
	"greenchainz-intel/internal/scrape"
	"greenchainz-intel/internal/secrets"
	"greenchainz-intel/internal/store"
)

func main() {
	if err := persona.ValidateRegistry(); err != nil {
		log.Fatalf("persona registry invalid: %v", err)
	}

	// Engine data dir: use env if provided (the packaged UI passes one),
	// else local folder.
	dataDir := os.Getenv("GREENCHAINZ_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir: two processes sharing one sqlite file is
	// how results vanish.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock %s: %v", lock.Path(), err)
	}
	if !locked {
		log.Fatalf("another engine already owns %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "greenchainz.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	limiter := fetch.NewHostLimiter(cfg.Scraper.RequestsPerSecond, cfg.Scraper.Burst)
	client := fetch.New(cfg.ScrapeTimeout(), cfg.Scraper.UserAgent, limiter)

	rulesSvc := rules.NewService(
		rules.StoreProvider{DB: db.Pool},
		rules.WithTTL(cfg.RulesTTL()),
	)

	runner := &scrape.Runner{
		Rules:   rulesSvc,
		Client:  client,
		Matcher: match.Substring{},
		DB:      db.Pool,
	}
	analyzer := &distributor.Analyzer{Client: client}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background lanes
	go scheduler.Every(ctx, cfg.RulesTTL(), "rules-sweep", func(context.Context) error {
		if n := rulesSvc.Sweep(); n > 0 {
			log.Printf("[rules-sweep] evicted %d expired entries", n)
		}
		return nil
	})
	if cfg.Refresh.Enabled {
		go scheduler.Every(ctx, cfg.RefreshInterval(), "refresh", func(lctx context.Context) error {
			cur := cfgVal.Load().(config.Config)
			return refreshOnce(lctx, db.Pool, analyzer, hub, cur)
		})
	}

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		Rules:       rulesSvc,
		Scraper:     runner,
		Analyzer:    analyzer,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
		httpapi.RequireKey(secrets.GetAccessKey),
	)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))
	log.Printf("shutdown token: %s", token)

	log.Fatal(srv.Serve(ln))
}
