package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"greenchainz-intel/internal/config"
	"greenchainz-intel/internal/distributor"
	"greenchainz-intel/internal/events"
	"greenchainz-intel/internal/store"
)

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func shutdownHandler(token *string, srv *http.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Local-only guard (covers typical desktop usage)
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			// RemoteAddr can sometimes be just a host; fall back safely
			host = r.RemoteAddr
		}
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		got := r.Header.Get("X-Shutdown-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(*token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Respond immediately, then shutdown asynchronously
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("shutting down\n"))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}
}

// refreshOnce re-analyzes distributors whose latest snapshot is older than
// the configured max age. Shallow scans only: the lane runs unattended and
// should stay cheap.
func refreshOnce(ctx context.Context, db *sql.DB, analyzer *distributor.Analyzer, hub *events.Hub, cfg config.Config) error {
	stale, err := store.StaleDistributors(ctx, db, cfg.RefreshMaxAge(), 20)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	ds := make([]distributor.Distributor, 0, len(stale))
	for _, r := range stale {
		ds = append(ds, distributor.Distributor{
			ID:      r.ID,
			Name:    r.Name,
			Website: r.Website,
			Type:    r.Type,
		})
	}

	results := analyzer.BatchAnalyze(ctx, ds, distributor.BatchOptions{
		Concurrency:       cfg.Batch.Concurrency,
		RequestsPerSecond: cfg.Batch.RequestsPerSecond,
	})

	saved := 0
	for _, intel := range results {
		doc, err := json.Marshal(intel)
		if err != nil {
			continue
		}
		if err := store.SaveIntel(ctx, db, intel.Distributor.ID, doc); err != nil {
			log.Printf("[refresh] save failed id=%s err=%v", intel.Distributor.ID, err)
			continue
		}
		saved++
	}

	log.Printf("[refresh] stale=%d scored=%d saved=%d", len(stale), len(results), saved)
	hub.Publish(events.Make("", events.TypeRefreshRan, map[string]int{
		"stale":  len(stale),
		"scored": len(results),
		"saved":  saved,
	}))
	return nil
}
