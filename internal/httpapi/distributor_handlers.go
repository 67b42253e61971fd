package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync/atomic"

	"greenchainz-intel/internal/config"
	"greenchainz-intel/internal/distributor"
	"greenchainz-intel/internal/events"
	"greenchainz-intel/internal/store"
)

type DistributorHandler struct {
	DB       *sql.DB
	Hub      *events.Hub
	CfgVal   *atomic.Value // config.Config
	Analyzer *distributor.Analyzer
}

type distributorIntelReq struct {
	WebsiteURL string `json:"websiteUrl"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	DeepScan   bool   `json:"deepScan"`
}

func (h DistributorHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req distributorIntelReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.WebsiteURL) == "" {
		writeFailure(w, http.StatusBadRequest, "websiteUrl is required")
		return
	}

	d := distributor.Distributor{
		Name:    strings.TrimSpace(req.Name),
		Website: strings.TrimSpace(req.WebsiteURL),
		Type:    strings.TrimSpace(req.Type),
	}
	if d.Name == "" {
		d.Name = d.Website
	}

	intel, err := h.Analyzer.Analyze(r.Context(), d, req.DeepScan)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.persist(r.Context(), &intel)

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.TypeDistributorScored, map[string]any{
		"name":    intel.Distributor.Name,
		"website": intel.Distributor.Website,
		"overall": intel.Score.Overall,
		"tier":    intel.Score.Tier,
	}))

	writeJSON(w, map[string]any{
		"success":      true,
		"intelligence": intel,
		"summary":      distributor.Summary(intel),
	})
}

type batchReq struct {
	Distributors []distributorIntelReq `json:"distributors"`
	DeepScan     bool                  `json:"deepScan"`
}

func (h DistributorHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if len(req.Distributors) == 0 {
		writeFailure(w, http.StatusBadRequest, "distributors list is empty")
		return
	}

	var ds []distributor.Distributor
	for _, in := range req.Distributors {
		website := strings.TrimSpace(in.WebsiteURL)
		if website == "" {
			continue
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			name = website
		}
		ds = append(ds, distributor.Distributor{Name: name, Website: website, Type: in.Type})
	}
	if len(ds) == 0 {
		writeFailure(w, http.StatusBadRequest, "no distributor has a websiteUrl")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	out := h.Analyzer.BatchAnalyze(r.Context(), ds, distributor.BatchOptions{
		Concurrency:       cfg.Batch.Concurrency,
		RequestsPerSecond: cfg.Batch.RequestsPerSecond,
		DeepScan:          req.DeepScan,
	})

	for i := range out {
		h.persist(r.Context(), &out[i])
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.TypeBatchFinished, map[string]any{
		"requested": len(ds),
		"scored":    len(out),
	}))

	writeJSON(w, map[string]any{
		"success":   true,
		"requested": len(ds),
		"scored":    len(out),
		"results":   out,
	})
}

func (h DistributorHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := store.ListDistributors(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, rows)
}

// persist registers the distributor and stores the snapshot, best-effort.
func (h DistributorHandler) persist(ctx context.Context, intel *distributor.Intelligence) {
	if h.DB == nil {
		return
	}
	id, err := store.UpsertDistributor(ctx, h.DB, intel.Distributor.Name, intel.Distributor.Website, intel.Distributor.Type)
	if err != nil {
		log.Printf("[distributor] upsert failed website=%s err=%v", intel.Distributor.Website, err)
		return
	}
	intel.Distributor.ID = id
	doc, err := json.Marshal(intel)
	if err == nil {
		err = store.SaveIntel(ctx, h.DB, id, doc)
	}
	if err != nil {
		log.Printf("[distributor] snapshot save failed id=%s err=%v", id, err)
	}
}
