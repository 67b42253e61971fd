package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"greenchainz-intel/internal/events"
	"greenchainz-intel/internal/scrape"
	"greenchainz-intel/internal/store"
)

type ScraperHandler struct {
	DB      *sql.DB
	Hub     *events.Hub
	Scraper *scrape.Runner
}

type personaScrapeReq struct {
	TargetURL      string   `json:"targetUrl"`
	PersonaID      string   `json:"personaId"`
	CustomKeywords []string `json:"customKeywords"`
}

func (h ScraperHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req personaScrapeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.TargetURL) == "" || strings.TrimSpace(req.PersonaID) == "" {
		writeFailure(w, http.StatusBadRequest, "targetUrl and personaId are required")
		return
	}

	res, err := h.Scraper.Run(r.Context(), req.TargetURL, req.PersonaID, req.CustomKeywords)
	if errors.Is(err, scrape.ErrPersonaNotFound) {
		writeFailure(w, http.StatusNotFound, "persona not found: "+req.PersonaID)
		return
	}
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.TypeScrapeCompleted, map[string]any{
		"id":        res.ID,
		"personaId": res.PersonaID,
		"targetUrl": res.TargetURL,
	}))
	writeJSON(w, res)
}

func (h ScraperHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := store.ListScrapeResults(r.Context(), h.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, rows)
}
