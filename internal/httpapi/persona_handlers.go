package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"greenchainz-intel/internal/persona"
	"greenchainz-intel/internal/rules"
	"greenchainz-intel/internal/store"
)

type PersonaHandler struct {
	DB    *sql.DB
	Rules *rules.Service
}

// List returns every persona the engine can serve: the static registry
// overlaid with any store records. ?source=store returns store docs only.
func (h PersonaHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("source") == "store" {
		writeJSON(w, h.Rules.AllRules(r.Context()))
		return
	}

	byID := map[string]persona.Persona{}
	for _, p := range persona.All() {
		byID[p.PersonaID] = p
	}
	for _, p := range h.Rules.AllRules(r.Context()) {
		byID[p.PersonaID] = p
	}

	out := make([]persona.Persona, 0, len(byID))
	for _, p := range persona.All() {
		out = append(out, byID[p.PersonaID])
		delete(byID, p.PersonaID)
	}
	for _, p := range byID {
		out = append(out, p)
	}
	writeJSON(w, out)
}

func (h PersonaHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/personas/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "bad_persona_id", "invalid persona id")
		return
	}

	p, ok := h.Rules.Rules(r.Context(), id)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "persona_not_found", "persona not found: "+id)
		return
	}
	writeJSON(w, p)
}

// PutByPath writes a rules override into the document store and drops the
// cached entry so the next scrape sees it.
func (h PersonaHandler) PutByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/personas/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "bad_persona_id", "invalid persona id")
		return
	}

	var p persona.Persona
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON body: "+err.Error())
		return
	}
	p.PersonaID = id

	if err := persona.Validate(p); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_persona", err.Error())
		return
	}

	if err := store.UpsertPersonaDoc(r.Context(), h.DB, p); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	h.Rules.Invalidate(id)
	writeJSON(w, p)
}
