package httpapi

import (
	"encoding/json"
	"net/http"

	"greenchainz-intel/internal/secrets"
)

type SecretsHandler struct{}

type setAccessKeyReq struct {
	Key string `json:"key"`
}

func (h SecretsHandler) SetAccessKey(w http.ResponseWriter, r *http.Request) {
	var req setAccessKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := secrets.SetAccessKey(req.Key); err != nil {
		http.Error(w, "failed to store access key: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
