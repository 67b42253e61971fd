package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs
// srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Persona scraper
	sh := ScraperHandler{DB: d.DB, Hub: d.Hub, Scraper: d.Scraper}
	mux.HandleFunc("/persona-scraper", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Run,
	}))
	mux.HandleFunc("/scrapes", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.List,
	}))

	// Distributor intelligence
	dh := DistributorHandler{DB: d.DB, Hub: d.Hub, CfgVal: d.CfgVal, Analyzer: d.Analyzer}
	mux.HandleFunc("/distributor-intelligence", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Analyze,
	}))
	mux.HandleFunc("/distributor-intelligence/batch", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Batch,
	}))
	mux.HandleFunc("/distributors", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.List,
	}))

	// Persona registry + rules store
	ph := PersonaHandler{DB: d.DB, Rules: d.Rules}
	mux.HandleFunc("/personas", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.List,
	}))
	mux.HandleFunc("/personas/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.GetByPath,
		http.MethodPut: ph.PutByPath,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets
	skh := SecretsHandler{}
	mux.HandleFunc("/api/secrets/access-key", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: skh.SetAccessKey,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health + maintenance
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))
	dbh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dbh.Checkpoint,
	}))

	return mux
}
