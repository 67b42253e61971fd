package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

type ScrapeRow struct {
	ID        string          `json:"id"`
	TargetURL string          `json:"targetUrl"`
	PersonaID string          `json:"personaId"`
	JobTitle  string          `json:"jobTitle"`
	Data      json.RawMessage `json:"data"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt time.Time       `json:"createdAt"`
}

func InsertScrapeResult(ctx context.Context, db *sql.DB, row ScrapeRow) error {
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO scrape_results(id, target_url, persona_id, job_title, data, metadata, created_at)
VALUES(?,?,?,?,?,?,?);`,
		row.ID,
		row.TargetURL,
		row.PersonaID,
		row.JobTitle,
		string(row.Data),
		string(row.Metadata),
		row.CreatedAt.Format(time.RFC3339),
	)
	return err
}

func ListScrapeResults(ctx context.Context, db *sql.DB, limit int) ([]ScrapeRow, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, target_url, persona_id, job_title, data, metadata, created_at
FROM scrape_results
ORDER BY created_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScrapeRow
	for rows.Next() {
		var r ScrapeRow
		var data, meta, created string
		if err := rows.Scan(&r.ID, &r.TargetURL, &r.PersonaID, &r.JobTitle, &data, &meta, &created); err != nil {
			return nil, err
		}
		r.Data = json.RawMessage(data)
		r.Metadata = json.RawMessage(meta)
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, r)
	}
	return out, rows.Err()
}
