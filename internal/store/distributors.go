package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

type DistributorRow struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Website   string          `json:"website"`
	Type      string          `json:"type"`
	Coverage  json.RawMessage `json:"coverage"`
	Contact   json.RawMessage `json:"contact"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`

	// Latest snapshot, if any.
	Intel      json.RawMessage `json:"intel,omitempty"`
	AnalyzedAt time.Time       `json:"analyzedAt,omitempty"`
}

// UpsertDistributor registers a distributor keyed by website and returns
// its ID. Re-registering an existing website refreshes name/type.
func UpsertDistributor(ctx context.Context, db *sql.DB, name, website, typ string) (string, error) {
	website = strings.ToLower(strings.TrimSpace(website))

	var id string
	err := db.QueryRowContext(ctx,
		`SELECT id FROM distributors WHERE website = ? LIMIT 1;`, website,
	).Scan(&id)
	now := time.Now().UTC().Format(time.RFC3339)

	if err == sql.ErrNoRows {
		id = uuid.NewString()
		_, err = db.ExecContext(ctx, `
INSERT INTO distributors(id, name, website, type, created_at, updated_at)
VALUES(?,?,?,?,?,?);`, id, name, website, typ, now, now)
		return id, err
	}
	if err != nil {
		return "", err
	}

	_, err = db.ExecContext(ctx, `
UPDATE distributors SET name = ?, type = ?, updated_at = ? WHERE id = ?;`,
		name, typ, now, id)
	return id, err
}

// SaveIntel stores the latest intelligence snapshot for a distributor,
// replacing any prior one.
func SaveIntel(ctx context.Context, db *sql.DB, distributorID string, doc json.RawMessage) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO distributor_intel(distributor_id, doc, analyzed_at)
VALUES(?,?,?)
ON CONFLICT(distributor_id) DO UPDATE SET
  doc = excluded.doc,
  analyzed_at = excluded.analyzed_at;
`, distributorID, string(doc), time.Now().UTC().Format(time.RFC3339))
	return err
}

// ListDistributors returns the registry joined with latest snapshots.
func ListDistributors(ctx context.Context, db *sql.DB) ([]DistributorRow, error) {
	rows, err := db.QueryContext(ctx, `
SELECT d.id, d.name, d.website, d.type, d.coverage, d.contact, d.created_at, d.updated_at,
       COALESCE(i.doc, ''), COALESCE(i.analyzed_at, '')
FROM distributors d
LEFT JOIN distributor_intel i ON i.distributor_id = d.id
ORDER BY d.name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DistributorRow
	for rows.Next() {
		var r DistributorRow
		var coverage, contact, created, updated, intel, analyzed string
		if err := rows.Scan(&r.ID, &r.Name, &r.Website, &r.Type, &coverage, &contact, &created, &updated, &intel, &analyzed); err != nil {
			return nil, err
		}
		r.Coverage = json.RawMessage(coverage)
		r.Contact = json.RawMessage(contact)
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		r.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		if intel != "" {
			r.Intel = json.RawMessage(intel)
			r.AnalyzedAt, _ = time.Parse(time.RFC3339, analyzed)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// StaleDistributors returns distributors whose latest snapshot is older
// than maxAge (or who have never been analyzed). Feeds the refresh lane.
func StaleDistributors(ctx context.Context, db *sql.DB, maxAge time.Duration, limit int) ([]DistributorRow, error) {
	if limit <= 0 {
		limit = 20
	}
	cutoff := time.Now().UTC().Add(-maxAge).Format(time.RFC3339)
	rows, err := db.QueryContext(ctx, `
SELECT d.id, d.name, d.website, d.type
FROM distributors d
LEFT JOIN distributor_intel i ON i.distributor_id = d.id
WHERE i.analyzed_at IS NULL OR i.analyzed_at < ?
ORDER BY COALESCE(i.analyzed_at, '') ASC
LIMIT ?;`, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DistributorRow
	for rows.Next() {
		var r DistributorRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Website, &r.Type); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
