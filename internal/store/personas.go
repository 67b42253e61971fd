package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"greenchainz-intel/internal/persona"
)

// GetPersonaDoc does a point read on the rules document store. ok=false
// with a nil error means the store has no record for the ID.
func GetPersonaDoc(ctx context.Context, db *sql.DB, personaID string) (persona.Persona, bool, error) {
	var doc string
	var createdAt, updatedAt string
	err := db.QueryRowContext(ctx,
		`SELECT doc, created_at, updated_at FROM persona_rules WHERE persona_id = ? LIMIT 1;`,
		personaID,
	).Scan(&doc, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return persona.Persona{}, false, nil
	}
	if err != nil {
		return persona.Persona{}, false, err
	}

	var p persona.Persona
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return persona.Persona{}, false, fmt.Errorf("persona doc %s: %w", personaID, err)
	}
	p.PersonaID = personaID
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return p, true, nil
}

// ListPersonaDocs scans the whole rules collection.
func ListPersonaDocs(ctx context.Context, db *sql.DB) ([]persona.Persona, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT persona_id, doc, created_at, updated_at FROM persona_rules ORDER BY persona_id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []persona.Persona
	for rows.Next() {
		var id, doc, createdAt, updatedAt string
		if err := rows.Scan(&id, &doc, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		var p persona.Persona
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("persona doc %s: %w", id, err)
		}
		p.PersonaID = id
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpsertPersonaDoc writes a rules override. Used by fixtures and by the
// rules import endpoint; the serving path never writes.
func UpsertPersonaDoc(ctx context.Context, db *sql.DB, p persona.Persona) error {
	if p.PersonaID == "" {
		return fmt.Errorf("persona doc: empty personaId")
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.ExecContext(ctx, `
INSERT INTO persona_rules(persona_id, doc, created_at, updated_at)
VALUES(?,?,?,?)
ON CONFLICT(persona_id) DO UPDATE SET
  doc = excluded.doc,
  updated_at = excluded.updated_at;
`, p.PersonaID, string(b), now, now)
	return err
}
