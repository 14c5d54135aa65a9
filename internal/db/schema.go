package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied on startup. The unique index on
// (practitioner_id, slot_date, start_time) is what makes slot creation
// idempotent under concurrency; application code only narrows the race.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS practitioners (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		specialty TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS patients (
		id UUID PRIMARY KEY,
		practitioner_id UUID NOT NULL REFERENCES practitioners(id),
		full_name TEXT NOT NULL,
		birth_date DATE,
		phone TEXT,
		email TEXT,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_patients_practitioner ON patients(practitioner_id)`,
	`CREATE TABLE IF NOT EXISTS clinical_notes (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients(id),
		session_at TIMESTAMPTZ NOT NULL,
		ciphertext BYTEA NOT NULL,
		session_type TEXT,
		duration_minutes INT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_patient ON clinical_notes(patient_id)`,
	`CREATE TABLE IF NOT EXISTS slots (
		id UUID PRIMARY KEY,
		practitioner_id UUID NOT NULL REFERENCES practitioners(id),
		slot_date DATE NOT NULL,
		start_time TIME NOT NULL,
		end_time TIME NOT NULL,
		session_type TEXT,
		price_cents BIGINT,
		notes TEXT NOT NULL DEFAULT '',
		booked BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT slots_start_before_end CHECK (start_time < end_time)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_slots_key ON slots(practitioner_id, slot_date, start_time)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients(id),
		practitioner_id UUID NOT NULL REFERENCES practitioners(id),
		starts_at TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL DEFAULT 'scheduled',
		price_cents BIGINT,
		duration_minutes INT,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_practitioner ON appointments(practitioner_id, starts_at)`,
	`CREATE TABLE IF NOT EXISTS agenda_entries (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients(id),
		practitioner_id UUID NOT NULL REFERENCES practitioners(id),
		starts_at TIMESTAMPTZ NOT NULL,
		engagements TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'scheduled',
		recurring BOOLEAN NOT NULL DEFAULT FALSE,
		frequency TEXT,
		span TEXT,
		group_id UUID,
		parent_id UUID REFERENCES agenda_entries(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_agenda_practitioner ON agenda_entries(practitioner_id, starts_at)`,
	`CREATE INDEX IF NOT EXISTS idx_agenda_group ON agenda_entries(group_id)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id UUID PRIMARY KEY,
		author_id UUID NOT NULL REFERENCES practitioners(id),
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		media_path TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id)`,
}

// Bootstrap creates the schema if it does not exist yet.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
