package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DDL do catálogo. As três tabelas espelham a hierarquia Sport → Event →
// Selection; enums são restringidos por CHECK no próprio banco e os
// timestamps são TEXT zone-free no layout canônico (UTC por convenção).
var schemaSQLite = []string{
	`CREATE TABLE IF NOT EXISTS sports (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		name   TEXT NOT NULL,
		slug   TEXT NOT NULL UNIQUE,
		active BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL,
		slug            TEXT NOT NULL UNIQUE,
		active          BOOLEAN NOT NULL,
		type            TEXT NOT NULL CHECK (type IN ('preplay','inplay')),
		sport_id        INTEGER NOT NULL REFERENCES sports(id),
		status          TEXT NOT NULL CHECK (status IN ('Pending','Started','Ended','Cancelled')),
		scheduled_start TEXT NOT NULL,
		actual_start    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS selections (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		name     TEXT NOT NULL,
		event_id INTEGER NOT NULL REFERENCES events(id),
		price    REAL NOT NULL CHECK (price >= 0),
		active   BOOLEAN NOT NULL,
		outcome  TEXT NOT NULL CHECK (outcome IN ('Unsettled','Void','Lose','Win'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_sport_id ON events(sport_id)`,
	`CREATE INDEX IF NOT EXISTS idx_selections_event_id ON selections(event_id)`,
}

var schemaPostgres = []string{
	`CREATE TABLE IF NOT EXISTS sports (
		id     BIGSERIAL PRIMARY KEY,
		name   TEXT NOT NULL,
		slug   TEXT NOT NULL UNIQUE,
		active BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id              BIGSERIAL PRIMARY KEY,
		name            TEXT NOT NULL,
		slug            TEXT NOT NULL UNIQUE,
		active          BOOLEAN NOT NULL,
		type            TEXT NOT NULL CHECK (type IN ('preplay','inplay')),
		sport_id        BIGINT NOT NULL REFERENCES sports(id),
		status          TEXT NOT NULL CHECK (status IN ('Pending','Started','Ended','Cancelled')),
		scheduled_start TEXT NOT NULL,
		actual_start    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS selections (
		id       BIGSERIAL PRIMARY KEY,
		name     TEXT NOT NULL,
		event_id BIGINT NOT NULL REFERENCES events(id),
		price    DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		active   BOOLEAN NOT NULL,
		outcome  TEXT NOT NULL CHECK (outcome IN ('Unsettled','Void','Lose','Win'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_sport_id ON events(sport_id)`,
	`CREATE INDEX IF NOT EXISTS idx_selections_event_id ON selections(event_id)`,
}

// Migrate cria as tabelas do catálogo para o driver indicado ("postgres" ou
// "sqlite"). Idempotente: pode rodar em todo start do seeder.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case "postgres":
		stmts = schemaPostgres
	case "sqlite":
		stmts = schemaSQLite
	default:
		return fmt.Errorf("unknown db driver %q", driver)
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate catalog schema: %w", err)
		}
	}
	return nil
}
