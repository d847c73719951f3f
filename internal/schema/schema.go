// Package schema creates the Postgres tables the repositories expect.
package schema

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type statement struct {
	name  string
	query string
}

var statements = []statement{
	{"users table", `
		CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			status TEXT NOT NULL DEFAULT 'Active',
			total_rides INT NOT NULL DEFAULT 0,
			total_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_spent BIGINT NOT NULL DEFAULT 0
		)
	`},
	{"stations table", `
		CREATE TABLE IF NOT EXISTS stations (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			available_bikes INT NOT NULL DEFAULT 0,
			total_capacity INT NOT NULL DEFAULT 0
		)
	`},
	// Station references are plain ids: a bike parked at a station that was
	// removed is still a bike.
	{"bikes table", `
		CREATE TABLE IF NOT EXISTS bikes (
			id BIGINT PRIMARY KEY,
			model TEXT NOT NULL,
			type TEXT NOT NULL,
			station_id BIGINT,
			available BOOLEAN NOT NULL DEFAULT TRUE
		)
	`},
	{"rides table", `
		CREATE TABLE IF NOT EXISTS rides (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL,
			bike_id BIGINT NOT NULL,
			station_id BIGINT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			requested_hours INT NOT NULL,
			estimated_amount BIGINT NOT NULL,
			status TEXT NOT NULL,
			ended_at TIMESTAMPTZ,
			elapsed_minutes BIGINT,
			elapsed_hours DOUBLE PRECISION,
			final_amount BIGINT,
			dropoff_station_id BIGINT
		)
	`},
	{"one ongoing ride per bike", `
		CREATE UNIQUE INDEX IF NOT EXISTS rides_one_ongoing_per_bike
			ON rides (bike_id) WHERE status = 'Ongoing'
	`},
	{"rides by user index", `
		CREATE INDEX IF NOT EXISTS rides_user_started_at
			ON rides (user_id, started_at DESC)
	`},
	{"payments table", `
		CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY,
			ride_id UUID NOT NULL UNIQUE REFERENCES rides (id) ON DELETE CASCADE,
			user_id BIGINT NOT NULL,
			bike_id BIGINT NOT NULL,
			amount BIGINT NOT NULL,
			method TEXT NOT NULL,
			status TEXT NOT NULL,
			paid_at TIMESTAMPTZ NOT NULL,
			duration_minutes BIGINT NOT NULL,
			duration_hours DOUBLE PRECISION NOT NULL
		)
	`},
	{"payments by user index", `
		CREATE INDEX IF NOT EXISTS payments_user_paid_at
			ON payments (user_id, paid_at DESC)
	`},
}

// Apply creates any missing table or index. It is safe to run repeatedly.
func Apply(ctx context.Context, db sqlx.ExecerContext) error {
	for _, s := range statements {
		if _, err := db.ExecContext(ctx, s.query); err != nil {
			return fmt.Errorf("failed to create %s: %w", s.name, err)
		}
	}
	return nil
}
