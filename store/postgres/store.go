// Package postgres is an optional plant-snapshot backend for
// installations that want historical register readings queryable by time,
// rather than just the latest state jsonfile keeps on disk.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/plant"
)

// Store appends timestamped JSON snapshots of a plant's register caches to
// a Postgres table, one row per (slave address, timestamp).
type Store struct {
	db *sql.DB
}

// Open connects to dsn and ensures the snapshot table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS register_snapshots (
	id BIGSERIAL PRIMARY KEY,
	slave_address SMALLINT NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL,
	registers JSONB NOT NULL
)`
	_, err := s.db.ExecContext(ctx, ddl)
	if err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

// Save inserts one snapshot row per cache known to p, stamped at.
func (s *Store) Save(ctx context.Context, p *plant.Plant, at time.Time) error {
	for _, addr := range p.Addresses() {
		c, ok := p.Cache(addr)
		if !ok {
			continue
		}
		data, err := c.ToJSON()
		if err != nil {
			return fmt.Errorf("postgres: encode slave 0x%02x: %w", addr, err)
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO register_snapshots (slave_address, recorded_at, registers) VALUES ($1, $2, $3)`,
			int(addr), at, data)
		if err != nil {
			return fmt.Errorf("postgres: insert slave 0x%02x: %w", addr, err)
		}
	}
	return nil
}

// Latest returns the most recently recorded snapshot JSON for addr, and
// whether one exists.
func (s *Store) Latest(ctx context.Context, addr common.SlaveAddress) ([]byte, time.Time, bool, error) {
	var data []byte
	var at time.Time
	row := s.db.QueryRowContext(ctx,
		`SELECT registers, recorded_at FROM register_snapshots WHERE slave_address = $1 ORDER BY recorded_at DESC LIMIT 1`,
		int(addr))
	switch err := row.Scan(&data, &at); err {
	case nil:
		return data, at, true, nil
	case sql.ErrNoRows:
		return nil, time.Time{}, false, nil
	default:
		return nil, time.Time{}, false, fmt.Errorf("postgres: query slave 0x%02x: %w", addr, err)
	}
}
