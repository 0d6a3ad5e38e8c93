package sqlstore

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq" // Import pq driver.
	log "github.com/sirupsen/logrus"

	"github.com/gridserpent/engine/config"
	"github.com/gridserpent/engine/score"
)

const migrations = `
CREATE TABLE IF NOT EXISTS scores (
	name VARCHAR(255) PRIMARY KEY,
	score VARCHAR(255) NOT NULL,
	updated TIMESTAMP NOT NULL DEFAULT now()
);
`

// NewSQLStore returns a new store using a postgres database.
func NewSQLStore(url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.SQLTimeout)
	defer cancel()

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	if err = db.PingContext(ctx); err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx, migrations)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Store represents an SQL store.
type Store struct {
	db *sql.DB
}

// transact is a transaction wrapper, helps avoid failed to close connections.
func (s *Store) transact(
	ctx context.Context, txFunc func(*sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
			panic(p) // re-throw panic after Rollback
		} else if err != nil {
			// err is non-nil; don't change it
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
		} else {
			err = tx.Commit() // err is nil; if Commit returns error update err
		}
	}()
	err = txFunc(tx)
	return err
}

// Set upserts one leaderboard row.
func (s *Store) Set(ctx context.Context, name, value string) error {
	return s.transact(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO scores (name, score, updated) VALUES ($1, $2, now())
		ON CONFLICT (name)
		DO UPDATE SET score=$2, updated=now()`,
			name, value,
		)
		return err
	})
}

// List fetches the whole leaderboard.
func (s *Store) List(ctx context.Context) ([]score.Entry, error) {
	rows, err := s.db.QueryContext(
		ctx, "SELECT name, score FROM scores ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []score.Entry{}
	for rows.Next() {
		var e score.Entry
		if err := rows.Scan(&e.Name, &e.Score); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
