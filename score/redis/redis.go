package redis

import (
	"context"
	"sort"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"

	"github.com/gridserpent/engine/score"
)

// scoresKey is the hash holding the leaderboard, one field per player name.
const scoresKey = "serpent:scores"

// Store is a score store backed by redis.
type Store struct {
	client *redis.Client
}

// NewStore will create a new instance of an underlying redis client, so it
// should not be re-created across "threads".
// - connectURL see: github.com/go-redis/redis/options.go for URL specifics
// The underlying redis client will be immediately tested for connectivity, so
// don't call this until you know redis can connect.
func NewStore(connectURL string) (*Store, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis URL")
	}

	client := redis.NewClient(o)

	// Validate it's connected
	err = client.Ping().Err()
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect")
	}

	return &Store{client: client}, nil
}

// Set writes one leaderboard field, overwriting any previous submission for
// the name.
func (rs *Store) Set(ctx context.Context, name, value string) error {
	if err := rs.client.HSet(scoresKey, name, value).Err(); err != nil {
		return errors.Wrap(err, "unable to write score")
	}
	return nil
}

// List fetches the whole leaderboard.
func (rs *Store) List(ctx context.Context) ([]score.Entry, error) {
	fields, err := rs.client.HGetAll(scoresKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read scores")
	}

	entries := make([]score.Entry, 0, len(fields))
	for name, value := range fields {
		entries = append(entries, score.Entry{Name: name, Score: value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Close closes the underlying redis client.
func (rs *Store) Close() error {
	return rs.client.Close()
}
