// Package score persists the leaderboard: a flat mapping of player name to
// the score they last submitted. Scores are carried as the strings the
// submitter produced, ordering is the presenter's problem.
package score

import (
	"context"
	"sort"
	"strconv"
	"sync"
)

// Entry is one leaderboard row.
type Entry struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}

// Store is the interface to the backend score store. Setting an existing
// name overwrites it.
type Store interface {
	Set(ctx context.Context, name, score string) error
	List(ctx context.Context) ([]Entry, error)
}

// InMemStore returns an in memory implementation of the Store interface.
func InMemStore() Store {
	return &inmem{scores: map[string]string{}}
}

type inmem struct {
	scores map[string]string
	lock   sync.Mutex
}

func (in *inmem) Set(ctx context.Context, name, score string) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	in.scores[name] = score
	return nil
}

func (in *inmem) List(ctx context.Context) ([]Entry, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	entries := make([]Entry, 0, len(in.scores))
	for name, score := range in.scores {
		entries = append(entries, Entry{Name: name, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Rank orders entries for display: highest score first, ties broken by name.
// Values that do not parse as integers sort after everything that does.
func Rank(entries []Entry) []Entry {
	ranked := append([]Entry{}, entries...)
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, oki := parseScore(ranked[i].Score)
		vj, okj := parseScore(ranked[j].Score)
		if oki != okj {
			return oki
		}
		if vi != vj {
			return vi > vj
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

func parseScore(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	return v, err == nil
}
