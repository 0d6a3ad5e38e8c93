package filestore

import (
	"context"
	"os/user"
	"path"
	"sort"
	"sync"

	"github.com/gridserpent/engine/score"
)

func defaultDir() string {
	return path.Join(homeDir(), ".serpent")
}

func homeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// NewFileStore returns a file based store implementation backed by an append
// only log of submissions, one JSON record per line. The latest record for a
// name wins, so overwrites never rewrite the file.
func NewFileStore(directory string) score.Store {
	if directory == "" {
		directory = defaultDir()
	}

	return &fileStore{directory: directory}
}

type record struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}

type fileStore struct {
	scores    map[string]string
	writer    writer
	lock      sync.Mutex
	directory string
}

func (fs *fileStore) Set(ctx context.Context, name, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := fs.requireLoaded(); err != nil {
		return err
	}
	handle, err := fs.requireHandle()
	if err != nil {
		return err
	}
	if err := writeLine(handle, &record{Name: name, Score: value}); err != nil {
		return err
	}
	fs.scores[name] = value
	return nil
}

func (fs *fileStore) List(ctx context.Context) ([]score.Entry, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := fs.requireLoaded(); err != nil {
		return nil, err
	}

	entries := make([]score.Entry, 0, len(fs.scores))
	for name, value := range fs.scores {
		entries = append(entries, score.Entry{Name: name, Score: value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Close releases the handle to the submission log. Safe to call when nothing
// was ever written.
func (fs *fileStore) Close() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.writer == nil {
		return nil
	}
	err := fs.writer.Close()
	fs.writer = nil
	return err
}

// requireLoaded replays the log into memory on first use.
func (fs *fileStore) requireLoaded() error {
	if fs.scores != nil {
		return nil
	}

	scores, err := readScores(fs.directory)
	if err != nil {
		return err
	}
	fs.scores = scores
	return nil
}

func (fs *fileStore) requireHandle() (writer, error) {
	if fs.writer != nil {
		return fs.writer, nil
	}

	handle, err := openFileWriter(fs.directory)
	if err != nil {
		return nil, err
	}
	fs.writer = handle
	return handle, nil
}

func getFilePath(directory string) string {
	return path.Join(directory, "scores.jsonl")
}
