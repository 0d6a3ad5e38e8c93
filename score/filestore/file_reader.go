package filestore

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
)

// readScores replays the submission log into a name to score map. A missing
// file is an empty leaderboard, any other problem is returned as is.
func readScores(directory string) (map[string]string, error) {
	f, err := os.Open(getFilePath(directory))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	defer f.Close()

	scores := map[string]string{}
	reader := bufio.NewReader(f)
	more := true
	for more {
		var rec *record
		rec, more, err = readRecord(reader)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			scores[rec.Name] = rec.Score
		}
	}
	return scores, nil
}

func readRecord(r *bufio.Reader) (*record, bool, error) {
	line, err := r.ReadBytes('\n')
	eof := err == io.EOF

	if err != nil && !eof {
		return nil, false, err
	}
	if len(bytes.TrimSpace(line)) == 0 {
		return nil, !eof, nil
	}

	rec := &record{}
	if err := json.Unmarshal(line, rec); err != nil {
		return nil, false, err
	}
	return rec, !eof, nil
}
