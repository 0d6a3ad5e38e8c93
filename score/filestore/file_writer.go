package filestore

import (
	"encoding/json"
	"os"
)

var openFileWriter = appendOnlyFileWriter

type writer interface {
	WriteString(s string) (int, error)
	Close() error
}

func requireSaveDir(directory string) error {
	return os.MkdirAll(directory, 0775)
}

func writeLine(w writer, data interface{}) error {
	j, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = w.WriteString(string(j) + "\n")
	return err
}

func appendOnlyFileWriter(directory string) (writer, error) {
	if err := requireSaveDir(directory); err != nil {
		return nil, err
	}

	flags := os.O_APPEND | os.O_WRONLY | os.O_CREATE
	return os.OpenFile(getFilePath(directory), flags, 0644)
}
