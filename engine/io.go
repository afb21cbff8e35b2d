package engine

import (
	"errors"
	"fmt"
	"os"
)

// ErrIO is matched (via errors.Is) by every error raised while reading a
// source or writing a destination.
var ErrIO = errors.New("engine: i/o failure")

type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func LoadBytes(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return content, nil
}

// StoreBytes writes data to path, replacing any existing file.
func StoreBytes(data []byte, path string) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil {
		return &IOError{Op: "remove", Path: path, Err: err}
	}
	return nil
}
