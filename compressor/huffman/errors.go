package huffman

import (
	"errors"
	"fmt"
)

// ErrFormat is matched (via errors.Is) by every error caused by a malformed
// container.
var ErrFormat = errors.New("huffman: invalid container")

// FormatError describes why a container could not be decoded.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("huffman: invalid container: %s: %v", e.Reason, e.Err)
	}
	return "huffman: invalid container: " + e.Reason
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatError(err error, format string, args ...any) error {
	return &FormatError{Reason: fmt.Sprintf(format, args...), Err: err}
}
