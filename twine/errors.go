package twine

import "fmt"

// MalformedInputError reports input which lacks expected story boundaries.
// It is structural and fatal, there is no point in retrying.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed story markup: %s", e.Reason)
}

func malformed(format string, args ...any) error {
	return &MalformedInputError{Reason: fmt.Sprintf(format, args...)}
}
