package commit

import "fmt"

// FormatError reports a commit message that does not follow the
// conventional commits format.
type FormatError struct {
	Line   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Line)
}

func formatError(line, reason string) *FormatError {
	return &FormatError{
		Line:   line,
		Reason: reason,
	}
}
