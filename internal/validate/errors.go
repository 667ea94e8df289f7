package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FieldError is one violated field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError reports every violated field of a document.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Path, f.Message))
	}
	return fmt.Sprintf("validate: %d invalid field(s): %s", len(e.Fields), strings.Join(parts, "; "))
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidationError returns the *ValidationError in err's chain, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// collector dedupes field errors by path, keeping the first message.
type collector struct {
	seen   map[string]struct{}
	fields []FieldError
}

func (c *collector) add(path, msg string) {
	if c.seen == nil {
		c.seen = make(map[string]struct{})
	}
	if _, ok := c.seen[path]; ok {
		return
	}
	c.seen[path] = struct{}{}
	c.fields = append(c.fields, FieldError{Path: path, Message: msg})
}

func (c *collector) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	sort.Slice(c.fields, func(i, j int) bool { return c.fields[i].Path < c.fields[j].Path })
	return &ValidationError{Fields: c.fields}
}
