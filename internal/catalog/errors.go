package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrConstraint  = errors.New("constraint violation")
	ErrUnavailable = errors.New("store unavailable")
)

// Error reports a failed gateway call. Class is one of the sentinel
// errors above, or nil for failures that fit none of them.
type Error struct {
	Op    string
	Kind  Kind
	Class error
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return e.Class != nil && target == e.Class }

func fail(op string, kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Class: classify(err), Err: errors.WithStack(err)}
}

func classify(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return ErrConstraint
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrUnavailable
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "constraint"), strings.Contains(msg, "violates"):
		return ErrConstraint
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "database is closed"), strings.Contains(msg, "broken pipe"):
		return ErrUnavailable
	}
	return nil
}
