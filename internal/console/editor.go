package console

import (
	"context"

	"github.com/diewo77/techfix/internal/catalog"
	"github.com/diewo77/techfix/internal/validation"
	"github.com/pkg/errors"
)

// State of an editor.
type State int

const (
	StateBrowsing State = iota
	StateEditingNew
	StateEditingExisting
	StateSaving
)

func (s State) String() string {
	return [...]string{"browsing", "editing-new", "editing-existing", "saving"}[s]
}

// Op is the write a submit issued.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
)

var (
	ErrInvalid    = errors.New("console: form has field errors")
	ErrTransition = errors.New("console: not editing")
)

// Editor drives the browse/edit/save cycle for one record kind. It is not
// safe for concurrent use; each request builds its own.
type Editor[R catalog.Record] struct {
	kind   catalog.Kind
	store  catalog.Store[R]
	binder Binder[R]

	state      State
	prior      State
	form       Form
	rows       []R
	violations validation.Violations
	err        error
	listErr    error
}

func New[R catalog.Record](kind catalog.Kind, store catalog.Store[R], binder Binder[R]) *Editor[R] {
	return &Editor[R]{kind: kind, store: store, binder: binder}
}

func (e *Editor[R]) Kind() catalog.Kind                { return e.kind }
func (e *Editor[R]) State() State                      { return e.state }
func (e *Editor[R]) Form() Form                        { return e.form }
func (e *Editor[R]) Rows() []R                         { return e.rows }
func (e *Editor[R]) Violations() validation.Violations { return e.violations }

// Err is the error of the last failed save or delete.
func (e *Editor[R]) Err() error { return e.err }

// ListErr is the error of the last list fetch.
func (e *Editor[R]) ListErr() error { return e.listErr }

// Editing reports whether a form is open, including after a failed save.
func (e *Editor[R]) Editing() bool {
	switch e.state {
	case StateEditingNew, StateEditingExisting:
		return true
	}
	return false
}

// Browse re-fetches every row of the kind, in any stock state.
func (e *Editor[R]) Browse(ctx context.Context) error {
	rows, err := e.store.List(ctx, nil)
	e.listErr = err
	if err != nil {
		e.rows = nil
		return err
	}
	e.rows = rows
	if !e.Editing() {
		e.state = StateBrowsing
	}
	return nil
}

// Add opens a blank form with the default values.
func (e *Editor[R]) Add() {
	e.open(e.binder.Blank())
}

// Edit copies row id from a fresh list into the form.
func (e *Editor[R]) Edit(ctx context.Context, id string) error {
	if err := e.Browse(ctx); err != nil {
		return err
	}
	for _, row := range e.rows {
		if e.binder.ID(row) == id {
			e.open(e.binder.Fill(row))
			return nil
		}
	}
	return &catalog.Error{Op: "edit", Kind: e.kind, Class: catalog.ErrNotFound, Err: catalog.ErrNotFound}
}

// Open resumes editing a submitted form.
func (e *Editor[R]) Open(f Form) {
	e.open(f.clone())
}

func (e *Editor[R]) open(f Form) {
	e.form = f
	e.violations = nil
	e.err = nil
	if f.Existing() {
		e.state = StateEditingExisting
	} else {
		e.state = StateEditingNew
	}
}

// Set stages a field value.
func (e *Editor[R]) Set(field, value string) error {
	if !e.Editing() {
		return ErrTransition
	}
	if e.form.Values == nil {
		e.form.Values = map[string]string{}
	}
	e.form.Values[field] = value
	return nil
}

// Cancel discards the form without writing.
func (e *Editor[R]) Cancel() {
	e.form = Form{}
	e.violations = nil
	e.err = nil
	e.state = StateBrowsing
}

// Submit writes the form: an update when it targets an existing row,
// an insert otherwise. On success the form is cleared and the list is
// re-fetched. On failure the form is kept for another attempt.
func (e *Editor[R]) Submit(ctx context.Context) (Op, error) {
	if !e.Editing() {
		return "", ErrTransition
	}
	e.prior = e.state
	op := OpInsert
	if e.form.Existing() {
		op = OpUpdate
	}

	rec, violations, err := e.binder.Decode(e.form)
	if !violations.Empty() {
		e.violations = violations
		e.state = e.prior
		return op, ErrInvalid
	}
	e.violations = nil
	if err != nil {
		return op, e.fail(err)
	}

	e.state = StateSaving
	if op == OpUpdate {
		err = e.store.Update(ctx, e.form.ID, &rec)
	} else {
		err = e.store.Insert(ctx, &rec)
	}
	if err != nil {
		return op, e.fail(err)
	}

	e.form = Form{}
	e.err = nil
	e.state = StateBrowsing
	_ = e.Browse(ctx)
	return op, nil
}

// fail records err and returns to the editing state the submit started
// from, form intact.
func (e *Editor[R]) fail(err error) error {
	e.err = err
	e.state = e.prior
	return err
}

// Delete removes row id immediately and re-fetches the list.
func (e *Editor[R]) Delete(ctx context.Context, id string) error {
	if err := e.store.Delete(ctx, id); err != nil {
		e.err = err
		return err
	}
	e.err = nil
	if !e.Editing() {
		e.state = StateBrowsing
	}
	_ = e.Browse(ctx)
	return nil
}
