package console

import (
	"net/url"
	"strings"
)

// Form is a detached copy of a record's editable fields. ID is the edit
// target; an empty ID means a new record.
type Form struct {
	ID     string
	Values map[string]string
}

func (f Form) Get(field string) string { return f.Values[field] }

// Existing reports whether the form targets a stored record.
func (f Form) Existing() bool { return f.ID != "" }

func (f Form) clone() Form {
	values := make(map[string]string, len(f.Values))
	for k, v := range f.Values {
		values[k] = v
	}
	return Form{ID: f.ID, Values: values}
}

// readForm copies fields from submitted values. Checkbox fields become
// "true" when present and "false" otherwise.
func readForm(values url.Values, fields []string, checkboxes ...string) Form {
	f := Form{ID: strings.TrimSpace(values.Get("id")), Values: make(map[string]string, len(fields))}
	for _, name := range fields {
		f.Values[name] = values.Get(name)
	}
	for _, name := range checkboxes {
		switch values.Get(name) {
		case "", "false", "off":
			f.Values[name] = "false"
		default:
			f.Values[name] = "true"
		}
	}
	return f
}
