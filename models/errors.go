package models

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorNotFound is returned when a lookup by id finds no row.
type ErrorNotFound struct {
	Entity string
	ID     uint
}

func (e ErrorNotFound) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ErrorConflict is returned when a write would violate a uniqueness rule.
type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string {
	return e.Message
}

// ErrorValidation carries translated messages keyed by form field name.
type ErrorValidation struct {
	Fields map[string]string
}

func (e ErrorValidation) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}
