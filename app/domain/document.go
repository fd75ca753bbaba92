package domain

import (
	"fmt"
	"time"
)

// FilterOp is a comparison operator in a collection query
type FilterOp string

const (
	OpEqual        FilterOp = "=="
	OpNotEqual     FilterOp = "!="
	OpLess         FilterOp = "<"
	OpLessEqual    FilterOp = "<="
	OpGreater      FilterOp = ">"
	OpGreaterEqual FilterOp = ">="
)

// Valid returns true for a known operator
func (op FilterOp) Valid() bool {
	switch op {
	case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		return true
	}
	return false
}

// Filter is one (field, operator, value) triple. A query's filters are a
// conjunction: a document matches only if every filter matches.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// Document is one record in the remote store. Exists is false for a
// looked-up document that is not present; that is a value, not an error.
type Document struct {
	ID        string
	Exists    bool
	Data      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// String returns a string field, or "" when absent or not a string
func (d *Document) String(field string) string {
	if d == nil || d.Data == nil {
		return ""
	}
	s, _ := d.Data[field].(string)
	return s
}

// Matches reports whether the document satisfies all filters
func (d *Document) Matches(filters []Filter) bool {
	if d == nil || !d.Exists {
		return false
	}
	for _, f := range filters {
		if !matchFilter(d.Data[f.Field], f) {
			return false
		}
	}
	return true
}

func matchFilter(fieldValue any, f Filter) bool {
	cmp, ok := compareValues(fieldValue, f.Value)
	if !ok {
		// Incomparable values only satisfy inequality
		return f.Op == OpNotEqual
	}
	switch f.Op {
	case OpEqual:
		return cmp == 0
	case OpNotEqual:
		return cmp != 0
	case OpLess:
		return cmp < 0
	case OpLessEqual:
		return cmp <= 0
	case OpGreater:
		return cmp > 0
	case OpGreaterEqual:
		return cmp >= 0
	}
	return false
}

// compareValues orders two field values. Numbers compare numerically
// regardless of concrete type (JSON decoding yields float64), strings
// lexicographically, times chronologically, bools false<true.
func compareValues(a, b any) (int, bool) {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		if !bok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case av == bv:
			return 0, true
		case !av:
			return -1, true
		}
		return 1, true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ValidateFilters rejects malformed filters before any store work
func ValidateFilters(filters []Filter) error {
	for i, f := range filters {
		if f.Field == "" {
			return fmt.Errorf("%w: filter %d has empty field", ErrInvalidInput, i)
		}
		if !f.Op.Valid() {
			return fmt.Errorf("%w: filter %d has unknown operator %q", ErrInvalidInput, i, f.Op)
		}
	}
	return nil
}
