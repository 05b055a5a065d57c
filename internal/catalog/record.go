package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidRecord marks records rejected by NewRecord or ParseRecord.
var ErrInvalidRecord = errors.New("invalid record")

// Record is an immutable catalog entry. The zero value is not a valid record;
// build one with NewRecord or ParseRecord.
type Record struct {
	name     string
	category string
	value    int
}

// NewRecord validates the fields and returns a Record. Name and category are
// stored exactly as given; a blank or whitespace-only value is rejected, as is
// text that is not valid UTF-8 or contains control characters, since those do
// not survive every storage format. The numeric value is not range-checked.
func NewRecord(name, category string, value int) (Record, error) {
	if err := checkText("name", name); err != nil {
		return Record{}, err
	}
	if err := checkText("category", category); err != nil {
		return Record{}, err
	}
	return Record{name: name, category: category, value: value}, nil
}

func checkText(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidRecord, field)
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidRecord, field)
	}
	if i := strings.IndexFunc(s, unicode.IsControl); i >= 0 {
		r, _ := utf8.DecodeRuneInString(s[i:])
		return fmt.Errorf("%w: %s contains control character %U", ErrInvalidRecord, field, r)
	}
	return nil
}

// ParseRecord is NewRecord for callers holding the numeric field as text.
func ParseRecord(name, category, value string) (Record, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return Record{}, fmt.Errorf("%w: value %q is not an integer", ErrInvalidRecord, value)
	}
	return NewRecord(name, category, n)
}

// MustRecord panics when the fields are invalid. Intended for tests and
// static fixtures.
func MustRecord(name, category string, value int) Record {
	r, err := NewRecord(name, category, value)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Record) Name() string     { return r.name }
func (r Record) Category() string { return r.category }
func (r Record) Value() int       { return r.value }

func (r Record) String() string {
	return fmt.Sprintf("%s (%s, %d)", r.name, r.category, r.value)
}

// Compare orders records structurally: value, then name, then category.
func Compare(a, b Record) int {
	if c := cmp.Compare(a.value, b.value); c != 0 {
		return c
	}
	if c := strings.Compare(a.name, b.name); c != 0 {
		return c
	}
	return strings.Compare(a.category, b.category)
}
