package catalog

import (
	"errors"
	"fmt"
	"strings"

	"catalog/internal/textutil"
)

// ErrUnknownKind is returned by SchemaFor for unsupported catalog kinds.
var ErrUnknownKind = errors.New("unknown catalog kind")

// SelectPolicy decides how Catalog.Select interprets its criterion.
type SelectPolicy int

const (
	// SelectCategory matches the category field with case-insensitive equality.
	SelectCategory SelectPolicy = iota
	// SelectSeniority keeps records whose value (a year) is at least criterion
	// years before the current year.
	SelectSeniority
)

// Schema describes one catalog kind.
type Schema struct {
	Kind string

	// Collection and Element name the XML root and per-record elements.
	Collection string
	Element    string

	// Serialized field keys, in output order.
	NameKey     string
	CategoryKey string
	ValueKey    string

	// Column labels for rendered tables.
	NameLabel     string
	CategoryLabel string
	ValueLabel    string

	Select      SelectPolicy
	DefaultFile string
}

// Recipes is the recipe catalog: name, cuisine, preparation time in minutes.
var Recipes = Schema{
	Kind:          "recipes",
	Collection:    "recipes",
	Element:       "recipe",
	NameKey:       "name",
	CategoryKey:   "cuisine",
	ValueKey:      "time",
	NameLabel:     "Name",
	CategoryLabel: "Cuisine",
	ValueLabel:    "Time",
	Select:        SelectCategory,
	DefaultFile:   "recipes.json",
}

// Staff is the staff roster: name, post, year of hire.
var Staff = Schema{
	Kind:          "staff",
	Collection:    "workers",
	Element:       "worker",
	NameKey:       "name",
	CategoryKey:   "post",
	ValueKey:      "year",
	NameLabel:     "Full name",
	CategoryLabel: "Post",
	ValueLabel:    "Year",
	Select:        SelectSeniority,
	DefaultFile:   "staff.xml",
}

// Kinds lists the supported kind names.
func Kinds() []string {
	return []string{Recipes.Kind, Staff.Kind}
}

var kindAliases = map[string][]string{
	Recipes.Kind: {"recipe"},
	Staff.Kind:   {"workers"},
}

// SchemaFor resolves a kind name or alias case-insensitively.
func SchemaFor(kind string) (Schema, error) {
	for _, s := range []Schema{Recipes, Staff} {
		for _, name := range append([]string{s.Kind}, kindAliases[s.Kind]...) {
			if textutil.EqualFold(kind, name) {
				return s, nil
			}
		}
	}
	return Schema{}, fmt.Errorf("%w %q (expected one of %s)", ErrUnknownKind, kind, strings.Join(Kinds(), ", "))
}

// Keys returns the serialized field keys in output order.
func (s Schema) Keys() [3]string {
	return [3]string{s.NameKey, s.CategoryKey, s.ValueKey}
}
