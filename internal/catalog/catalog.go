package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"catalog/internal/logging"
	"catalog/internal/textutil"
)

var (
	// ErrMalformed marks data files that exist but cannot be decoded.
	ErrMalformed = errors.New("malformed catalog data")
	// ErrInvalidCriterion marks select criteria the schema's policy cannot use.
	ErrInvalidCriterion = errors.New("invalid select criterion")
)

// SortKey selects the field Catalog keeps its items ordered by.
type SortKey int

const (
	SortByValue SortKey = iota
	SortByName
)

// ParseSortKey maps a configuration string to a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "value":
		return SortByValue, nil
	case "name":
		return SortByName, nil
	default:
		return SortByValue, fmt.Errorf("unsupported sort key %q (expected value or name)", value)
	}
}

func (k SortKey) String() string {
	if k == SortByName {
		return "name"
	}
	return "value"
}

// Snapshot is the decoded content of a data file. Skipped counts entries the
// backend dropped because a required field was missing.
type Snapshot struct {
	Records []Record
	Skipped int
}

// Persister reads and writes whole record collections.
type Persister interface {
	Read(ctx context.Context, path string) (Snapshot, error)
	Write(ctx context.Context, path string, records []Record) error
}

// LoadResult summarizes a Load call.
type LoadResult struct {
	Path    string
	Loaded  int
	Skipped int
	// Missing is set when path did not exist and the catalog was left untouched.
	Missing bool
}

// Option customizes a Catalog.
type Option func(*Catalog)

// WithSortKey overrides the default value ordering.
func WithSortKey(key SortKey) Option {
	return func(c *Catalog) { c.sortKey = key }
}

// WithClock replaces time.Now for seniority selection.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger attaches a logger; the default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Catalog is an ordered, in-memory record collection. It is not safe for
// concurrent use.
type Catalog struct {
	schema    Schema
	persister Persister
	sortKey   SortKey
	now       func() time.Time
	logger    *slog.Logger
	items     []Record
}

// New returns an empty catalog for schema. persister may be nil when the
// catalog is never loaded or saved.
func New(schema Schema, persister Persister, opts ...Option) *Catalog {
	c := &Catalog{
		schema:    schema,
		persister: persister,
		now:       time.Now,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.NewComponentLogger(c.logger, "catalog")
	if f, ok := persister.(interface{ Format() string }); ok {
		c.logger = c.logger.With(logging.String("format", f.Format()))
	}
	return c
}

// Schema returns the catalog's schema.
func (c *Catalog) Schema() Schema { return c.schema }

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.items) }

// Items returns a copy of the records in catalog order.
func (c *Catalog) Items() []Record {
	return slices.Clone(c.items)
}

// Add appends record and re-sorts the whole collection.
func (c *Catalog) Add(record Record) {
	c.items = append(c.items, record)
	c.sort()
	c.logger.Debug("record added",
		logging.String("name", record.Name()),
		logging.String("category", record.Category()),
		logging.Int("value", record.Value()),
		logging.Int("count", len(c.items)))
}

// Replace swaps the collection wholesale and restores the sort order.
func (c *Catalog) Replace(records []Record) {
	c.items = slices.Clone(records)
	c.sort()
}

func (c *Catalog) sort() {
	switch c.sortKey {
	case SortByName:
		slices.SortStableFunc(c.items, func(a, b Record) int {
			return strings.Compare(a.name, b.name)
		})
	default:
		slices.SortStableFunc(c.items, func(a, b Record) int {
			return cmp.Compare(a.value, b.value)
		})
	}
}

// Select filters by the schema's policy. The result is a new slice and may
// be empty.
func (c *Catalog) Select(criterion string) ([]Record, error) {
	period, err := c.parseCriterion(criterion)
	if err != nil {
		return nil, err
	}
	if c.schema.Select == SelectSeniority {
		return c.SelectBySeniority(period), nil
	}
	return c.SelectByCategory(criterion), nil
}

// CheckCriterion reports whether Select would accept criterion, without
// filtering anything.
func (c *Catalog) CheckCriterion(criterion string) error {
	_, err := c.parseCriterion(criterion)
	return err
}

func (c *Catalog) parseCriterion(criterion string) (int, error) {
	switch c.schema.Select {
	case SelectSeniority:
		period, err := strconv.Atoi(strings.TrimSpace(criterion))
		if err != nil {
			return 0, fmt.Errorf("%w: period %q is not an integer", ErrInvalidCriterion, criterion)
		}
		return period, nil
	default:
		if strings.TrimSpace(criterion) == "" {
			return 0, fmt.Errorf("%w: category is required", ErrInvalidCriterion)
		}
		return 0, nil
	}
}

// SelectByCategory returns records whose category equals category under
// Unicode case folding.
func (c *Catalog) SelectByCategory(category string) []Record {
	match := textutil.Matcher(category)
	out := make([]Record, 0)
	for _, r := range c.items {
		if match(r.category) {
			out = append(out, r)
		}
	}
	return out
}

// SelectBySeniority returns records whose value, read as a year, lies at
// least period years before the current year.
func (c *Catalog) SelectBySeniority(period int) []Record {
	year := c.now().Year()
	out := make([]Record, 0)
	for _, r := range c.items {
		if year-r.value >= period {
			out = append(out, r)
		}
	}
	return out
}

// Load replaces the catalog contents with the records stored at path. A
// missing path is not an error: the catalog is left as it was.
func (c *Catalog) Load(ctx context.Context, path string) (LoadResult, error) {
	result := LoadResult{Path: path}
	if c.persister == nil {
		return result, errors.New("load catalog: no persister configured")
	}
	snap, err := c.persister.Read(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Missing = true
			c.logger.Debug("data file missing; catalog left unchanged", logging.String("path", path))
			return result, nil
		}
		logging.ErrorWithContext(c.logger, "catalog load failed", "catalog_load_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix or move the data file; add and save would overwrite it"))
		return result, fmt.Errorf("load catalog %s: %w", path, err)
	}
	c.Replace(snap.Records)
	result.Loaded = len(c.items)
	result.Skipped = snap.Skipped
	if snap.Skipped > 0 {
		logging.WarnWithContext(c.logger, "skipped incomplete entries", "catalog_load_skipped",
			logging.String("path", path),
			logging.Int("skipped", snap.Skipped),
			logging.String(logging.FieldErrorHint, "each entry needs name, category, and value"),
			logging.String(logging.FieldImpact, "incomplete entries are dropped on the next save"))
	}
	c.logger.Debug("catalog loaded", logging.String("path", path), logging.Int("count", result.Loaded))
	return result, nil
}

// Save writes every record to path, overwriting any existing file.
func (c *Catalog) Save(ctx context.Context, path string) error {
	if c.persister == nil {
		return errors.New("save catalog: no persister configured")
	}
	if err := c.persister.Write(ctx, path, c.Items()); err != nil {
		logging.ErrorWithContext(c.logger, "catalog save failed", "catalog_save_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the target directory exists and is writable"))
		return fmt.Errorf("save catalog %s: %w", path, err)
	}
	c.logger.Debug("catalog saved", logging.String("path", path), logging.Int("count", len(c.items)))
	return nil
}
