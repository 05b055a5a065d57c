package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"catalog/internal/catalog"
)

const jsonIndent = "  "

type jsonCodec struct {
	schema catalog.Schema
}

func (jsonCodec) Format() string { return FormatJSON }

// Encode writes an indented array of objects with keys in schema order.
// Non-ASCII text is written as-is and HTML characters are not escaped.
func (c jsonCodec) Encode(w io.Writer, records []catalog.Record) error {
	var compact bytes.Buffer
	compact.WriteByte('[')
	for i, r := range records {
		if i > 0 {
			compact.WriteByte(',')
		}
		compact.WriteByte('{')
		if err := writeJSONMember(&compact, c.schema.NameKey, r.Name(), false); err != nil {
			return err
		}
		if err := writeJSONMember(&compact, c.schema.CategoryKey, r.Category(), true); err != nil {
			return err
		}
		if err := writeJSONMember(&compact, c.schema.ValueKey, r.Value(), true); err != nil {
			return err
		}
		compact.WriteByte('}')
	}
	compact.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", jsonIndent); err != nil {
		return fmt.Errorf("indent json: %w", err)
	}
	out.WriteByte('\n')
	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func writeJSONMember(buf *bytes.Buffer, key string, value any, comma bool) error {
	if comma {
		buf.WriteByte(',')
	}
	if err := writeJSONValue(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return writeJSONValue(buf, value)
}

func writeJSONValue(buf *bytes.Buffer, value any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode json value: %w", err)
	}
	// Encoder terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Decode requires every object to carry exactly the three schema keys and the
// array to be the only value in the stream; any deviation fails the decode.
func (c jsonCodec) Decode(r io.Reader) (catalog.Snapshot, error) {
	dec := json.NewDecoder(r)
	var raw []map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return catalog.Snapshot{}, malformed(FormatJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return catalog.Snapshot{}, malformed(FormatJSON, err)
		}
		return catalog.Snapshot{}, malformedf(FormatJSON, "unexpected data after the record array")
	}

	keys := c.schema.Keys()
	records := make([]catalog.Record, 0, len(raw))
	for i, entry := range raw {
		for key := range entry {
			if !slices.Contains(keys[:], key) {
				return catalog.Snapshot{}, malformedf(FormatJSON, "entry %d: unexpected key %q", i, key)
			}
		}

		var name, category string
		var value int
		if err := decodeJSONField(entry, c.schema.NameKey, &name); err != nil {
			return catalog.Snapshot{}, malformedf(FormatJSON, "entry %d: %v", i, err)
		}
		if err := decodeJSONField(entry, c.schema.CategoryKey, &category); err != nil {
			return catalog.Snapshot{}, malformedf(FormatJSON, "entry %d: %v", i, err)
		}
		if err := decodeJSONField(entry, c.schema.ValueKey, &value); err != nil {
			return catalog.Snapshot{}, malformedf(FormatJSON, "entry %d: %v", i, err)
		}

		record, err := catalog.NewRecord(name, category, value)
		if err != nil {
			return catalog.Snapshot{}, malformedf(FormatJSON, "entry %d: %v", i, err)
		}
		records = append(records, record)
	}
	return catalog.Snapshot{Records: records}, nil
}

func decodeJSONField(entry map[string]json.RawMessage, key string, dst any) error {
	raw, ok := entry[key]
	if !ok {
		return fmt.Errorf("missing key %q", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	return nil
}
