package codec

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"catalog/internal/catalog"
)

type yamlCodec struct {
	schema catalog.Schema
}

func (yamlCodec) Format() string { return FormatYAML }

// Encode writes a sequence of mappings; building nodes by hand keeps the keys
// in schema order.
func (c yamlCodec) Encode(w io.Writer, records []catalog.Record) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(records) == 0 {
		seq.Style = yaml.FlowStyle
	}
	for _, r := range records {
		item := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		item.Content = append(item.Content,
			yamlScalar("!!str", c.schema.NameKey), yamlScalar("!!str", r.Name()),
			yamlScalar("!!str", c.schema.CategoryKey), yamlScalar("!!str", r.Category()),
			yamlScalar("!!str", c.schema.ValueKey), yamlScalar("!!int", strconv.Itoa(r.Value())),
		)
		seq.Content = append(seq.Content, item)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}
	return nil
}

func yamlScalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// Decode has the same strictness as the JSON codec; a second document in the
// stream fails the decode.
func (c yamlCodec) Decode(r io.Reader) (catalog.Snapshot, error) {
	dec := yaml.NewDecoder(r)
	var raw []map[string]yaml.Node
	if err := dec.Decode(&raw); err != nil {
		return catalog.Snapshot{}, malformed(FormatYAML, err)
	}
	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return catalog.Snapshot{}, malformed(FormatYAML, err)
	default:
		return catalog.Snapshot{}, malformedf(FormatYAML, "more than one document in stream")
	}

	keys := c.schema.Keys()
	records := make([]catalog.Record, 0, len(raw))
	for i, entry := range raw {
		for key := range entry {
			if !slices.Contains(keys[:], key) {
				return catalog.Snapshot{}, malformedf(FormatYAML, "entry %d: unexpected key %q", i, key)
			}
		}

		var name, category string
		var value int
		if err := decodeYAMLField(entry, c.schema.NameKey, &name); err != nil {
			return catalog.Snapshot{}, malformedf(FormatYAML, "entry %d: %v", i, err)
		}
		if err := decodeYAMLField(entry, c.schema.CategoryKey, &category); err != nil {
			return catalog.Snapshot{}, malformedf(FormatYAML, "entry %d: %v", i, err)
		}
		if err := decodeYAMLField(entry, c.schema.ValueKey, &value); err != nil {
			return catalog.Snapshot{}, malformedf(FormatYAML, "entry %d: %v", i, err)
		}

		record, err := catalog.NewRecord(name, category, value)
		if err != nil {
			return catalog.Snapshot{}, malformedf(FormatYAML, "entry %d: %v", i, err)
		}
		records = append(records, record)
	}
	return catalog.Snapshot{Records: records}, nil
}

func decodeYAMLField(entry map[string]yaml.Node, key string, dst any) error {
	node, ok := entry[key]
	if !ok {
		return fmt.Errorf("missing key %q", key)
	}
	if err := node.Decode(dst); err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	return nil
}
