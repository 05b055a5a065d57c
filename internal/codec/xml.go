package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"catalog/internal/catalog"
)

type xmlCodec struct {
	schema catalog.Schema
}

func (xmlCodec) Format() string { return FormatXML }

// Encode writes a UTF-8 document with an XML declaration, one element per
// record and one sub-element per field.
func (c xmlCodec) Encode(w io.Writer, records []catalog.Record) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write xml header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: c.schema.Collection}}
	if err := enc.EncodeToken(root); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	for _, r := range records {
		item := xml.StartElement{Name: xml.Name{Local: c.schema.Element}}
		if err := enc.EncodeToken(item); err != nil {
			return fmt.Errorf("encode xml: %w", err)
		}
		fields := []struct {
			key   string
			value string
		}{
			{c.schema.NameKey, r.Name()},
			{c.schema.CategoryKey, r.Category()},
			{c.schema.ValueKey, strconv.Itoa(r.Value())},
		}
		for _, f := range fields {
			if err := enc.EncodeElement(f.value, xml.StartElement{Name: xml.Name{Local: f.key}}); err != nil {
				return fmt.Errorf("encode xml field %s: %w", f.key, err)
			}
		}
		if err := enc.EncodeToken(item.End()); err != nil {
			return fmt.Errorf("encode xml: %w", err)
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("flush xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

type xmlField struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

type xmlEntry struct {
	XMLName xml.Name
	Fields  []xmlField `xml:",any"`
}

type xmlDocument struct {
	XMLName xml.Name
	Entries []xmlEntry `xml:",any"`
}

// Decode accepts any root and entry element names and rejects content after
// the root element. Entries missing a name,
// category, or value sub-element are skipped and counted; a value that is
// present but not an integer fails the decode.
func (c xmlCodec) Decode(r io.Reader) (catalog.Snapshot, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var doc xmlDocument
	if err := dec.Decode(&doc); err != nil {
		return catalog.Snapshot{}, malformed(FormatXML, err)
	}
	if err := requireXMLEnd(dec); err != nil {
		return catalog.Snapshot{}, err
	}

	var snap catalog.Snapshot
	for i, entry := range doc.Entries {
		var name, category, valueText string
		var hasValue bool
		for _, f := range entry.Fields {
			switch f.XMLName.Local {
			case c.schema.NameKey:
				name = f.Text
			case c.schema.CategoryKey:
				category = f.Text
			case c.schema.ValueKey:
				valueText = f.Text
				hasValue = true
			}
		}
		if !hasValue || strings.TrimSpace(name) == "" || strings.TrimSpace(category) == "" {
			snap.Skipped++
			continue
		}
		value, err := strconv.Atoi(strings.TrimSpace(valueText))
		if err != nil {
			return catalog.Snapshot{}, malformedf(FormatXML, "entry %d: %s %q is not an integer", i, c.schema.ValueKey, valueText)
		}
		record, err := catalog.NewRecord(name, category, value)
		if err != nil {
			return catalog.Snapshot{}, malformedf(FormatXML, "entry %d: %v", i, err)
		}
		snap.Records = append(snap.Records, record)
	}
	return snap, nil
}

// requireXMLEnd accepts only whitespace, comments, and processing
// instructions after the root element.
func requireXMLEnd(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return malformed(FormatXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return malformedf(FormatXML, "unexpected element <%s> after the root element", t.Name.Local)
		case xml.EndElement:
			return malformedf(FormatXML, "unexpected </%s> after the root element", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return malformedf(FormatXML, "unexpected text after the root element")
			}
		}
	}
}

// charsetReader resolves declared encodings such as "utf8" or "windows-1251"
// that encoding/xml does not understand on its own.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported xml encoding %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
