// Package transcode converts text-area field payloads between their wire
// string form (JSON or XML, per the input's get_data_format) and the plain
// object tree the structured editor works on.
package transcode

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Format identifiers as they appear in input config.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
)

// Decode parses a field payload into an object tree. Malformed payloads are
// recovered locally: the error is logged and an empty object returned, so a
// bad record never takes the whole form down.
func Decode(raw, format string) map[string]any {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}
	}
	var (
		obj map[string]any
		err error
	)
	switch format {
	case FormatXML:
		obj, err = decodeXML(raw)
	default:
		err = json.Unmarshal([]byte(raw), &obj)
	}
	if err != nil || obj == nil {
		logrus.WithError(err).WithField("format", format).Warn("malformed field payload, substituting empty object")
		return map[string]any{}
	}
	return obj
}

// Encode serializes an object tree back to the field's original wire format.
func Encode(obj map[string]any, format string) (string, error) {
	if obj == nil {
		obj = map[string]any{}
	}
	if format == FormatXML {
		return encodeXMLMap(obj), nil
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("encoding field payload: %w", err)
	}
	return string(data), nil
}

// EmptyValue is the type-specific blank default for a structured text area.
func EmptyValue(format string) string {
	if format == FormatXML {
		return "<data></data>"
	}
	return "{}"
}

// decodeXML builds a nested map from an XML document. Element text becomes a
// string value; repeated sibling elements collapse into a []any in document
// order. The root element stays in the map so Encode can round-trip it.
func decodeXML(raw string) (map[string]any, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("xml document has no root element")
		}
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			content, err := decodeElement(dec, start)
			if err != nil {
				return nil, err
			}
			return map[string]any{start.Name.Local: content}, nil
		}
	}
}

// decodeElement consumes tokens until start's matching end tag and returns
// either the element's text or a map of its children.
func decodeElement(dec *xml.Decoder, start xml.StartElement) (any, error) {
	children := map[string]any{}
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			name := t.Name.Local
			if existing, ok := children[name]; ok {
				if list, ok := existing.([]any); ok {
					children[name] = append(list, child)
				} else {
					children[name] = []any{existing, child}
				}
			} else {
				children[name] = child
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(children) > 0 {
				return children, nil
			}
			return strings.TrimSpace(text.String()), nil
		}
	}
}

// encodeXMLMap writes a map as XML with keys in sorted order so identical
// trees always serialize identically.
func encodeXMLMap(m map[string]any) string {
	var sb strings.Builder
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		encodeXMLValue(&sb, k, m[k])
	}
	return sb.String()
}

func encodeXMLValue(sb *strings.Builder, name string, v any) {
	switch t := v.(type) {
	case map[string]any:
		sb.WriteString("<" + name + ">")
		sb.WriteString(encodeXMLMap(t))
		sb.WriteString("</" + name + ">")
	case []any:
		for _, e := range t {
			encodeXMLValue(sb, name, e)
		}
	default:
		sb.WriteString("<" + name + ">")
		xml.EscapeText(sb, []byte(fmt.Sprint(t)))
		sb.WriteString("</" + name + ">")
	}
}
