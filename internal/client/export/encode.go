// Package export turns table rows into CSV, JSON or YAML documents and ships
// them to a local directory or an S3 bucket.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var Formats = []Format{FormatCSV, FormatJSON, FormatYAML}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) Ext() string { return string(f) }

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	}
	return "application/octet-stream"
}

// Encode renders items in format f. Field names follow the JSON names of T;
// fields tagged `export:"-"` are left out.
func Encode[T any](f Format, items []T) ([]byte, error) {
	cols := columnsOf(reflect.TypeFor[T]())

	switch f {
	case FormatCSV:
		return encodeCSV(cols, items)
	case FormatJSON:
		return json.MarshalIndent(records(cols, items), "", "  ")
	case FormatYAML:
		return yaml.Marshal(records(cols, items))
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

type column struct {
	name  string
	index int
}

func columnsOf(t reflect.Type) []column {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("export") == "-" {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		cols = append(cols, column{name: name, index: i})
	}
	return cols
}

// record is one row with its columns in declaration order, for both JSON
// and YAML output.
type record struct {
	keys []string
	vals []any
}

func records[T any](cols []column, items []T) []record {
	out := make([]record, 0, len(items))
	for _, item := range items {
		v := reflect.ValueOf(item)
		r := record{keys: make([]string, len(cols)), vals: make([]any, len(cols))}
		for i, c := range cols {
			r.keys[i] = c.name
			r.vals[i] = v.Field(c.index).Interface()
		}
		out = append(out, r)
	}
	return out
}

func (r record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.vals[i])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (r record) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i, k := range r.keys {
		val := &yaml.Node{}
		if err := val.Encode(r.vals[i]); err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, val)
	}
	return n, nil
}

func encodeCSV[T any](cols []column, items []T) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.name
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, item := range items {
		v := reflect.ValueOf(item)
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = cell(v.Field(c.index))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Slice:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = cell(v.Index(i))
		}
		return strings.Join(parts, "; ")
	}
	return fmt.Sprint(v.Interface())
}
