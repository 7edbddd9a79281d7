package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/akulij/zkparser/internal/report"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Result is one entry of the all command's output
type Result struct {
	Kind      report.Kind `json:"kind" yaml:"kind"`
	Available bool        `json:"available" yaml:"available"`
	Report    any         `json:"report" yaml:"report"`
}

// WriteOutput writes one record in the specified format
func WriteOutput(w io.Writer, title string, v any, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, v)
	case FormatYAML:
		return writeYAML(w, v)
	case FormatText:
		return writeText(w, title, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteResults writes the reports of several networks
func WriteResults(w io.Writer, results []Result, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatYAML:
		return writeYAML(w, results)
	case FormatText:
		for _, r := range results {
			if !r.Available {
				fmt.Fprintf(w, "%s: %s\n", r.Kind, ErrUnavailable)
				continue
			}
			if err := writeText(w, string(r.Kind), r.Report); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// writeText renders a record as a two-column table named after its JSON keys
func writeText(w io.Writer, title string, v any) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows(fieldRows(v))
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func fieldRows(v any) []table.Row {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return []table.Row{{"value", formatValue(rv)}}
	}

	rt := rv.Type()
	rows := make([]table.Row, 0, rt.NumField())
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			name = field.Name
		}
		rows = append(rows, table.Row{name, formatValue(rv.Field(i))})
	}
	return rows
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return "n/a"
		}
		return formatValue(v.Elem())
	case reflect.Bool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Slice:
		parts := make([]string, v.Len())
		for i := range v.Len() {
			parts[i] = formatValue(v.Index(i))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v.Interface())
	}
}
