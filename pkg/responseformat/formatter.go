// Package responseformat encodes assembly reports as JSON, MessagePack or
// plain text tables.
package responseformat

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the output encoding
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatTable   Format = "table"
)

// ParseFormat accepts json, msgpack and table. An empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatMsgpack, FormatTable:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q, use json, msgpack or table", s)
}

// Table is one titled text table
type Table struct {
	Title  string
	Header []string
	Rows   [][]any
}

// Tabular is implemented by values that can be written as text tables
type Tabular interface {
	Tables() []Table
}

// Formatter handles encoding and writing reports in the supported formats
type Formatter struct{}

// NewFormatter creates a new response formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Write encodes data to w. The table format requires data to implement
// Tabular.
func (f *Formatter) Write(w io.Writer, format Format, data any) error {
	switch format {
	case FormatJSON, "":
		return f.writeJSON(w, data)
	case FormatMsgpack:
		return f.writeMsgPack(w, data)
	case FormatTable:
		t, ok := data.(Tabular)
		if !ok {
			return fmt.Errorf("%T cannot be written as a table", data)
		}
		return f.writeTables(w, t.Tables())
	}
	return fmt.Errorf("unsupported format %q", format)
}

func (f *Formatter) writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (f *Formatter) writeMsgPack(w io.Writer, data any) error {
	encoder := msgpack.NewEncoder(w)
	encoder.SetCustomStructTag("json") // Use json tags for MessagePack
	return encoder.Encode(data)
}

func (f *Formatter) writeTables(w io.Writer, tables []Table) error {
	for i, t := range tables {
		tw := table.NewWriter()
		tw.SetStyle(table.StyleLight)
		if t.Title != "" {
			tw.SetTitle(t.Title)
		}

		header := make(table.Row, len(t.Header))
		for j, h := range t.Header {
			header[j] = h
		}
		tw.AppendHeader(header)
		for _, r := range t.Rows {
			row := make(table.Row, len(r))
			copy(row, r)
			tw.AppendRow(row)
		}

		sep := "\n"
		if i == len(tables)-1 {
			sep = ""
		}
		if _, err := fmt.Fprintln(w, tw.Render()+sep); err != nil {
			return err
		}
	}
	return nil
}
