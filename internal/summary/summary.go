// Package summary exports the yearly aggregates as a small YAML document.
package summary

import (
	"fmt"
	"io"
	"os"

	"github.com/tinytelemetry/sheepcount/internal/model"
	"gopkg.in/yaml.v3"
)

// Summary is the exported report.
type Summary struct {
	Title       string `yaml:"title"`
	Input       string `yaml:"input"`
	SourceLabel string `yaml:"source_label"`
	Records     int    `yaml:"records"`
	Total       int64  `yaml:"total"`
	Years       []Year `yaml:"years"`
}

// Year is one yearly total.
type Year struct {
	Year  int   `yaml:"year"`
	Total int64 `yaml:"total"`
}

// Build assembles a summary from the annotated records and their aggregates.
func Build(title, input, label string, records []model.Record, aggregates []model.YearlyAggregate) Summary {
	s := Summary{
		Title:       title,
		Input:       input,
		SourceLabel: label,
		Records:     len(records),
		Years:       make([]Year, len(aggregates)),
	}
	for i, a := range aggregates {
		s.Years[i] = Year{Year: a.Year, Total: a.TotalCount}
		s.Total += a.TotalCount
	}
	return s
}

// Encode writes s as YAML.
func Encode(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return enc.Close()
}

// WriteFile writes s as YAML to path, replacing any existing file.
func WriteFile(path string, s Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Decode reads a summary previously written by Encode.
func Decode(r io.Reader) (Summary, error) {
	var s Summary
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return s, fmt.Errorf("decode summary: %w", err)
	}
	return s, nil
}
