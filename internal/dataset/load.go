package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/tinytelemetry/sheepcount/internal/model"
)

const opLoad = "load"

// Load reads a three-column CSV file of (year, region, count) rows.
//
// Columns are named positionally, so the header text (if any) is ignored.
// The first row is treated as a header when its year field is not an integer.
// On any failure no records are returned.
func Load(path string) ([]model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &model.OpError{Op: opLoad, Kind: model.KindFileNotFound, Path: path, Err: err}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	records, err := Parse(data)
	if err != nil {
		var oe *model.OpError
		if errors.As(err, &oe) && oe.Path == "" {
			oe.Path = path
		}
		return nil, err
	}

	log.Printf("dataset: loaded %d records from %s", len(records), path)
	return records, nil
}

// Parse decodes CSV content with the same rules as Load.
func Parse(data []byte) ([]model.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, parseError(0, errors.New("input is empty"))
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(false),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, parseError(csvErrorLine(df.Err), df.Err)
	}
	if df.Ncol() != len(model.Columns) {
		return nil, parseError(1, fmt.Errorf("expected %d columns, got %d", len(model.Columns), df.Ncol()))
	}

	for i, name := range df.Names() {
		df = df.Rename(model.Columns[i], name)
	}
	if df.Err != nil {
		return nil, parseError(0, df.Err)
	}

	years := df.Col(model.ColumnYear).Records()
	regions := df.Col(model.ColumnRegion).Records()
	counts := df.Col(model.ColumnCount).Records()

	// A header row has neither an integer year nor an integer count. A row
	// with only one of the two malformed is data and fails below.
	start := 0
	if len(years) > 0 && !isInteger(years[0]) && !isInteger(counts[0]) {
		start = 1
	}

	lines := rowLines(data, len(years))
	records := make([]model.Record, 0, len(years)-start)
	for i := start; i < len(years); i++ {
		line := lines[i]
		year, err := strconv.Atoi(strings.TrimSpace(years[i]))
		if err != nil {
			return nil, parseError(line, fmt.Errorf("year %q is not an integer", years[i]))
		}
		count, err := strconv.ParseInt(strings.TrimSpace(counts[i]), 10, 64)
		if err != nil {
			return nil, parseError(line, fmt.Errorf("count %q is not an integer", counts[i]))
		}
		records = append(records, model.Record{
			Year:   year,
			Region: strings.TrimSpace(regions[i]),
			Count:  count,
		})
	}

	return records, nil
}

func isInteger(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}

func parseError(line int, err error) error {
	return &model.OpError{Op: opLoad, Kind: model.KindParse, Line: line, Err: err}
}

// rowLines returns the 1-based line on which each of the n CSV rows starts.
// Blank lines and quoted fields spanning lines shift rows away from their index.
func rowLines(data []byte, n int) []int {
	lines := make([]int, n)
	for i := range lines {
		lines[i] = i + 1
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	for i := 0; i < n; i++ {
		if _, err := r.Read(); err != nil {
			break
		}
		line, _ := r.FieldPos(0)
		lines[i] = line
	}
	return lines
}

// csvErrorLine extracts the failing line from an encoding/csv error when one is wrapped.
func csvErrorLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}
