package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ja7ad/gwnexus/pkg/types"
)

// table is a parsed CSV with headers resolved to column indexes.
type table struct {
	cols  map[string]int
	rows  [][]string
	lines []int
}

// normalize folds a header so "Other Pr." and "other pr" style variants match.
func normalize(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	return strings.TrimSuffix(h, ".")
}

func readTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &table{cols: make(map[string]int, len(header))}
	for i, h := range header {
		t.cols[normalize(h)] = i
	}
	for _, name := range required {
		if _, ok := t.cols[normalize(name)]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if blank(rec) {
			continue
		}
		ln, _ := cr.FieldPos(0)
		t.rows = append(t.rows, rec)
		t.lines = append(t.lines, ln)
	}
	if len(t.rows) == 0 {
		return nil, ErrEmpty
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// cell returns the trimmed cell of row i in column name; short rows read as empty.
func (t *table) cell(i int, name string) string {
	idx := t.cols[normalize(name)]
	row := t.rows[i]
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (t *table) line(i int) int { return t.lines[i] }

func (t *table) float(i int, name string) (float64, error) {
	s := strings.ReplaceAll(t.cell(i, name), ",", "")
	if s == "" {
		return 0, &RowError{Line: t.line(i), Column: name, Err: fmt.Errorf("%w: empty", ErrMalformed)}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &RowError{Line: t.line(i), Column: name, Err: fmt.Errorf("%w: %q", ErrMalformed, s)}
	}
	return v, nil
}

func (t *table) nullFloat(i int, name string) (types.NullFloat, error) {
	if t.cell(i, name) == "" {
		return types.NullFloat{}, nil
	}
	v, err := t.float(i, name)
	if err != nil {
		return types.NullFloat{}, err
	}
	return types.Some(v), nil
}

// integer accepts "2005" as well as "2005.0".
func (t *table) integer(i int, name string) (int, error) {
	v, err := t.float(i, name)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, &RowError{Line: t.line(i), Column: name, Err: fmt.Errorf("%w: %v is not an integer", ErrMalformed, v)}
	}
	return int(v), nil
}

func (t *table) checkYear(i int, name string, prev, cur int) error {
	if cur <= prev {
		return &RowError{Line: t.line(i), Column: name, Err: fmt.Errorf("%w: %d after %d", ErrYearOrder, cur, prev)}
	}
	return nil
}
