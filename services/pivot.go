package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// HeaderDateLayout renders a column's event date in export headers (UTC).
const HeaderDateLayout = "2006-01-02 15:04"

// ScoreRow is one flat (user, event, points) record fed to the pivot.
type ScoreRow struct {
	Pseudo    string
	Code      string
	Label     string
	Points    int
	CreatedAt int64
}

// Column is one distinct event, dated by the earliest record seen for its code.
type Column struct {
	Code  string
	Label string
	Date  int64
}

func (c Column) Title() string {
	return fmt.Sprintf("%s (%s)", c.Label, time.UnixMilli(c.Date).UTC().Format(HeaderDateLayout))
}

type PivotRow struct {
	Pseudo string
	Scores []int
}

// Pivot is a user-by-event matrix of summed points.
type Pivot struct {
	Columns []Column
	Rows    []PivotRow
}

// BuildPivot reshapes rows into a matrix. Columns are ordered by date (then
// code); rows keep the order in which users first appear in rows.
func BuildPivot(rows []ScoreRow) *Pivot {
	byCode := make(map[string]*Column)
	var columns []*Column
	for _, r := range rows {
		col, ok := byCode[r.Code]
		if !ok {
			col = &Column{Code: r.Code, Label: r.Label, Date: r.CreatedAt}
			byCode[r.Code] = col
			columns = append(columns, col)
			continue
		}
		if r.CreatedAt < col.Date {
			col.Date = r.CreatedAt
			col.Label = r.Label
		}
	}
	sort.SliceStable(columns, func(i, j int) bool {
		if columns[i].Date != columns[j].Date {
			return columns[i].Date < columns[j].Date
		}
		return columns[i].Code < columns[j].Code
	})

	p := &Pivot{Columns: make([]Column, len(columns))}
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		p.Columns[i] = *c
		index[c.Code] = i
	}

	rowOf := make(map[string]int)
	for _, r := range rows {
		ri, ok := rowOf[r.Pseudo]
		if !ok {
			ri = len(p.Rows)
			rowOf[r.Pseudo] = ri
			p.Rows = append(p.Rows, PivotRow{Pseudo: r.Pseudo, Scores: make([]int, len(columns))})
		}
		p.Rows[ri].Scores[index[r.Code]] += r.Points
	}
	return p
}

// WriteCSV renders the matrix with ';' separators: a header of column titles
// behind an empty first cell, then one line per user.
func (p *Pivot) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := make([]string, 0, len(p.Columns)+1)
	header = append(header, "")
	for _, c := range p.Columns {
		header = append(header, c.Title())
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range p.Rows {
		line := make([]string, 0, len(r.Scores)+1)
		line = append(line, r.Pseudo)
		for _, s := range r.Scores {
			line = append(line, strconv.Itoa(s))
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (p *Pivot) CSV() (string, error) {
	var buf bytes.Buffer
	if err := p.WriteCSV(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// XLSXSheet is the sheet name used by WriteXLSX.
const XLSXSheet = "Scores"

// WriteXLSX renders the same matrix as WriteCSV into a single-sheet workbook.
func (p *Pivot) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), XLSXSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, 0, len(p.Columns)+1)
	header = append(header, "")
	for _, c := range p.Columns {
		header = append(header, c.Title())
	}
	if err := f.SetSheetRow(XLSXSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range p.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		line := make([]any, 0, len(r.Scores)+1)
		line = append(line, r.Pseudo)
		for _, s := range r.Scores {
			line = append(line, s)
		}
		if err := f.SetSheetRow(XLSXSheet, cell, &line); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
