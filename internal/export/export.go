// Package export writes facility snapshots as CSV or XLSX for offline
// review.
package export

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/faithmap/faithmap/internal/model"
)

// Format is an export file format.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, XLSX:
		return f, nil
	}
	return "", eris.Errorf("export: unknown format %q (valid: csv, xlsx)", s)
}

// Write encodes list to w in the given format.
func Write(w io.Writer, format Format, list []model.Facility) error {
	switch format {
	case CSV:
		return WriteCSV(w, list)
	case XLSX:
		return WriteXLSX(w, list)
	}
	return eris.Errorf("export: unknown format %q", format)
}

// WriteCSV writes a header row followed by one row per facility.
func WriteCSV(w io.Writer, list []model.Facility) error {
	cw := csv.NewWriter(w)
	if err := encode(cw, list); err != nil {
		return err
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteXLSX writes a workbook with an "all" sheet and one sheet per
// facility type present in list.
func WriteXLSX(w io.Writer, list []model.Facility) error {
	f := xlsx.NewFile()
	if err := addSheet(f, "all", list); err != nil {
		return err
	}
	byType := make(map[model.FacilityType][]model.Facility)
	for _, fc := range list {
		byType[fc.Type] = append(byType[fc.Type], fc)
	}
	for _, t := range model.AllTypes {
		if len(byType[t]) == 0 {
			continue
		}
		if err := addSheet(f, string(t), byType[t]); err != nil {
			return err
		}
	}
	return eris.Wrap(f.Write(w), "export: write xlsx")
}

func addSheet(f *xlsx.File, name string, list []model.Facility) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}
	return encode(sheetWriter{sheet}, list)
}

// encode writes the header and rows through csvutil so CSV and XLSX share
// the same column layout.
func encode(w csvutil.Writer, list []model.Facility) error {
	enc := csvutil.NewEncoder(w)
	if len(list) == 0 {
		return eris.Wrap(enc.EncodeHeader(model.Facility{}), "export: encode header")
	}
	return eris.Wrap(enc.Encode(list), "export: encode rows")
}

// sheetWriter adapts an xlsx sheet to csvutil.Writer.
type sheetWriter struct {
	sheet *xlsx.Sheet
}

func (s sheetWriter) Write(record []string) error {
	row := s.sheet.AddRow()
	for _, v := range record {
		row.AddCell().SetString(v)
	}
	return nil
}
