package pipeline

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/panel-triage/internal/model"
	"github.com/sells-group/panel-triage/internal/scorer"
)

// Output formats.
const (
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"
	FormatJSON  = "json"
	FormatTable = "table"
)

// reasonBullet prefixes each reason in the Patient Factors column.
const reasonBullet = "• "

// ExportRow is one line of the prioritized task report.
type ExportRow struct {
	PatientID         string `csv:"Patient ID" json:"patient_id"`
	PatientName       string `csv:"Patient Name" json:"patient_name"`
	Task              string `csv:"Task" json:"task"`
	TaskSource        string `csv:"Task Source" json:"task_source"`
	PredictedCategory string `csv:"Predicted Category" json:"predicted_category"`
	PriorityRank      string `csv:"Priority Rank" json:"priority_rank"`
	PriorityLabel     string `csv:"Priority Label" json:"priority_label"`
	PriorityScore     string `csv:"Priority Score" json:"priority_score"`
	PatientFactors    string `csv:"Patient Factors" json:"patient_factors"`
	Flag              string `csv:"Flag" json:"flag,omitempty"`
}

// exportHeader matches the csv tags of ExportRow.
var exportHeader = []string{
	"Patient ID", "Patient Name", "Task", "Task Source", "Predicted Category",
	"Priority Rank", "Priority Label", "Priority Score", "Patient Factors", "Flag",
}

// ToExportRow flattens a scored task. Unscored rows leave rank, label and
// score empty.
func ToExportRow(r model.ScoredTask) ExportRow {
	out := ExportRow{
		PatientID:         r.Task.PatientID,
		PatientName:       r.Task.PatientName,
		Task:              r.Task.Text,
		TaskSource:        string(r.Task.Source),
		PredictedCategory: r.Category,
		PatientFactors:    FormatReasons(r.Reasons),
		Flag:              string(r.Flag),
	}
	if r.Scored() {
		out.PriorityRank = strconv.Itoa(r.Rank)
		out.PriorityLabel = r.Label
		out.PriorityScore = FormatScore(r.Score)
	}
	return out
}

// FormatReasons renders reasons as bullet lines.
func FormatReasons(reasons []string) string {
	lines := make([]string, len(reasons))
	for i, r := range reasons {
		lines[i] = reasonBullet + r
	}
	return strings.Join(lines, "\n")
}

// FormatScore renders a score without trailing zeros.
func FormatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// FormatFromPath infers the output format from a file extension, defaulting
// to CSV.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	case ".json":
		return FormatJSON
	default:
		return FormatCSV
	}
}

// Export writes the result in format. File formats write to path; the table
// format and a JSON export with an empty path write to w.
func Export(res *Result, format, path string, w io.Writer) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	switch format {
	case FormatCSV:
		return ExportCSV(res.Rows, path)
	case FormatXLSX:
		return ExportXLSX(res.Rows, path)
	case FormatJSON:
		if path == "" || path == "-" {
			return WriteJSON(w, res)
		}
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrap(err, "export: create json file")
		}
		defer f.Close()
		return WriteJSON(f, res)
	case FormatTable:
		return WriteTable(w, res.Rows)
	default:
		return eris.Errorf("export: unknown format %q", format)
	}
}

// ExportCSV writes rows to a CSV file at path.
func ExportCSV(rows []model.ScoredTask, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv file")
	}
	defer f.Close()

	if err := WriteCSV(f, rows); err != nil {
		return err
	}
	return eris.Wrap(f.Close(), "export: close csv file")
}

// WriteCSV encodes rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []model.ScoredTask) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if len(rows) == 0 {
		if err := cw.Write(exportHeader); err != nil {
			return eris.Wrap(err, "export: write header")
		}
	}
	for _, r := range rows {
		if err := enc.Encode(ToExportRow(r)); err != nil {
			return eris.Wrap(err, "export: encode row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteJSON encodes the full result, including run id and label counts.
func WriteJSON(w io.Writer, res *Result) error {
	out := struct {
		RunID  string       `json:"run_id"`
		Rows   []ExportRow  `json:"rows"`
		Counts []LabelCount `json:"label_counts"`
	}{
		RunID:  res.RunID,
		Rows:   make([]ExportRow, len(res.Rows)),
		Counts: res.Counts,
	}
	for i, r := range res.Rows {
		out.Rows[i] = ToExportRow(r)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(out), "export: encode json")
}

// Highlight fills for the XLSX report.
const (
	criticalFill = "FFFFC7CE"
	highFill     = "FFFFEB9C"
)

// ExportXLSX writes rows to a single-sheet workbook. Critical and High rows
// are filled so they stand out.
func ExportXLSX(rows []model.ScoredTask, path string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Prioritized Tasks")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	headerStyle := xlsx.NewStyle()
	headerStyle.Font.Bold = true
	headerStyle.ApplyFont = true

	header := sheet.AddRow()
	for _, h := range exportHeader {
		c := header.AddCell()
		c.SetString(h)
		c.SetStyle(headerStyle)
	}

	styles := map[int]*xlsx.Style{
		scorer.RankCritical: fillStyle(criticalFill),
		scorer.RankHigh:     fillStyle(highFill),
	}

	for _, r := range rows {
		er := ToExportRow(r)
		xr := sheet.AddRow()
		for _, v := range []string{er.PatientID, er.PatientName, er.Task, er.TaskSource, er.PredictedCategory} {
			xr.AddCell().SetString(v)
		}
		if r.Scored() {
			xr.AddCell().SetInt(r.Rank)
			xr.AddCell().SetString(er.PriorityLabel)
			xr.AddCell().SetFloat(r.Score)
		} else {
			xr.AddCell().SetString("")
			xr.AddCell().SetString("")
			xr.AddCell().SetString("")
		}
		xr.AddCell().SetString(er.PatientFactors)
		xr.AddCell().SetString(er.Flag)

		if style, ok := styles[r.Rank]; ok {
			for _, c := range xr.Cells {
				c.SetStyle(style)
			}
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}

func fillStyle(argb string) *xlsx.Style {
	s := xlsx.NewStyle()
	s.Fill = *xlsx.NewFill("solid", argb, argb)
	s.ApplyFill = true
	return s
}

// maxTaskWidth truncates task text in the terminal table.
const maxTaskWidth = 60

var (
	criticalColor = color.New(color.FgRed, color.Bold)
	highColor     = color.New(color.FgYellow)
)

// WriteTable prints rows as an aligned table. Critical rows print red and
// High rows yellow when the terminal supports color.
func WriteTable(w io.Writer, rows []model.ScoredTask) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tLABEL\tSCORE\tPATIENT\tCATEGORY\tTASK\tFLAG")
	for _, r := range rows {
		er := ToExportRow(r)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			dash(er.PriorityRank), dash(er.PriorityLabel), dash(er.PriorityScore),
			er.PatientID, dash(truncate(er.PredictedCategory, 30)), truncate(er.Task, maxTaskWidth), er.Flag)
	}
	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "export: flush table")
	}

	// Color whole lines after alignment so escape codes do not skew widths.
	sc := bufio.NewScanner(&buf)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 0; sc.Scan(); i++ {
		line := sc.Text()
		if i > 0 {
			switch rows[i-1].Rank {
			case scorer.RankCritical:
				line = criticalColor.Sprint(line)
			case scorer.RankHigh:
				line = highColor.Sprint(line)
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return eris.Wrap(err, "export: write table")
		}
	}
	return eris.Wrap(sc.Err(), "export: scan table")
}

// WriteCounts prints the per-label summary.
func WriteCounts(w io.Writer, counts []LabelCount) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRIORITY LABEL\tCOUNT")
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Label, c.Count)
	}
	return eris.Wrap(tw.Flush(), "export: flush counts")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
