package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-pdf/fpdf"
)

// PDFSink renders an aggregate PDF report: a summary table of every assessed
// repository, followed by one detail page per repository when the run
// requested details. Rendering happens at Close, once all records are in.
type PDFSink struct {
	path    string
	mu      sync.Mutex
	records []Record
}

func NewPDFSink(path string) (*PDFSink, error) {
	if path == "" {
		return nil, fmt.Errorf("pdf output path required")
	}
	return &PDFSink{path: path}, nil
}

func (s *PDFSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := v.(Record)
	if !ok {
		// Lifecycle events are not part of the report.
		return nil
	}
	s.records = append(s.records, r)
	return nil
}

func (s *PDFSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Repository Vitals Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Repository Vitals Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, time.Now().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	s.renderSummaryTable(pdf)

	for _, r := range s.records {
		if len(r.Infrastructure.Breakdown) == 0 && len(r.Health.Breakdown) == 0 {
			continue
		}
		s.renderDetailPage(pdf, r)
	}

	return pdf.OutputFileAndClose(s.path)
}

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Repository", 58},
	{"Docs", 16},
	{"Infra", 16},
	{"Health", 16},
	{"Total", 18},
	{"Maturity", 28},
	{"Health Label", 28},
}

func (s *PDFSink) renderSummaryTable(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range s.records {
		cells := []string{
			truncate(r.Repository, 38),
			ScoreCell(r.Documentation.Score, r.Documentation.Max),
			ScoreCell(r.Infrastructure.Score, r.Infrastructure.Max),
			ScoreCell(r.Health.Score, r.Health.Max),
			ScoreCell(r.Total, r.MaxTotal),
			r.Maturity,
			r.Health.Label,
		}
		for i, cell := range cells {
			pdf.CellFormat(pdfColumns[i].width, 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (s *PDFSink) renderDetailPage(pdf *fpdf.Fpdf, r Record) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, r.Repository, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total %s  -  %s  -  %s",
		ScoreCell(r.Total, r.MaxTotal), r.Maturity, r.Health.Label), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Documentation %s", ScoreCell(r.Documentation.Score, r.Documentation.Max)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, key := range []string{"present", "missing"} {
		items, ok := r.Documentation.Details[key].([]string)
		if !ok || len(items) == 0 {
			continue
		}
		pdf.CellFormat(0, 5, key+":", "", 1, "L", false, 0, "")
		for _, item := range items {
			pdf.CellFormat(6, 5, "", "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 5, "- "+item, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(2)

	sections := []struct {
		title  string
		scores []pdfSubScore
	}{
		{fmt.Sprintf("Infrastructure %s", ScoreCell(r.Infrastructure.Score, r.Infrastructure.Max)), subScores(r.Infrastructure)},
		{fmt.Sprintf("Health %s", ScoreCell(r.Health.Score, r.Health.Max)), subScores(r.Health)},
	}
	for _, sec := range sections {
		if len(sec.scores) == 0 {
			continue
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, sec.title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, sub := range sec.scores {
			pdf.CellFormat(110, 5, sub.name, "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 5, sub.score, "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}
}

type pdfSubScore struct {
	name  string
	score string
}

func subScores(cat CategoryReport) []pdfSubScore {
	out := make([]pdfSubScore, 0, len(cat.Breakdown))
	for _, sub := range cat.Breakdown {
		out = append(out, pdfSubScore{name: sub.Name, score: ScoreCell(sub.Points, sub.MaxPoints)})
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
