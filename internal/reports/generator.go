package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// Generator renders reports as CSV or PDF.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Render(r *Report) ([]byte, error) {
	switch r.Format {
	case FormatPDF:
		return g.generatePDF(r)
	case FormatCSV:
		return g.generateCSV(r)
	default:
		return nil, fmt.Errorf("unsupported format: %s", r.Format)
	}
}

var csvHeader = []string{
	"date", "entries",
	"calories", "calories_target", "calories_pct",
	"protein_g", "protein_target_g", "protein_pct",
	"carbs_g", "carbs_target_g", "carbs_pct",
	"fat_g", "fat_target_g", "fat_pct",
	"water_ml", "water_target_ml", "water_pct",
}

func (g *Generator) generateCSV(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, day := range r.Days {
		p := day.Progress
		row := []string{day.Date, strconv.Itoa(day.Entries)}
		for _, m := range []struct{ consumed, target, pct float64 }{
			{p.Calories.Consumed, p.Calories.Target, p.Calories.Percent},
			{p.Protein.Consumed, p.Protein.Target, p.Protein.Percent},
			{p.Carbs.Consumed, p.Carbs.Target, p.Carbs.Percent},
			{p.Fat.Consumed, p.Fat.Target, p.Fat.Percent},
			{p.Water.Consumed, p.Water.Target, p.Water.Percent},
		} {
			row = append(row, formatNumber(m.consumed), formatNumber(m.target), formatNumber(m.pct))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) generatePDF(r *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	const fontName = "Arial"

	pdf.AddPage()
	pdf.SetFont(fontName, "B", 16)
	pdf.Cell(0, 10, "Nutrition Report")
	pdf.Ln(10)

	pdf.SetFont(fontName, "", 11)
	pdf.Cell(0, 6, tr(r.ProfileName))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", r.From, r.To))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Daily targets: %d kcal, protein %dg, carbs %dg, fat %dg",
		r.Targets.Calories, r.Targets.ProteinG, r.Targets.CarbsG, r.Targets.FatG))
	pdf.Ln(10)

	pdf.SetFont(fontName, "B", 13)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	s := r.Summary
	pdf.SetFont(fontName, "", 10)
	lines := []string{
		fmt.Sprintf("Days logged: %d of %d", s.LoggedDays, len(r.Days)),
		fmt.Sprintf("Average calories: %s kcal", formatNumber(s.AvgCalories)),
		fmt.Sprintf("Average protein / carbs / fat: %sg / %sg / %sg",
			formatNumber(s.AvgProteinG), formatNumber(s.AvgCarbsG), formatNumber(s.AvgFatG)),
		fmt.Sprintf("Average water: %s ml", formatNumber(s.AvgWaterMl)),
		fmt.Sprintf("Days over calorie target: %d", s.DaysOverTarget),
	}
	for _, line := range lines {
		pdf.Cell(0, 6, line)
		pdf.Ln(5)
	}
	pdf.Ln(7)

	pdf.SetFont(fontName, "B", 13)
	pdf.Cell(0, 8, "Daily breakdown")
	pdf.Ln(8)

	g.drawDaysTable(pdf, r.Days, fontName)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) drawDaysTable(pdf *gofpdf.Fpdf, days []DayRow, fontName string) {
	widths := []float64{25, 15, 30, 30, 30, 30, 25}
	header := []string{"Date", "Items", "Calories", "Protein", "Carbs", "Fat", "Water"}

	drawHeader := func() {
		pdf.SetFont(fontName, "B", 8)
		for i, h := range header {
			ln := 0
			if i == len(header)-1 {
				ln = 1
			}
			pdf.CellFormat(widths[i], 6, h, "1", ln, "C", false, 0, "")
		}
		pdf.SetFont(fontName, "", 8)
	}

	drawHeader()
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, day := range days {
		if pdf.GetY()+6 > pageHeight-bottom-10 {
			pdf.AddPage()
			drawHeader()
		}
		p := day.Progress
		cells := []string{
			day.Date,
			strconv.Itoa(day.Entries),
			fmt.Sprintf("%s (%s%%)", formatNumber(p.Calories.Consumed), formatNumber(p.Calories.Percent)),
			fmt.Sprintf("%sg (%s%%)", formatNumber(p.Protein.Consumed), formatNumber(p.Protein.Percent)),
			fmt.Sprintf("%sg (%s%%)", formatNumber(p.Carbs.Consumed), formatNumber(p.Carbs.Percent)),
			fmt.Sprintf("%sg (%s%%)", formatNumber(p.Fat.Consumed), formatNumber(p.Fat.Percent)),
			fmt.Sprintf("%s ml", formatNumber(p.Water.Consumed)),
		}
		for i, c := range cells {
			ln := 0
			if i == len(cells)-1 {
				ln = 1
			}
			pdf.CellFormat(widths[i], 6, c, "1", ln, "C", false, 0, "")
		}
	}
}

// formatNumber prints at most one decimal and drops a trailing ".0".
func formatNumber(v float64) string {
	return strconv.FormatFloat(roundTenth(v), 'f', -1, 64)
}

func roundTenth(v float64) float64 {
	if v < 0 {
		return -roundTenth(-v)
	}
	return float64(int64(v*10+0.5)) / 10
}
