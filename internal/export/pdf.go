package export

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"

	"CampusPlanner/internal/schedule"
)

// frenchDays maps canonical day names to the display locale.
var frenchDays = map[string]string{
	"Monday":    "Lundi",
	"Tuesday":   "Mardi",
	"Wednesday": "Mercredi",
	"Thursday":  "Jeudi",
	"Friday":    "Vendredi",
	"Saturday":  "Samedi",
	"Sunday":    "Dimanche",
}

var pdfColumns = []struct {
	header string
	width  float64
}{
	{"Jour", 30},
	{"Module", 60},
	{"Professeur", 60},
	{"Horaire", 45},
	{"Salle", 40},
}

const (
	pdfMarginLeft = 10
	pdfLineHeight = 5
	pdfTableTop   = 25
)

// RenderSchedulePDF renders a resolved schedule as a landscape A4 table, one
// row per day in Monday-first order. Sessions within a day share the row,
// newline-joined per column.
func RenderSchedulePDF(view *schedule.ResolvedSchedule) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Text(14, 15, view.CycleMasterTitle+" - "+view.SemesterTitle)

	y := drawPDFHeader(pdf, pdfTableTop)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)

	_, pageHeight := pdf.GetPageSize()
	for _, daily := range view.DailySchedules {
		cells := dayRow(daily)
		lines := 1
		for _, cell := range cells {
			if n := strings.Count(cell, "\n") + 1; n > lines {
				lines = n
			}
		}
		rowHeight := float64(lines)*pdfLineHeight + 2

		if y+rowHeight > pageHeight-10 {
			pdf.AddPage()
			y = drawPDFHeader(pdf, 15)
			pdf.SetFont("Arial", "", 8)
			pdf.SetTextColor(0, 0, 0)
		}

		x := float64(pdfMarginLeft)
		for i, cell := range cells {
			width := pdfColumns[i].width
			pdf.Rect(x, y, width, rowHeight, "D")
			pdf.SetXY(x+1, y+1)
			pdf.MultiCell(width-2, pdfLineHeight, cell, "", "L", false)
			x += width
		}
		y += rowHeight
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawPDFHeader(pdf *fpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(pdfMarginLeft, y)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.header, "1", 0, "C", true, 0, "")
	}
	return y + 7
}

// dayRow builds the five columns of one day's row.
func dayRow(daily schedule.ResolvedDailySchedule) [5]string {
	day := frenchDays[daily.Day]
	if day == "" {
		day = daily.Day
	}

	modules := make([]string, 0, len(daily.Sessions))
	professors := make([]string, 0, len(daily.Sessions))
	slots := make([]string, 0, len(daily.Sessions))
	places := make([]string, 0, len(daily.Sessions))
	for _, session := range daily.Sessions {
		modules = append(modules, moduleDisplay(session.Module))
		professors = append(professors, professorDisplay(session.Professor))
		slots = append(slots, session.TimeSlot)
		places = append(places, session.Place)
	}

	return [5]string{
		day,
		strings.Join(modules, "\n"),
		strings.Join(professors, "\n"),
		strings.Join(slots, "\n"),
		strings.Join(places, "\n"),
	}
}

func moduleDisplay(module schedule.ResolvedModule) string {
	if module.Code == "" {
		return "N/A"
	}
	return module.Code
}

// professorDisplay contracts a professor to "Pr F. LASTNAME".
func professorDisplay(professor schedule.ResolvedProfessor) string {
	if professor.FirstName == "" || professor.LastName == "" {
		return "N/A"
	}
	initial := string([]rune(professor.FirstName)[0])
	return "Pr " + initial + ". " + strings.ToUpper(professor.LastName)
}
