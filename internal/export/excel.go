package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"CampusPlanner/internal/registry"
)

// CycleReport is the aggregation the cycle+semester spreadsheet is built
// from. It is driven by the registry, not by the schedule aggregate.
type CycleReport struct {
	Cycle      *registry.CycleMaster
	Semester   *registry.Semester
	Modules    []*registry.Module
	Students   []*registry.Student
	Professors []*registry.Professor
}

// BuildCycleReport produces the .xlsx workbook with one worksheet per
// logical entity: info, modules, students, professors.
func BuildCycleReport(report *CycleReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	if err := writeInfoSheet(f, headerStyle, report); err != nil {
		return nil, err
	}
	if err := writeModulesSheet(f, headerStyle, report); err != nil {
		return nil, err
	}
	if err := writeStudentsSheet(f, headerStyle, report); err != nil {
		return nil, err
	}
	if err := writeProfessorsSheet(f, headerStyle, report); err != nil {
		return nil, err
	}

	// The default sheet was renamed to Info; make it the active one.
	index, err := f.GetSheetIndex("Info")
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	return f.WriteToBuffer()
}

func writeHeaderRow(f *excelize.File, sheet string, style int, headers []string) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	endCell, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", endCell, style)
}

func writeInfoSheet(f *excelize.File, style int, report *CycleReport) error {
	const sheet = "Info"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := writeHeaderRow(f, sheet, style, []string{"Cycle", "Semester", "Start Date", "End Date"}); err != nil {
		return err
	}
	f.SetCellValue(sheet, "A2", report.Cycle.Title)
	f.SetCellValue(sheet, "B2", report.Semester.Title)
	f.SetCellValue(sheet, "C2", report.Semester.StartDate.Format("2006-01-02"))
	f.SetCellValue(sheet, "D2", report.Semester.EndDate.Format("2006-01-02"))
	return f.SetColWidth(sheet, "A", "D", 22)
}

func writeModulesSheet(f *excelize.File, style int, report *CycleReport) error {
	const sheet = "Modules"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeHeaderRow(f, sheet, style, []string{"Title", "Code", "Professor"}); err != nil {
		return err
	}
	for i, module := range report.Modules {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), module.Title)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), module.Code)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), moduleProfessorName(module, report.Professors))
	}
	return f.SetColWidth(sheet, "A", "C", 28)
}

func writeStudentsSheet(f *excelize.File, style int, report *CycleReport) error {
	const sheet = "Students"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"First Name", "Last Name", "Student Number", "Email", "Promo", "Current Semester"}
	if err := writeHeaderRow(f, sheet, style, headers); err != nil {
		return err
	}
	for i, student := range report.Students {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), student.FirstName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), student.LastName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), student.StudentNumber)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), student.Email)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), student.Promo)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), report.Semester.Title)
	}
	return f.SetColWidth(sheet, "A", "F", 22)
}

func writeProfessorsSheet(f *excelize.File, style int, report *CycleReport) error {
	const sheet = "Professors"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"First Name", "Last Name", "Email", "Status", "Modules Taught"}
	if err := writeHeaderRow(f, sheet, style, headers); err != nil {
		return err
	}
	for i, professor := range report.Professors {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), professor.FirstName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), professor.LastName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), professor.Email)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), professor.Status)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), modulesTaught(professor, report.Modules))
	}
	return f.SetColWidth(sheet, "A", "E", 25)
}

// moduleProfessorName finds the professor assigned to a module, if any.
func moduleProfessorName(module *registry.Module, professors []*registry.Professor) string {
	for _, professor := range professors {
		for _, id := range professor.Modules {
			if id == module.ID {
				return professor.LastName
			}
		}
	}
	return "N/A"
}

// modulesTaught joins the titles of the report's modules assigned to the
// professor.
func modulesTaught(professor *registry.Professor, modules []*registry.Module) string {
	assigned := make(map[string]bool, len(professor.Modules))
	for _, id := range professor.Modules {
		assigned[id.Hex()] = true
	}
	var titles []string
	for _, module := range modules {
		if assigned[module.ID.Hex()] {
			titles = append(titles, module.Title)
		}
	}
	if len(titles) == 0 {
		return "N/A"
	}
	result := titles[0]
	for _, title := range titles[1:] {
		result += ", " + title
	}
	return result
}
