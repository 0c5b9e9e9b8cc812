package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/groenvak/offerte-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate schrijft het urenrapport: een samenvattingsblad met uren per
// project tegenover de begroting, en per project een detailblad.
func (g *Generator) Generate(rapport model.UrenRapport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Samenvatting"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, rapport); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, project := range rapport.Projecten {
		sheetName := buildSheetName(project.ProjectNaam, project.ProjectID.String(), usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeDetail(file, sheetName, rapport, project); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, rapport model.UrenRapport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Urenrapport")
	set("A2", "Begin periode")
	set("B2", formatDate(rapport.PeriodStart))
	set("A3", "Einde periode")
	set("B3", formatDate(rapport.PeriodEnd))
	set("A4", "Totaal gewerkte uren")
	set("B4", rapport.TotaalUren)

	tableRow := 6
	set(fmt.Sprintf("A%d", tableRow), "Project")
	set(fmt.Sprintf("B%d", tableRow), "Begrote uren")
	set(fmt.Sprintf("C%d", tableRow), "Gewerkte uren")
	set(fmt.Sprintf("D%d", tableRow), "Verschil")

	for i, project := range rapport.Projecten {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), project.ProjectNaam)
		set(fmt.Sprintf("B%d", row), project.BegroteUren)
		set(fmt.Sprintf("C%d", row), project.GewerkteUren)
		set(fmt.Sprintf("D%d", row), project.BegroteUren-project.GewerkteUren)
	}

	_ = file.SetColWidth(sheet, "A", "A", 45)
	_ = file.SetColWidth(sheet, "B", "D", 16)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, rapport model.UrenRapport, project model.ProjectUren) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Project")
	set("B1", project.ProjectNaam)
	set("A2", "Begin periode")
	set("B2", formatDate(rapport.PeriodStart))
	set("A3", "Einde periode")
	set("B3", formatDate(rapport.PeriodEnd))
	set("A4", "Begrote uren")
	set("B4", project.BegroteUren)
	set("A5", "Gewerkte uren")
	set("B5", project.GewerkteUren)

	tableRow := 7
	headers := []string{"Datum", "Medewerker", "Uren", "Omschrijving"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, registratie := range project.Registraties {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), formatDate(registratie.Datum))
		set(fmt.Sprintf("B%d", row), registratie.Medewerker)
		set(fmt.Sprintf("C%d", row), registratie.Uren)
		set(fmt.Sprintf("D%d", row), registratie.Omschrijving)
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "B", 28)
	_ = file.SetColWidth(sheet, "C", "C", 10)
	_ = file.SetColWidth(sheet, "D", "D", 48)
	return nil
}

func buildSheetName(name, fallback string, used map[string]struct{}) string {
	base := strings.TrimSpace(name)
	if base == "" {
		base = fallback
	}
	base = sanitizeSheetName(base)
	if len(base) > 31 {
		base = base[:31]
	}

	candidate := base
	counter := 2
	for {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		candidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Blad"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
