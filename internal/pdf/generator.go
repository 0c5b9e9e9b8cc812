package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/groenvak/offerte-service/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate bouwt het offertedocument: kop, klantblok, regeltabel en het
// totalenblok met de volledige cascade tot en met BTW.
func (g *Generator) Generate(offerte model.Offerte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "Offerte", "", 1, "L", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Offertenummer: %s", offerte.Nummer), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Datum: %s", offerte.CreatedAt.Format("02-01-2006")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, "Opdrachtgever", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.MultiCell(0, 5, offerte.KlantNaam, "", "L", false)
	if offerte.KlantAdres != "" {
		pdf.MultiCell(0, 5, offerte.KlantAdres, "", "L", false)
	}
	if offerte.KlantEmail != "" {
		pdf.MultiCell(0, 5, offerte.KlantEmail, "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Werkzaamheden en materialen", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 9)

	headers := []string{"Omschrijving", "Scope", "Aantal", "Eenheid", "Prijs", "Totaal"}
	colWidths := []float64{70, 25, 20, 18, 23, 24}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for _, regel := range offerte.Regels {
		row := []string{
			regel.Omschrijving,
			string(regel.Scope),
			formatAmount(regel.Hoeveelheid, 2),
			regel.Eenheid,
			formatAmount(regel.PrijsPerEenheid, 2),
			formatAmount(regel.Totaal, 2),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	pdf.Ln(3)
	pdf.SetFont(g.fontName, "", 10)
	totalen := offerte.Totalen
	totaalregel(pdf, "Materiaalkosten", totalen.Materiaalkosten)
	totaalregel(pdf, fmt.Sprintf("Arbeidskosten (%s uur)", formatAmount(totalen.TotaalUren, 2)), totalen.Arbeidskosten)
	totaalregel(pdf, "Subtotaal", totalen.Subtotaal)
	totaalregel(pdf, fmt.Sprintf("Marge (%s%%)", formatAmount(totalen.MargePercentage, 1)), totalen.Marge)
	pdf.SetFont(g.fontName, "B", 10)
	totaalregel(pdf, "Totaal excl. BTW", totalen.TotaalExBtw)
	pdf.SetFont(g.fontName, "", 10)
	totaalregel(pdf, fmt.Sprintf("BTW (%s%%)", formatAmount(offerte.BtwPercentage, 1)), totalen.Btw)
	pdf.SetFont(g.fontName, "B", 11)
	totaalregel(pdf, "Totaal incl. BTW", totalen.TotaalInclBtw)

	pdf.Ln(8)
	pdf.SetFont(g.fontName, "", 9)
	pdf.MultiCell(0, 5, "Deze offerte is 30 dagen geldig. Prijzen op basis van de opgegeven terreincondities.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func totaalregel(pdf *gofpdf.Fpdf, label string, bedrag float64) {
	pdf.CellFormat(130, 6, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(50, 6, "EUR "+formatAmount(bedrag, 2), "", 1, "R", false, 0, "")
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 6, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatAmount(value float64, decimals int) string {
	formatted := strconv.FormatFloat(value, 'f', decimals, 64)
	// Nederlandse notatie: komma als decimaalteken.
	return strings.ReplaceAll(formatted, ".", ",")
}
