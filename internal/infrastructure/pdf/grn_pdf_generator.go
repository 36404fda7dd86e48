// Package pdf implementa la generación del Acta de Recepción de Mercancía.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Acta de Recepción  │  N° GRN + Fecha + Estado      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre + NIT   │   BODEGA + Orden de compra     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Artículo | Recibido | Aceptado | Rechazado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades recibidas / aceptadas / rechazadas        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Almacen-api/internal/application/receiving"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ receiving.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa receiving.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReceiptPDF genera el acta y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(data *receiving.ReceiptDocumentData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de Recepción "+data.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	if data.Notes != "" {
		m.AddRows(line.NewRow(2))
		m.AddRows(row.New(10).Add(
			col.New(12).Add(
				text.New("Observaciones: "+data.Notes, props.Text{
					Size: 8, Color: colorGray, Top: 1,
				}),
			),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y número + fecha + estado (der).
func headerRow(data *receiving.ReceiptDocumentData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ACTA DE RECEPCIÓN DE MERCANCÍA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Orden de compra: "+nonEmpty(data.OrderNumber, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(data.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+data.ReceiptDate, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+data.Status, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// partiesRow: proveedor y bodega receptora.
func partiesRow(data *receiving.ReceiptDocumentData) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(data.SupplierName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("NIT: "+nonEmpty(data.SupplierTaxID, "—"), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("BODEGA RECEPTORA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(data.WarehouseName, "—"), props.Text{
				Size: 10, Align: align.Right, Top: 6,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Artículo", 4, align.Left),
		h("Recibido", 2, align.Right),
		h("Aceptado", 2, align.Right),
		h("Rechazado", 1, align.Right),
		h("Verif.", 1, align.Center),
	)
}

// tableLineRows: una fila por línea del acta.
func tableLineRows(lines []receiving.ReceiptDocumentLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(l.SKU, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.ItemName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.ReceivedQty.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(l.AcceptedQty.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(l.RejectedQty.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(nonEmpty(l.Verdict, "—"), props.Text{Size: 7, Align: align.Center, Top: 1})),
		))
	}
	return result
}

// totalsRow: totales de unidades y valor recibido.
func totalsRow(data *receiving.ReceiptDocumentData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Unidades recibidas:"),
			label("Unidades aceptadas:"),
			label("Unidades rechazadas:"),
			label("Valor recibido:"),
		),
		col.New(4).Add(
			value(data.TotalReceived.StringFixed(2)),
			value(data.TotalAccepted.StringFixed(2)),
			value(data.TotalRejected.StringFixed(2)),
			value("$"+data.TotalValue.StringFixed(2)),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
