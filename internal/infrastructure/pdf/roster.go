// Package pdf genera el listado de clientes en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + aplicación  │  Fecha + total de clientes   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: cantidad por estado                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Nombre | Email | Documento | Teléfono | Estado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: "NN clients to show"                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/Customers-api/internal/application/dto"
	"github.com/jhoicas/Customers-api/internal/application/ports"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// statusColors mismo criterio que los badges del listado.
var statusColors = map[entity.CustomerStatus]*props.Color{
	entity.StatusActive:               {Red: 56, Green: 161, Blue: 105},
	entity.StatusInactive:             {Red: 229, Green: 62, Blue: 62},
	entity.StatusWaitingForActivation: {Red: 214, Green: 158, Blue: 46},
	entity.StatusDisabled:             {Red: 113, Green: 128, Blue: 150},
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.CustomerReportGenerator = (*MarotoRosterGenerator)(nil)

// MarotoRosterGenerator implementa ports.CustomerReportGenerator usando Maroto v2.
type MarotoRosterGenerator struct {
	appName string
}

// NewMarotoRosterGenerator construye el generador.
func NewMarotoRosterGenerator(appName string) *MarotoRosterGenerator {
	return &MarotoRosterGenerator{appName: nonEmpty(appName, "customers-api")}
}

// GenerateRoster genera el PDF del listado y devuelve sus bytes.
func (g *MarotoRosterGenerator) GenerateRoster(ctx context.Context, customers []dto.CustomerResponse, generatedAt time.Time) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Customer List", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, len(customers), generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(customers))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(customers)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%02d clients to show", len(customers)), props.Text{
			Size: 8, Color: colorGray, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(appName string, total int, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("User List", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(appName, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Total: %d", total), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 8,
			}),
		),
	)
}

// summaryRow: una columna por estado con su cantidad.
func summaryRow(customers []dto.CustomerResponse) core.Row {
	counts := CountByStatus(customers)
	cols := make([]core.Col, 0, len(entity.Statuses()))
	for _, st := range entity.Statuses() {
		cols = append(cols, col.New(3).Add(
			text.New(fmt.Sprintf("%s: %d", st, counts[st]), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 2, Color: statusColors[st],
			}),
		))
	}
	return row.New(9).Add(cols...)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2,
		})).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	}
	return row.New(8).Add(
		h("Nombre", 3, align.Left),
		h("Email", 3, align.Left),
		h("Documento", 2, align.Left),
		h("Teléfono", 2, align.Left),
		h("Estado", 2, align.Center),
	)
}

// tableRows: una fila por cliente, en el orden recibido.
func tableRows(customers []dto.CustomerResponse) []core.Row {
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(nonEmpty(s, "-"), props.Text{Size: 8, Top: 1, Left: 1}))
	}
	result := make([]core.Row, 0, len(customers))
	for _, c := range customers {
		st := entity.CustomerStatus(c.Status)
		result = append(result, row.New(7).Add(
			cell(c.Name, 3),
			cell(c.Email, 3),
			cell(c.Document, 2),
			cell(c.Phone, 2),
			col.New(2).Add(text.New(c.Status, props.Text{
				Size: 7, Align: align.Center, Top: 1, Style: fontstyle.Bold, Color: statusColor(st),
			})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// CountByStatus cuenta clientes por estado; los cuatro estados siempre están presentes.
func CountByStatus(customers []dto.CustomerResponse) map[entity.CustomerStatus]int {
	out := make(map[entity.CustomerStatus]int, 4)
	for _, st := range entity.Statuses() {
		out[st] = 0
	}
	for _, c := range customers {
		out[entity.CustomerStatus(c.Status)]++
	}
	return out
}

func statusColor(st entity.CustomerStatus) *props.Color {
	if c, ok := statusColors[st]; ok {
		return c
	}
	return colorGray
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
