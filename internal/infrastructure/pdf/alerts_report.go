// Package pdf genera el reporte imprimible de alertas de vencimiento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + bodega      │  fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Estado | Producto | SKU | Ubicación | Vence | Días   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: items / vencidos / por vencer / sin vencimiento    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/warehouse-vision/internal/application/dto"
	"github.com/jhoicas/warehouse-vision/internal/application/inventory"
	domaininv "github.com/jhoicas/warehouse-vision/internal/domain/inventory"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorExpired = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorSoon    = &props.Color{Red: 200, Green: 120, Blue: 0}
)

var _ inventory.AlertsReportGenerator = (*MarotoAlertsReport)(nil)

// MarotoAlertsReport implementa inventory.AlertsReportGenerator con Maroto v2.
type MarotoAlertsReport struct{}

// NewMarotoAlertsReport construye el generador.
func NewMarotoAlertsReport() *MarotoAlertsReport { return &MarotoAlertsReport{} }

// GenerateAlertsReport genera el PDF y devuelve sus bytes.
func (g *MarotoAlertsReport) GenerateAlertsReport(_ context.Context, r inventory.AlertsReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Alertas de vencimiento", true).
		WithAuthor("Warehouse Vision", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(r.Alerts) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin productos vencidos ni por vencer.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(alertRows(r.Alerts)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r.Stats))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(r inventory.AlertsReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("ALERTAS DE VENCIMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega: "+r.WarehouseID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Estado", 2, align.Left),
		h("Producto", 3, align.Left),
		h("SKU", 2, align.Left),
		h("Ubicación", 2, align.Left),
		h("Vence", 2, align.Center),
		h("Días", 1, align.Right),
	)
}

// alertRows una fila por alerta, en el orden recibido (más urgente primero).
func alertRows(alerts []dto.ItemResponse) []core.Row {
	rows := make([]core.Row, 0, len(alerts))
	for _, a := range alerts {
		cell := props.Text{Size: 8, Top: 1, Left: 1}
		status := cell
		status.Style = fontstyle.Bold
		status.Color = statusColor(a.AlertStatus)

		rows = append(rows, row.New(7).Add(
			col.New(2).Add(text.New(statusLabel(a.AlertStatus), status)),
			col.New(3).Add(text.New(a.ProductName, cell)),
			col.New(2).Add(text.New(a.SKU, cell)),
			col.New(2).Add(text.New(LocationLabel(a), cell)),
			col.New(2).Add(text.New(deref(a.ExpirationDate, "-"), props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(1).Add(text.New(formatDays(a.DaysUntilExpiration), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func totalsRow(s dto.AlertStatsResponse) core.Row {
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(n int) core.Component {
		return text.New(strconv.Itoa(n), props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(8).Add(
		col.New(2).Add(label("Items:")), col.New(1).Add(value(s.TotalItems)),
		col.New(2).Add(label("Vencidos:")), col.New(1).Add(value(s.Expired)),
		col.New(2).Add(label("Por vencer:")), col.New(1).Add(value(s.ExpiringSoon)),
		col.New(2).Add(label("Sin fecha:")), col.New(1).Add(value(s.NoExpiration)),
	)
}

// LocationLabel ubicación compacta: zona-pasillo-rack-nivel-posición.
func LocationLabel(a dto.ItemResponse) string {
	return fmt.Sprintf("%s-%s-%s-%d-%d", a.Zona, a.Pasillo, a.Rack, a.Nivel, a.Posicion)
}

func statusLabel(s string) string {
	switch domaininv.AlertStatus(s) {
	case domaininv.StatusExpired:
		return "VENCIDO"
	case domaininv.StatusExpiringSoon:
		return "POR VENCER"
	default:
		return s
	}
}

func statusColor(s string) *props.Color {
	if domaininv.AlertStatus(s) == domaininv.StatusExpired {
		return colorExpired
	}
	return colorSoon
}

func formatDays(d *float64) string {
	if d == nil {
		return "-"
	}
	return strconv.FormatFloat(*d, 'f', 1, 64)
}

func deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
