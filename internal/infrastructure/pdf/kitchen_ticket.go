// Package pdf genera la comanda de cocina de un pedido.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Local + N° de pedido │ Mesa + Fecha   │
//	│  CLIENTE / ESTADO / NOTAS                       │
//	│  ─────────────────────────────────────────────  │
//	│  TABLA: Cant | Ítem | P.Unit | Subtotal          │
//	│  ─────────────────────────────────────────────  │
//	│  TOTAL (solo líneas vigentes)                    │
//	└───────────────────────────────────────────────┘
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/beanscene-api/internal/application/ports"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
)

var _ ports.TicketRenderer = (*KitchenTicketGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 90, Green: 56, Blue: 37}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// TicketOptions presentación de la comanda.
type TicketOptions struct {
	Venue          string
	Locale         string // BCP 47, ej. en-AU
	CurrencySymbol string
}

// KitchenTicketGenerator implementa ports.TicketRenderer usando Maroto v2.
type KitchenTicketGenerator struct {
	venue   string
	symbol  string
	printer *message.Printer
}

// NewKitchenTicketGenerator construye el generador. Un locale inválido usa inglés.
func NewKitchenTicketGenerator(opts TicketOptions) *KitchenTicketGenerator {
	tag, err := language.Parse(opts.Locale)
	if err != nil {
		tag = language.English
	}
	return &KitchenTicketGenerator{
		venue:   opts.Venue,
		symbol:  opts.CurrencySymbol,
		printer: message.NewPrinter(tag),
	}
}

// RenderTicket genera el PDF y devuelve sus bytes. Las líneas cuyo ítem ya no existe
// se imprimen como no disponibles y no suman al total.
func (g *KitchenTicketGenerator) RenderTicket(order *entity.Order, lines []entity.ResolvedLine) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kitchen ticket "+order.ID.Hex(), true).
		WithAuthor(g.venue, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(g.customerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	total := decimal.Zero
	for _, l := range lines {
		r, subtotal := g.lineRow(l)
		m.AddRows(r)
		total = total.Add(subtotal)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comanda: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *KitchenTicketGenerator) headerRow(order *entity.Order) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.venue, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Order "+shortID(order), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("TABLE "+order.TableNo, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1}),
			text.New(order.DateTime, props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func (g *KitchenTicketGenerator) customerRow(order *entity.Order) core.Row {
	r := row.New(14)
	c := col.New(12).Add(
		text.New(fmt.Sprintf("Customer: %s   |   Status: %s", order.CustomerName, order.Status),
			props.Text{Size: 9, Top: 1}),
	)
	if order.Notes != "" {
		c.Add(text.New("Notes: "+order.Notes, props.Text{Size: 8, Top: 7, Color: colorGray}))
	}
	return r.Add(c)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Item", 6, align.Left),
		h("Unit", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// lineRow devuelve la fila y el subtotal que aporta (cero si la línea es inválida).
func (g *KitchenTicketGenerator) lineRow(l entity.ResolvedLine) (core.Row, decimal.Decimal) {
	qty := col.New(1).Add(text.New(fmt.Sprint(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1}))
	if l.Invalid() {
		return row.New(7).Add(
			qty,
			col.New(11).Add(text.New("Item no longer available ("+l.ItemID.Hex()+")", props.Text{
				Size: 8, Style: fontstyle.Italic, Color: colorAlert, Top: 1, Left: 1,
			})),
		), decimal.Zero
	}
	subtotal := l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
	return row.New(7).Add(
		qty,
		col.New(6).Add(text.New(l.Item.Name, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(g.money(l.Item.Price), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(g.money(subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	), subtotal
}

func (g *KitchenTicketGenerator) totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
		col.New(3).Add(text.New(g.money(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separadores del locale y dos decimales. Ej en-AU: "$1,234.50".
func (g *KitchenTicketGenerator) money(d decimal.Decimal) string {
	return g.symbol + g.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// shortID últimos 6 caracteres del id, suficiente para identificar el pedido en cocina.
func shortID(order *entity.Order) string {
	hex := order.ID.Hex()
	return "#" + hex[len(hex)-6:]
}
