package handler

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"github.com/pkordes/parking-roster/internal/domain"
	"github.com/pkordes/parking-roster/internal/roster"
)

const pageCSS = `
table { font-size: 0.85rem; }
td input[type=text] { margin: 0; padding: 0.25rem 0.5rem; }
td select { margin: 0; padding: 0.25rem 1.5rem 0.25rem 0.5rem; }
.actions { display: flex; gap: 0.5rem; flex-wrap: wrap; }
.notice { color: #1b7a34; }
.error { color: #b3261e; }
tr.group-header th { border-top: 2px solid #333; }
@media print {
  .no-print { display: none !important; }
  body { font-size: 10pt; }
  table { font-size: 9pt; }
}
`

// isoDate is the value format of <input type="date">.
const isoDate = "2006-01-02"

// pageData is everything the roster page shows.
type pageData struct {
	Date    time.Time
	Entries []domain.RosterEntry
	Info    string
	Notice  string
	Error   string
}

func page(title string, body ...g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    title,
		Language: "cs",
		Head: []g.Node{
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.Link(h.Rel("stylesheet"), h.Href("https://cdn.jsdelivr.net/npm/@picocss/pico@2/css/pico.classless.min.css")),
			h.StyleEl(g.Raw(pageCSS)),
		},
		Body: []g.Node{h.Main(body...)},
	})
}

// rosterPage renders the date picker and the editable roster grid.
func rosterPage(d pageData) g.Node {
	iso := d.Date.Format(isoDate)
	return page("Směny "+roster.FormatDate(d.Date),
		h.H1(g.Text("📅 Směny")),
		h.Div(h.Class("no-print"),
			h.Form(h.Method("get"), h.Action("/"),
				h.Label(h.For("date"), g.Text("Vyber datum směny")),
				h.Input(h.Type("date"), h.ID("date"), h.Name("date"), h.Value(iso),
					g.Attr("onchange", "this.form.submit()")),
			),
			h.Form(h.Method("post"), h.Action("/ui/refresh"),
				h.Input(h.Type("hidden"), h.Name(formDate), h.Value(iso)),
				h.Button(h.Type("submit"), h.Class("secondary"), g.Text("🔄 Znovu načíst data")),
			),
		),
		g.If(d.Notice != "", h.P(h.Class("notice no-print"), g.Text(d.Notice))),
		g.If(d.Error != "", h.P(h.Class("error no-print"), g.Attr("role", "alert"), g.Text(d.Error))),
		g.If(d.Info != "", h.P(h.Class("info"), g.Text(d.Info))),
		g.If(d.showGrid(), rosterGrid(iso, d.Date, d.Entries)),
	)
}

// showGrid hides the grid when there is nothing to edit: an empty roster, or
// an error before any entries were loaded. Rejected edits keep their grid.
func (d pageData) showGrid() bool {
	if d.Info != "" {
		return false
	}
	return d.Error == "" || len(d.Entries) > 0
}

// rosterGrid renders the entries as a form. Only Done, Keys and Shift are
// editable; the other columns travel as hidden inputs so a save writes back
// exactly what was shown.
func rosterGrid(iso string, date time.Time, entries []domain.RosterEntry) g.Node {
	return h.Section(
		h.H2(g.Text("Přehled směny "+roster.FormatDate(date))),
		h.Form(h.ID("grid"), h.Method("post"), h.Action("/ui/save"),
			h.Input(h.Type("hidden"), h.Name(formDate), h.Value(iso)),
			h.Input(h.Type("hidden"), h.Name(formCount), h.Value(strconv.Itoa(len(entries)))),
			h.Div(h.Class("actions no-print"),
				h.Button(h.Type("submit"), g.Text("💾 Uložit směnu do listu s datem")),
				h.Button(h.Type("submit"), h.Class("secondary"), g.Attr("formaction", "/ui/print"),
					g.Text("📄 Tiskový výstup")),
				h.Button(h.Type("button"), h.Class("secondary"), g.Attr("onclick", "window.print()"),
					h.Title("Otevře dialog pro tisk stránky"), g.Text("🖨️ Tisk")),
			),
			h.Table(
				h.THead(h.Tr(g.Map(domain.Columns(), func(col string) g.Node {
					return h.Th(g.Text(col))
				}))),
				h.TBody(g.Map(indexed(entries), entryRow)),
			),
		),
	)
}

type indexedEntry struct {
	i int
	e domain.RosterEntry
}

func indexed(entries []domain.RosterEntry) []indexedEntry {
	out := make([]indexedEntry, len(entries))
	for i, e := range entries {
		out[i] = indexedEntry{i: i, e: e}
	}
	return out
}

func entryRow(ie indexedEntry) g.Node {
	i, e := ie.i, ie.e
	return h.Tr(
		readOnlyCell(i, fieldName, e.Name),
		readOnlyCell(i, fieldPersonCount, e.PersonCount),
		readOnlyCell(i, fieldDate, e.Date),
		readOnlyCell(i, fieldArrivalTime, e.ArrivalTime),
		readOnlyCell(i, fieldLandingTime, e.LandingTime),
		readOnlyCell(i, fieldFlightNumber, e.FlightNumber),
		readOnlyCell(i, fieldPlateNumber, e.PlateNumber),
		h.Td(h.Select(h.Name(entryField(i, fieldKeys)), h.Title("X = klíče jsou v kanceláři"),
			h.Option(h.Value(""), g.If(e.Keys == "", h.Selected())),
			h.Option(h.Value(domain.KeysHeld), g.If(e.Keys == domain.KeysHeld, h.Selected()), g.Text(domain.KeysHeld)),
		)),
		readOnlyCell(i, fieldNote, e.Note),
		h.Td(h.Input(h.Type("checkbox"), h.Name(entryField(i, fieldDone)), h.Value("true"),
			h.Title("Zaškrtnuté = hotovo"), g.If(e.Done, h.Checked()))),
		h.Td(h.Input(h.Type("text"), h.Name(entryField(i, fieldShift)), h.Value(e.Shift),
			h.Placeholder("Jméno směny"))),
	)
}

func readOnlyCell(i int, field, value string) g.Node {
	return h.Td(
		g.Text(value),
		h.Input(h.Type("hidden"), h.Name(entryField(i, field)), h.Value(value)),
	)
}

// printPage renders the grouped print layout and opens the print dialog.
func printPage(date time.Time, table domain.PrintTable) g.Node {
	return page("Tisk "+roster.FormatDate(date),
		h.H1(g.Text("Směna "+roster.FormatDate(date))),
		h.P(h.Class("no-print"),
			h.A(h.Href("/?date="+date.Format(isoDate)), g.Text("← Zpět na přehled")),
		),
		printTable(table),
		h.Script(g.Raw("window.print();")),
	)
}

func printTable(table domain.PrintTable) g.Node {
	return h.Table(
		h.THead(h.Tr(g.Map(table.Columns, func(col string) g.Node {
			return h.Th(g.Text(col))
		}))),
		h.TBody(g.Map(table.Rows, func(r domain.PrintRow) g.Node {
			if r.Header {
				return h.Tr(h.Class("group-header"), g.Map(r.Cells, func(v string) g.Node {
					return h.Th(g.Text(v))
				}))
			}
			return h.Tr(g.Map(r.Cells, func(v string) g.Node {
				return h.Td(g.Text(v))
			}))
		})),
	)
}
