package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// Renderer draws a View.
type Renderer interface {
	Render(v View) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(v View) error

func (f RendererFunc) Render(v View) error { return f(v) }

const clearScreen = "\x1b[H\x1b[2J"

const viewTemplate = `{{paint .Theme}}  Weather Dashboard{{with .Clock}}  {{.}}{{end}}{{with .Date}}  {{.}}{{end}}{{reset}}
  Search: {{.Input}}
{{if .Loading}}
  Loading...
{{else if .Error}}
  ! {{.Error}}
{{end}}{{with .Current}}
  {{.Place}}{{with .LocalTime}}  (local {{.}}){{end}}
  {{.Icon.Glyph}}  {{.Temp}}°C  {{.Condition}}
  Feels like {{.FeelsLike}}°C
  Wind {{.Wind}} {{.WindDir}}   Humidity {{.Humidity}}
  Visibility {{.Visibility}}   Pressure {{.Pressure}}
  Sunrise {{.Sunrise}}   Sunset {{.Sunset}}
{{end}}{{if .Days}}
{{range .Days}}  {{pad .Label 6}}{{.Icon.Glyph}}  {{.Max}}° / {{.Min}}°  rain {{.RainChance}}  {{.Condition}}
{{end}}{{end}}`

var tmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"paint": func(t Theme) string { return fmt.Sprintf("\x1b[48;5;%dm\x1b[97m", t.Color) },
	"reset": func() string { return "\x1b[0m" },
	"pad": func(s string, n int) string {
		if len(s) >= n {
			return s + " "
		}
		return s + strings.Repeat(" ", n-len(s))
	},
}).Parse(viewTemplate))

// TextRenderer writes each view to Out as plain text with ANSI colours.
type TextRenderer struct {
	Out io.Writer
	// Clear redraws in place instead of appending.
	Clear bool
}

func NewTextRenderer(out io.Writer, clear bool) *TextRenderer {
	return &TextRenderer{Out: out, Clear: clear}
}

func (r *TextRenderer) Render(v View) error {
	var b strings.Builder
	if r.Clear {
		b.WriteString(clearScreen)
	}
	if err := tmpl.Execute(&b, v); err != nil {
		return fmt.Errorf("render view: %w", err)
	}
	_, err := io.WriteString(r.Out, b.String())
	return err
}
