package display

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/wamphlett/softbox-controller/pkg/controller"
	"github.com/wamphlett/softbox-controller/pkg/engine"
)

const helpLine = "r/g/b +  R/G/B -  </> speed  space next  0-7 effect  s stop  tab hide  q quit"

func toTcell(c engine.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (d *Display) draw(state controller.State) {
	w, h := d.screen.Size()
	bg := tcell.StyleDefault.Background(toTcell(d.current))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d.screen.SetContent(x, y, ' ', nil, bg)
		}
	}

	if d.showPanel {
		fg := engine.White
		if d.current.IsLight() {
			fg = engine.Black
		}
		style := bg.Foreground(toTcell(fg))
		lines := d.panelLines(state, w-2)
		top := h - len(lines) - 1
		for i, line := range lines {
			d.drawText(1, top+i, line, style)
		}
	}

	d.screen.Show()
}

func (d *Display) panelLines(state controller.State, width int) []string {
	b := state.Base
	status := "static"
	if state.Running {
		status = "running"
	}
	lines := []string{
		fmt.Sprintf("R %03d  G %03d  B %03d  %s", b.R, b.G, b.B, b.Hex()),
		fmt.Sprintf("Effect: %s  Speed: %dms  [%s]", state.Effect, state.Speed, status),
	}
	lines = append(lines, wrap(d.effectItems(), width)...)
	lines = append(lines, wrap(d.presetItems(), width)...)
	return append(lines, helpLine)
}

func (d *Display) effectItems() []string {
	kinds := engine.Kinds()
	items := make([]string, len(kinds))
	for i, k := range kinds {
		items[i] = fmt.Sprintf("%d %s", i, k)
	}
	return items
}

func (d *Display) presetItems() []string {
	items := make([]string, len(d.presets))
	for i, p := range d.presets {
		items[i] = fmt.Sprintf("F%d %s", i+1, p.Name)
	}
	return items
}

// wrap joins items with two spaces, breaking lines before they exceed width
func wrap(items []string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, item := range items {
		if line.Len() > 0 && runewidth.StringWidth(line.String())+2+runewidth.StringWidth(item) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString("  ")
		}
		line.WriteString(item)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func (d *Display) drawText(x, y int, text string, style tcell.Style) {
	w, h := d.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range text {
		if x >= w {
			return
		}
		d.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
