package hud

import (
	"github.com/gdamore/tcell/v2"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/world"
)

// World units per terminal cell.
const cellUnits = 16.0

var glyphs = map[component.Kind]rune{
	component.KindPlayer:        '@',
	component.KindTower:         'T',
	component.KindFootman:       'f',
	component.KindBubbleSpawner: 'S',
	component.KindBubble:        'o',
	component.KindHarvester:     'H',
	component.KindPotionShelf:   '#',
	component.KindPotion:        'p',
}

var glyphStyles = map[component.Kind]tcell.Style{
	component.KindPlayer:        tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	component.KindTower:         tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	component.KindFootman:       tcell.StyleDefault.Foreground(tcell.ColorRed),
	component.KindBubbleSpawner: tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
	component.KindBubble:        tcell.StyleDefault.Foreground(tcell.ColorAqua),
	component.KindHarvester:     tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	component.KindPotion:        tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
}

// TerminalHUD draws a top-down view of the arena centred on the player,
// with the status line on the first row.
type TerminalHUD struct {
	screen tcell.Screen
	fmt    *Formatter
	feed   *EventFeed
}

func NewTerminalHUD(screen tcell.Screen, f *Formatter, feed *EventFeed) *TerminalHUD {
	return &TerminalHUD{screen: screen, fmt: f, feed: feed}
}

// Draw renders one frame. Called from the game loop after a tick.
func (h *TerminalHUD) Draw(ws *world.State) {
	scr := h.screen
	scr.Clear()
	w, hgt := scr.Size()

	var cx, cy float64
	if p, ok := ws.First(component.KindPlayer); ok {
		pos, _ := ws.Position(p)
		cx, cy = pos.X, pos.Y
	}

	// higher layers overwrite lower ones; Transform.Z is the layer
	type cell struct {
		r rune
		z float64
		s tcell.Style
	}
	cells := make(map[[2]int]cell)
	ws.Transforms.Each(func(id ecs.EntityID, t *component.Transform) {
		k := ws.KindOf(id)
		r, ok := glyphs[k]
		if !ok {
			return
		}
		x := w/2 + int((t.Position.X-cx)/cellUnits)
		y := (hgt+1)/2 - int((t.Position.Y-cy)/cellUnits)
		if x < 0 || x >= w || y < 1 || y >= hgt {
			return
		}
		key := [2]int{x, y}
		if c, ok := cells[key]; ok && c.z > t.Position.Z {
			return
		}
		cells[key] = cell{r: r, z: t.Position.Z, s: glyphStyles[k]}
	})
	for k, c := range cells {
		scr.SetContent(k[0], k[1], c.r, nil, c.s)
	}

	putText(scr, 0, 0, h.StatusLine(ws), tcell.StyleDefault.Reverse(true))
	scr.Show()
}

// StatusLine is the first-row readout.
func (h *TerminalHUD) StatusLine(ws *world.State) string {
	line := h.fmt.Mana(ws.Mana())
	for _, p := range []struct {
		key  string
		kind component.Kind
	}{
		{"W", component.KindBubbleSpawner},
		{"Space", component.KindHarvester},
		{"E", component.KindPotion},
	} {
		if a := ws.Archetypes.Get(p.kind); a != nil {
			line += "  " + h.fmt.Cost(p.key, a.Name, a.Cost)
		}
	}
	line += "  " + h.fmt.Count("entities", ws.EntityCount())
	if h.feed != nil {
		line += "  " + h.fmt.Count("kills", h.feed.Counts().Died)
	}
	return line
}

func putText(scr tcell.Screen, x, y int, s string, st tcell.Style) {
	sw, _ := scr.Size()
	for _, r := range s {
		if x >= sw {
			break
		}
		scr.SetContent(x, y, r, nil, st)
		x++
	}
}
