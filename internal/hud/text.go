// Package hud renders read-only views of the simulation: the mana
// readout, the terminal display and the event feed.
package hud

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders numbers for one display language.
type Formatter struct {
	tag language.Tag
	p   *message.Printer
}

// NewFormatter parses a BCP 47 tag. Unparseable tags fall back to English.
func NewFormatter(lang string) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Formatter{tag: tag, p: message.NewPrinter(tag)}
}

func (f *Formatter) Language() language.Tag { return f.tag }

// Mana is the HUD readout. Fractions are dropped; the pool is credited in
// per-tick slivers while draining.
func (f *Formatter) Mana(v float64) string {
	return f.p.Sprintf("Mana: %d", int64(math.Floor(v)))
}

// Cost labels a purchase key.
func (f *Formatter) Cost(key, label string, cost float64) string {
	return f.p.Sprintf("[%s] %s %d", key, label, int64(cost))
}

// Count formats an integer with locale grouping.
func (f *Formatter) Count(label string, n int) string {
	return f.p.Sprintf("%s %d", label, n)
}
