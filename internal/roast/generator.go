// Package roast turns a profile into one line of canned roast text.
package roast

import (
	"unicode/utf16"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
)

// Template renders one roast for a profile.
type Template func(p *model.Profile, f *message.Printer) string

// Generator picks a template deterministically from the username.
type Generator struct {
	templates []Template
	printer   *message.Printer
}

func NewGenerator() *Generator {
	return NewGeneratorWith(DefaultTemplates)
}

// NewGeneratorWith panics when templates is empty.
func NewGeneratorWith(templates []Template) *Generator {
	if len(templates) == 0 {
		panic("roast: no templates")
	}
	return &Generator{
		templates: templates,
		printer:   message.NewPrinter(language.English),
	}
}

// Generate returns the roast line for p. Only the username and the counts
// used by the chosen template affect the result.
func (g *Generator) Generate(p *model.Profile) string {
	return g.templates[Index(p.Username, len(g.templates))](p, g.printer)
}

// Hash is the 31-multiplier polynomial hash over UTF-16 code units, wrapped to
// a signed 32-bit integer at every step.
func Hash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	return h
}

// Index maps s onto [0, n).
func Index(s string, n int) int {
	h := int64(Hash(s))
	if h < 0 {
		h = -h
	}
	return int(h % int64(n))
}
