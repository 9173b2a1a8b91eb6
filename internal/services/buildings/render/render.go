// Package render draws a building view state and triggers client actions.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/skyline/internal/platform/i18n"
	"github.com/louisbranch/skyline/internal/services/buildings/domain"
)

// Label is the headline for state: the first building's name, or the
// localized empty placeholder.
func Label(state domain.ViewState, printer *i18n.Printer) string {
	if first, ok := state.First(); ok {
		return first.Name
	}
	return printer.Text(i18n.KeyEmptyList)
}

// TextRenderer writes one label line per rendered state.
type TextRenderer struct {
	W       io.Writer
	Printer *i18n.Printer
	// Err holds the first write failure.
	Err error
}

// Render writes the label for state. It has the client observer signature.
func (r *TextRenderer) Render(state domain.ViewState) {
	if r.Err != nil {
		return
	}
	if _, err := fmt.Fprintln(r.W, Label(state, r.Printer)); err != nil {
		r.Err = err
	}
}

// Page renders state as an HTML fragment: the label as a heading followed by
// the full list.
func Page(state domain.ViewState, printer *i18n.Printer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="buildings" lang="%s"><h1>%s</h1>`,
			templ.EscapeString(printer.Locale()),
			templ.EscapeString(Label(state, printer)),
		); err != nil {
			return err
		}
		if len(state.Buildings) > 0 {
			if _, err := fmt.Fprintf(w, `<ul aria-label="%s">`, templ.EscapeString(printer.Text(i18n.KeyListTitle))); err != nil {
				return err
			}
			for _, building := range state.Buildings {
				if _, err := fmt.Fprintf(w, "<li>%s</li>", templ.EscapeString(building.Name)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</ul>"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</section>\n")
		return err
	})
}

// HTMLRenderer renders every state through Page.
type HTMLRenderer struct {
	W       io.Writer
	Printer *i18n.Printer
	Err     error
}

// Render writes the page for state. It has the client observer signature.
func (r *HTMLRenderer) Render(state domain.ViewState) {
	if r.Err != nil {
		return
	}
	r.Err = Page(state, r.Printer).Render(context.Background(), r.W)
}

// Button is a zero-argument trigger, such as the home screen refresh.
type Button struct {
	Action func() error
}

// Tap runs the button action.
func (b Button) Tap() error {
	if b.Action == nil {
		return errors.New("button action is not configured")
	}
	return b.Action()
}
