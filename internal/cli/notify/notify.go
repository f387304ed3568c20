// Package notify renders status banners and performs navigation for the CLI.
package notify

import (
	"fmt"
	"io"
)

// BaseClass is the class every banner carries; the variant is appended.
const BaseClass = "alert"

const (
	VariantOK  = "ok"
	VariantErr = "err"
)

// Element — целевой элемент для вывода статуса. Создаётся вызывающим кодом,
// Show/Hide только меняют его состояние.
type Element struct {
	Text    string
	Class   string
	Visible bool
}

// Show sets text and class of el and makes it visible.
func Show(el *Element, msg string, ok bool) {
	el.Text = msg
	variant := VariantErr
	if ok {
		variant = VariantOK
	}
	el.Class = BaseClass + " " + variant
	el.Visible = true
}

// Hide makes el invisible, leaving text and class as they were.
func Hide(el *Element) {
	el.Visible = false
}

// OK reports whether the element carries the ok variant.
func (el *Element) OK() bool {
	return el.Class == BaseClass+" "+VariantOK
}

// Render writes a visible banner as one terminal line; hidden elements print nothing.
func (el *Element) Render(w io.Writer) error {
	if !el.Visible {
		return nil
	}
	mark := "×"
	if el.OK() {
		mark = "✓"
	}
	_, err := fmt.Fprintf(w, "%s %s\n", mark, el.Text)
	return err
}

// Notifier binds an element to a writer: every Show is rendered immediately.
type Notifier struct {
	El  *Element
	Out io.Writer
}

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{El: &Element{}, Out: out}
}

func (n *Notifier) Show(msg string, ok bool) {
	Show(n.El, msg, ok)
	_ = n.El.Render(n.Out)
}

func (n *Notifier) Hide() {
	Hide(n.El)
}
