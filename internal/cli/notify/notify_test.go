package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShow_OKAndErr(t *testing.T) {
	el := &Element{}
	Show(el, "hi", true)
	assert.Equal(t, "hi", el.Text)
	assert.Contains(t, el.Class, "ok")
	assert.Equal(t, "alert ok", el.Class)
	assert.True(t, el.Visible)

	Show(el, "oops", false)
	assert.Equal(t, "oops", el.Text)
	assert.Contains(t, el.Class, "err")
	assert.NotContains(t, el.Class, "ok")
	assert.True(t, el.Visible)
}

func TestHide_OnlyChangesVisibility(t *testing.T) {
	el := &Element{}
	Show(el, "hi", true)
	Hide(el)
	assert.False(t, el.Visible)
	assert.Equal(t, "hi", el.Text)
	assert.Equal(t, "alert ok", el.Class)
}

func TestShow_NilElementPanics(t *testing.T) {
	assert.Panics(t, func() { Show(nil, "x", true) })
	assert.Panics(t, func() { Hide(nil) })
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	el := &Element{}
	assert.NoError(t, el.Render(&buf))
	assert.Empty(t, buf.String(), "hidden element renders nothing")

	Show(el, "Logged in", true)
	_ = el.Render(&buf)
	Show(el, "Invalid credentials.", false)
	_ = el.Render(&buf)
	Hide(el)
	_ = el.Render(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"✓ Logged in", "× Invalid credentials."}, lines)
}

func TestNotifier_RendersOnShow(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf)
	n.Show("done", true)
	assert.Equal(t, "✓ done\n", buf.String())
	n.Hide()
	assert.False(t, n.El.Visible)
}

func TestTerminalNavigator_Goto(t *testing.T) {
	var buf bytes.Buffer
	nav := &TerminalNavigator{Out: &buf}
	nav.Goto("/dashboard")
	assert.Equal(t, "/dashboard", nav.Location)
	assert.Equal(t, "→ /dashboard\n", buf.String())
}
