package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullDocument(t *testing.T) {
	cfg, err := Parse([]byte(`
workspaces: [main, web, chat]
layouts: [dtiled, floating]
gaps:
  inner: 8
  outer: 16
borderWidth: 3
floatClasses: [Pavucontrol, feh]
focusFollowsPointer: true
outputs:
  - name: DP-1
    at: {x: 0, y: 0}
  - name: HDMI-1
    rightOf: DP-1
keybinds:
  - chord: M-Return
    spawn: alacritty
  - chord: M-S-q
    action: close-window
mousebinds:
  - chord: M-1-motion
    action: move-window
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "web", "chat"}, cfg.Workspaces)
	assert.Equal(t, Gaps{Inner: 8, Outer: 16}, cfg.Gaps)
	assert.Equal(t, 3, cfg.BorderWidth)
	assert.True(t, cfg.FocusFollowsPointer)
	assert.True(t, cfg.FloatsClass("feh"))
	assert.False(t, cfg.FloatsClass("firefox"))
	require.Len(t, cfg.Outputs, 2)
	assert.Equal(t, "DP-1", cfg.Outputs[1].RightOf)
}

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`gaps: {inner: 4}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, cfg.Workspaces)
	assert.Equal(t, []string{"dtiled", "floating"}, cfg.Layouts)
	assert.Equal(t, 2, cfg.BorderWidth)

	// an explicit zero border is not a missing border
	cfg, err = Parse([]byte(`borderWidth: 0`))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.BorderWidth)
}

func TestValidateRejections(t *testing.T) {
	cases := map[string]string{
		"negative gap":       `gaps: {inner: -1}`,
		"unknown layout":     `layouts: [spiral]`,
		"dup workspace":      `workspaces: [a, a]`,
		"empty workspace":    `workspaces: ["", b]`,
		"empty output ident": `outputs: [{at: {x: 0, y: 0}}]`,
		"dup output":         `outputs: [{name: DP-1}, {name: DP-1}]`,
		"unknown referent":   `outputs: [{name: DP-1, rightOf: HDMI-1}]`,
		"two positions":      `outputs: [{name: DP-1, at: {x: 0, y: 0}, mirror: DP-1}]`,
		"bad chord":          `keybinds: [{chord: Q-x, spawn: foo}]`,
		"action and spawn":   `keybinds: [{chord: M-x, action: a, spawn: b}]`,
		"neither":            `keybinds: [{chord: M-x}]`,
		"mousebind no act":   `mousebinds: [{chord: M-1}]`,
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestExtensibleSections(t *testing.T) {
	cfg, err := Parse([]byte(`
gaps: {inner: 2}
bar:
  position: top
  height: 24
`))
	require.NoError(t, err)

	v, ok := cfg.GetKey("bar", "position")
	require.True(t, ok)
	assert.Equal(t, "top", v)
	_, ok = cfg.GetKey("bar", "font")
	assert.False(t, ok)
	_, ok = cfg.GetKey("tray", "position")
	assert.False(t, ok)

	var bar struct {
		Position string `yaml:"position"`
		Height   int    `yaml:"height"`
	}
	found, err := cfg.Section("bar", &bar)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 24, bar.Height)

	found, err = cfg.Section("tray", &bar)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDiff(t *testing.T) {
	a := []byte("gaps:\n  inner: 4\n")
	b := []byte("gaps:\n  inner: 8\n")
	assert.Empty(t, Diff(a, a))
	assert.NotEmpty(t, Diff(a, b))
}
