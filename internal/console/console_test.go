package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTerminal struct {
	bytes.Buffer
}

func (f *fakeTerminal) Fd() uintptr { return 42 }

func withTerminal(t *testing.T, terminal bool) {
	t.Helper()
	previous := isTerminal
	isTerminal = func(uintptr) bool { return terminal }
	t.Cleanup(func() { isTerminal = previous })
}

func TestSetTitle_Development(t *testing.T) {
	withTerminal(t, true)
	var out fakeTerminal

	ok, err := SetTitle(&out, "Development", "People\x07 demo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "\x1b]0;People demo\x07", out.String())
}

func TestSetTitle_Skipped(t *testing.T) {
	cases := map[string]struct {
		terminal bool
		env      string
		title    string
	}{
		"production":   {terminal: true, env: "production", title: "People"},
		"not terminal": {terminal: false, env: "development", title: "People"},
		"empty title":  {terminal: true, env: "development", title: " \n"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			withTerminal(t, tc.terminal)
			var out fakeTerminal
			ok, err := SetTitle(&out, tc.env, tc.title)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, out.String())
		})
	}

	var plain bytes.Buffer
	ok, err := SetTitle(&plain, "development", "People")
	require.NoError(t, err)
	assert.False(t, ok, "writers without a file descriptor are never terminals")
}
