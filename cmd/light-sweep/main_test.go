package main

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestTrace(t *testing.T) {
	out := &bytes.Buffer{}
	trace(out, 200, 100)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "#ff0000")
	assert.Contains(t, lines[1], "red:  5000, green:  5000, blue:     0")
	assert.Contains(t, lines[1], "#7f7f00")
	assert.Contains(t, lines[2], "green->blue")
	assert.Contains(t, lines[2], "#00ff00")
}

func TestTrace_EveryTick(t *testing.T) {
	out := &bytes.Buffer{}
	trace(out, 5, 0)

	assert.Equal(t, 6, strings.Count(out.String(), "\n"))
}

func TestRootCmd(t *testing.T) {
	root := RootCmd()
	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"version", "start", "trace"}, names)
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
}
