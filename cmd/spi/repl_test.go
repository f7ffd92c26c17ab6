package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/amazingcoderpro/simple-interpreter/pkg/driver"
)

func newTestRepl(t *testing.T) (*repl, *bytes.Buffer) {
	t.Helper()
	cfg := driver.DefaultConfig()
	session, err := driver.NewSession(cfg)
	require.NoError(t, err)
	var out bytes.Buffer
	return newRepl(session, cfg, &out, false, zap.NewNop()), &out
}

func TestReplAssignmentsPersist(t *testing.T) {
	r, out := newTestRepl(t)
	assert.False(t, r.handle(`a = 1\nb = 2`))
	assert.False(t, r.handle(`c = a + b`))
	assert.Equal(t, "a = 1\nb = 2\nc = 3\n", out.String())
}

func TestReplBareExpression(t *testing.T) {
	r, out := newTestRepl(t)
	r.handle(`1+2`)
	r.handle(`x = 4`)
	r.handle(`x / 8`)
	assert.Equal(t, "3\nx = 4\n0.5\n", out.String())
}

func TestReplErrors(t *testing.T) {
	r, out := newTestRepl(t)
	r.handle(`y`)
	r.handle(`a = 1 / 0`)
	r.handle(`a = (`)
	r.handle(`:bogus`)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "[NameError] name 'y' is not defined", lines[0])
	assert.Equal(t, "[ArithmeticError] division by zero", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "[SyntaxError]"), lines[2])
	assert.Contains(t, lines[3], "unknown command :bogus")
}

func TestReplMetaCommands(t *testing.T) {
	r, out := newTestRepl(t)
	r.handle(":scope")
	assert.Equal(t, "(empty scope)\n", out.String())

	out.Reset()
	r.handle(`total = 10`)
	r.handle(`ratio = total / 4`)
	out.Reset()
	r.handle(":scope")
	assert.Contains(t, out.String(), "total")
	assert.Contains(t, out.String(), "2.5")
	assert.Contains(t, out.String(), "float")

	out.Reset()
	r.handle(":eval total * 2")
	assert.Equal(t, "20\n", out.String())

	out.Reset()
	r.handle(":ast x = -1 + 2")
	assert.Equal(t, "x = ((-1) + 2)\n", out.String())

	out.Reset()
	r.handle(":tokens 7")
	assert.Contains(t, out.String(), "INTEGER")

	out.Reset()
	r.handle(":del ratio")
	r.handle(":del ratio")
	assert.Equal(t, "[NameError] name 'ratio' is not defined\n", out.String())
	assert.False(t, r.session.Scope().Has("ratio"))

	r.handle(":reset")
	assert.Equal(t, 0, r.session.Scope().Len())

	assert.True(t, r.handle(":quit"))
}

func TestReplLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.spi")
	require.NoError(t, os.WriteFile(path, []byte(`k = 3`), 0o644))
	r, out := newTestRepl(t)
	r.handle(":load " + path)
	r.handle(":eval k")
	assert.Equal(t, "3\n", out.String())

	out.Reset()
	r.handle(":load")
	assert.Contains(t, out.String(), ":load needs a file")
}

func TestHistoryPath(t *testing.T) {
	cfg := driver.DefaultConfig()
	cfg.HistoryFile = "/tmp/custom_history"
	assert.Equal(t, "/tmp/custom_history", historyPath(cfg))

	cfg.HistoryFile = ""
	assert.True(t, strings.HasSuffix(historyPath(cfg), defaultHistoryFile))
	assert.False(t, strings.HasPrefix(historyPath(cfg), "~"))
}
