package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/amazingcoderpro/simple-interpreter/pkg/errs"
	"github.com/amazingcoderpro/simple-interpreter/pkg/runtime"
)

func newSession(t *testing.T, cfg *Config) *Session {
	t.Helper()
	s, err := NewSession(cfg, WithLogger(zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))))
	require.NoError(t, err)
	return s
}

func TestSessionPersistsScope(t *testing.T) {
	s := newSession(t, nil)
	require.NoError(t, s.Exec("1", `a = 1\nb = 2`))
	require.NoError(t, s.Exec("2", `c = a + b\nd = c + 3\ne = (c + d) * 5`))
	assert.Equal(t, "{'a': 1, 'b': 2, 'c': 3, 'd': 6, 'e': 45}", s.Scope().String())
}

func TestSessionEval(t *testing.T) {
	s := newSession(t, nil)
	require.NoError(t, s.Exec("p", `x = 7`))

	v, err := s.Eval(`x / 2`)
	require.NoError(t, err)
	assert.Equal(t, "3.5", runtime.Format(v))
	assert.Equal(t, 1, s.Scope().Len())

	_, err = s.Eval(`y + 1`)
	assert.True(t, errs.Is(err, errs.NameError))
	_, err = s.Eval(`x = 1`)
	assert.True(t, errs.Is(err, errs.SyntaxError))
}

func TestSessionFailureKeepsEarlierBindings(t *testing.T) {
	s := newSession(t, nil)
	err := s.Exec("p", `a = 1\nb = a / 0\nc = 3`)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ArithmeticError))
	assert.Equal(t, []string{"a"}, s.Scope().Names())
}

func TestSessionCheckBeforeRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Check = true
	s := newSession(t, cfg)

	err := s.Exec("p", `a = 1\nb = q`)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.NameError))
	assert.Equal(t, 0, s.Scope().Len(), "a failing check must not evaluate anything")

	require.NoError(t, s.Exec("p", `a = 1`))
	require.NoError(t, s.Exec("p", `b = a * 2`), "names bound earlier count as defined")
	assert.Equal(t, 2, s.Scope().Len())
}

func TestSessionCheck(t *testing.T) {
	s := newSession(t, nil)
	require.NoError(t, s.Exec("p", `a = 1 / 2`))
	table, diags, err := s.Check("c", `b = a + z`)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "z", diags[0].Name)
	b, ok := table.LookupVar("b")
	require.True(t, ok)
	assert.Nil(t, b.Type)

	_, _, err = s.Check("c", `b = `)
	assert.True(t, errs.Is(err, errs.SyntaxError))
}

func TestSessionPreludeAndReset(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib", "consts.spi"), `ten = 10\nhalf = 1 / 2`)
	cfgPath := writeFile(t, filepath.Join(dir, ConfigFileName), "prelude:\n  - lib/consts.spi\n")
	cfg, err := LoadConfig(cfgPath)
	require.NoError(t, err)

	s := newSession(t, cfg)
	assert.Equal(t, []string{"ten", "half"}, s.Scope().Names())

	require.NoError(t, s.Exec("p", `x = ten * half`))
	v, ok := s.Scope().Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "5.0", runtime.Format(v))

	assert.True(t, s.Unset("ten"))
	assert.False(t, s.Unset("ten"))

	// the prelude is restored from the snapshot, not re-read
	require.NoError(t, os.Remove(filepath.Join(dir, "lib", "consts.spi")))
	s.Reset()
	assert.Equal(t, []string{"ten", "half"}, s.Scope().Names())
	v, ok = s.Scope().Lookup("half")
	require.True(t, ok)
	assert.Equal(t, "0.5", runtime.Format(v))
}

func TestSessionResetWithoutPrelude(t *testing.T) {
	s := newSession(t, nil)
	require.NoError(t, s.Exec("p", `a = 1`))
	s.Reset()
	assert.Equal(t, 0, s.Scope().Len())
}

func TestSessionBadPrelude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Prelude = []string{filepath.Join(t.TempDir(), "absent.spi")}
	_, err := NewSession(cfg)
	require.Error(t, err)
}

func TestSessionExecFile(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "main.spi"), `n = -(2 - 5) * 3`)
	s := newSession(t, nil)
	require.NoError(t, s.ExecFile(path))
	v, _ := s.Scope().Lookup("n")
	assert.Equal(t, "9", runtime.Format(v))
}
