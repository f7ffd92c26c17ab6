package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// emptyConfig pins the configuration so the test does not pick up an spi.yml
// from the surrounding directories.
func emptyConfig(t *testing.T) string {
	return writeTemp(t, "spi.yml", "")
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRunFile(t *testing.T) {
	src := writeTemp(t, "prog.spi", `a = 1\nb = 2\nc = a + b\nd = c + 3\ne = (c + d) * 5`)
	res := runCLI(t, "", "--config", emptyConfig(t), src)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "a = 1\nb = 2\nc = 3\nd = 6\ne = 45\n", res.stdout)

	res = runCLI(t, "", "--config", emptyConfig(t), "--format", "json", "run", src)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"e": 45`)
}

func TestRunStdin(t *testing.T) {
	res := runCLI(t, `x = 7 / 2`, "-c", emptyConfig(t), "run", "-")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "x = 3.5\n", res.stdout)
}

func TestRunReportsErrors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`x = 1 / 0`, "[ArithmeticError] division by zero"},
		{`x = y`, "[NameError] name 'y' is not defined"},
		{`x = (1`, "[SyntaxError]"},
		{`x = 1 $ 2`, "[LexicalError]"},
		{`if = 1`, "[LexicalError] reserved word"},
	}
	for _, tc := range cases {
		res := runCLI(t, tc.src, "-c", emptyConfig(t), "run", "-")
		assert.Equal(t, 1, res.code, tc.src)
		assert.True(t, strings.HasPrefix(res.stderr, tc.want), "%s: got %q", tc.src, res.stderr)
		assert.Empty(t, res.stdout, tc.src)
	}
}

func TestRunCheckFlag(t *testing.T) {
	res := runCLI(t, `a = 1\nb = q`, "-c", emptyConfig(t), "--check", "run", "-")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "[NameError] name 'q' is used before assignment")
}

func TestLegacySeparatorsFlag(t *testing.T) {
	res := runCLI(t, `a = 1\nb = 2`, "-c", emptyConfig(t), "--legacy-separators", "run", "-")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "[SyntaxError]")
}

func TestCheckCommand(t *testing.T) {
	res := runCLI(t, `a = 1\nb = a / 2`, "-c", emptyConfig(t), "check", "-")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "<a:INTEGER>\n<b:FLOAT>\n", res.stdout)

	res = runCLI(t, `a = b`, "-c", emptyConfig(t), "check", "-")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "[NameError]")
}

func TestTokensCommand(t *testing.T) {
	res := runCLI(t, `a=45`, "-c", emptyConfig(t), "tokens", "-")
	require.Equal(t, 0, res.code, res.stderr)
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "IDENTIFIER")
	assert.Contains(t, lines[3], "END_OF_INPUT")
}

func TestASTCommand(t *testing.T) {
	res := runCLI(t, `x = 5---2`, "-c", emptyConfig(t), "ast", "-")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "x = (5 - (-(-2)))\n", res.stdout)

	res = runCLI(t, `x = 1`, "-c", emptyConfig(t), "-f", "json", "ast", "-")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"type"`)
}

func TestConfigFileIsHonoured(t *testing.T) {
	cfg := writeTemp(t, "spi.yml", "output: yaml\n")
	res := runCLI(t, `a = 1 / 4`, "--config", cfg, "-")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "a: 0.25\n", res.stdout)

	res = runCLI(t, `a = 1`, "--config", cfg, "--format", "text", "-")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "a = 1\n", res.stdout)
}

func TestBadArguments(t *testing.T) {
	res := runCLI(t, "", "--format", "xml", "run", "x")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "unknown output format")

	res = runCLI(t, "", "--nope")
	assert.Equal(t, 1, res.code)

	res = runCLI(t, "", "-c", emptyConfig(t), "run")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "expected exactly one file")

	res = runCLI(t, "", "-c", filepath.Join(t.TempDir(), "absent.yml"), "run", "x")
	assert.Equal(t, 1, res.code)
}

func TestHelpAndVersion(t *testing.T) {
	res := runCLI(t, "", "--help")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Usage:")

	res = runCLI(t, "", "-V")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, cliToolVersion+"\n", res.stdout)
}
