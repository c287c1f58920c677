package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "pico", cmd.Use)

	for _, name := range []string{"refs", "state", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "", "--format", "xml", "version")
	assert.ErrorContains(t, err, `invalid format "xml"`)
}

func TestGoldenOutput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"refs_text", []string{"refs", "testdata/page.html"}},
		{"refs_json", []string{"--format", "json", "refs", "testdata/page.html"}},
		{"state_text", []string{"state", "testdata/project"}},
		{"state_json", []string{"--format", "json", "state", "testdata/project"}},
		{"version_text", []string{"version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			golden(t).Assert(t, tt.name, []byte(out))
		})
	}
}

func TestRefsFromStdin(t *testing.T) {
	out, _, err := execute(t, `<x-a><p data-ref="p">hi</p></x-a>`, "refs", "--marker", "data-ref", "-")
	require.NoError(t, err)
	assert.Equal(t, "x-a\n  p: p\n  root: x-a\n", out)
}

func TestRefsNoComponents(t *testing.T) {
	out, _, err := execute(t, `<div><p>plain</p></div>`, "refs", "-")
	require.NoError(t, err)
	assert.Equal(t, "no components found\n", out)
}

func TestRefsVerboseWritesToStderr(t *testing.T) {
	out, errOut, err := execute(t, "", "-v", "--format", "json", "refs", "testdata/page.html")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, errOut, "found 3 component(s)")
}

func TestRefsMissingFile(t *testing.T) {
	_, _, err := execute(t, "", "refs", "testdata/missing.html")
	assert.ErrorContains(t, err, "failed to read testdata/missing.html")
}

func TestStateRejectsMalformedState(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeConfig(dir, "state: [1, 2]\n"))

	_, _, err := execute(t, "", "state", dir)
	assert.ErrorContains(t, err, "state must be a mapping")
}
