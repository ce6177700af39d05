package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-leo/behavior/cmd/behavior/internal/cli"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	Cmd.Flags().VisitAll(func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	})
	var stdout, stderr bytes.Buffer
	Cmd.SetOut(&stdout)
	Cmd.SetErr(&stderr)
	Cmd.SetArgs(args)
	err := Cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestReportText(t *testing.T) {
	out, _, err := run(t, "--title", "Weekly", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "==== REPORT ====\nTitle: Weekly\n----\n- a\n- b\n----\n==== END ====\n", out)
}

func TestReportMarkdownSkipsEmptyFragments(t *testing.T) {
	out, _, err := run(t, "--format", "markdown", "--title", "Weekly", "a")
	require.NoError(t, err)
	assert.Equal(t, "# Weekly\n- a\n", out)
}

func TestReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weekly.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Weekly\nlines:\n  - a\n"), 0o644))

	out, _, err := run(t, "--file", path, "b")
	require.NoError(t, err)
	assert.Contains(t, out, "Title: Weekly\n")
	assert.Contains(t, out, "- a\n- b\n")

	out, _, err = run(t, "--file", path, "--title", "Monthly")
	require.NoError(t, err)
	assert.Contains(t, out, "Title: Monthly\n")
}

func TestReportErrors(t *testing.T) {
	_, _, err := run(t, "--format", "pdf")
	assert.Error(t, err)

	_, _, err = run(t, "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestReportMetrics(t *testing.T) {
	cli.ShowMetrics = true
	defer func() { cli.ShowMetrics = false }()

	_, stderr, err := run(t, "--title", "Weekly", "a", "b")
	require.NoError(t, err)
	assert.Contains(t, stderr, `behavior_template_steps_total{outcome="ok",skeleton="report",step="line",variant="text"} 2`)
}
