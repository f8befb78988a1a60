package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdspan/internal/cli"
	"github.com/yaklabco/mdspan/internal/configloader"
	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/fsutil"
	"github.com/yaklabco/mdspan/pkg/runner"
)

var testInfo = cli.BuildInfo{
	Version: "test-version",
	Commit:  "test-commit",
	Date:    "test-date",
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "mdspan", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"annotate", "tree", "classes", "mcp", "init", "config", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing global flag --%s", name)
	}
	assert.Equal(t, "auto", cmd.PersistentFlags().Lookup("color").DefValue)
}

func TestAnnotateCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	annotateCmd, _, err := cmd.Find([]string{"annotate"})
	require.NoError(t, err)

	flags := []string{
		"mode", "range", "lines", "format", "flavor", "tree", "write",
		"no-backups", "follow-symlinks", "jobs", "ignore", "no-spans", "compact",
	}
	for _, name := range flags {
		assert.NotNil(t, annotateCmd.Flags().Lookup(name), "missing flag --%s", name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "test-version")
	assert.Contains(t, out.String(), "test-commit")
	assert.Contains(t, out.String(), "test-date")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	cmd.SetArgs([]string{"annotate", "--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())

	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "mdspan annotate [paths...]")
	assert.Contains(t, help, "--lines")
	assert.Contains(t, help, "Global Flags:")
	assert.Contains(t, help, "# Only lines 10 through 40")
	assert.NotContains(t, help, "delimiters", "emphasis delimiters are never hidden")
}

func TestHelpFormatter_FormatLong(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	formatter := cli.NewHelpFormatter("never", &buf)

	text := "Intro line.   \n\n  mdspan tree doc.md   # Print the tree\n  cat a.md | mdspan tree\n\n"
	assert.Equal(t,
		"Intro line.\n\n  mdspan tree doc.md   # Print the tree\n  cat a.md | mdspan tree",
		formatter.FormatLong(text))
}

type fakeFlagSet string

func (f fakeFlagSet) FlagUsages() string { return string(f) }

func TestHelpFormatter_FormatFlags(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	formatter := cli.NewHelpFormatter("never", &buf)

	usages := fakeFlagSet("  -f, --force           Overwrite existing file\n      --format string   Output format\n")
	assert.Equal(t,
		"  -f, --force   Overwrite existing file\n      --format string   Output format",
		formatter.FormatFlags(usages))

	assert.Empty(t, formatter.FormatFlags(fakeFlagSet("")))
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"annotation failed", cli.ErrAnnotationFailed, cli.ExitAnnotationFailed},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrInvalidUsage), cli.ExitInvalidUsage},
		{"config", errors.Join(errors.New("load"), &configloader.ValidationError{Field: "mode"}), cli.ExitConfigError},
		{"not found", fmt.Errorf("read: %w", fsutil.ErrNotFound), cli.ExitIOError},
		{"permission", runner.ErrPermissionDenied, cli.ExitIOError},
		{"out of order", fmt.Errorf("doc.md: %w", annotate.ErrOutOfOrder), cli.ExitInternalError},
		{"other", errors.New("boom"), cli.ExitAnnotationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(runner.NewResult()))
	assert.Equal(t, cli.ExitAnnotationFailed,
		cli.ExitCodeFromResult(runner.NewResult(runner.FileOutcome{Path: "a.md", Error: runner.ErrParseFailure})))
}

func TestRootHelpListsEnvironment(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	cmd.SetArgs([]string{"--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "MDSPAN_FLAVOR")
	assert.Contains(t, out.String(), "MDSPAN_NO_BACKUPS")
	assert.Contains(t, out.String(), "Commands:")
}
