package commands

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func TestParseLogLevel(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	require.Equal(t, slog.LevelInfo, parseLogLevel(false))
	require.Equal(t, slog.LevelDebug, parseLogLevel(true))

	t.Setenv(LogLevelEnv, "WARN")
	require.Equal(t, slog.LevelWarn, parseLogLevel(true))

	t.Setenv(LogLevelEnv, "bogus")
	require.Equal(t, slog.LevelInfo, parseLogLevel(false))
}

func parseArgs(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestCLI_ParsesCommands(t *testing.T) {
	cli, ctx := parseArgs(t, "build", "-o", "out", "--continue-on-error")
	require.Equal(t, "build", ctx.Command())
	require.Equal(t, "out", cli.Build.Overrides.Output)
	require.True(t, cli.Build.Overrides.ContinueOnError)

	cli, ctx = parseArgs(t, "watch", "--metrics-addr", ":9102", "--clean")
	require.Equal(t, "watch", ctx.Command())
	require.Equal(t, ":9102", cli.Watch.MetricsAddr)
	require.True(t, cli.Watch.Overrides.Clean)

	cli, _ = parseArgs(t, "sort-topics", "--order", "b.md,a.md")
	require.Equal(t, []string{"b.md", "a.md"}, cli.SortTopics.Order)
	require.Empty(t, cli.SortTopics.Dir)
}

func TestPrintSortedTopics(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zebra.md", "# Zebra\n")
	writeFile(t, dir, "apple.md", "# Apple\n")
	writeFile(t, dir, "guides/setup.md", "# Setup\n")

	var out bytes.Buffer
	require.NoError(t, printSortedTopics(&out, dir, []string{"zebra"}))
	require.Equal(t, "1. Zebra (zebra.md)\n2. Apple (apple.md)\n3. Setup (guides/setup.md)\n", out.String())
}

func TestBuildCmd_RendersSite(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "model.yaml", "namespaces:\n  - name: Acme\n    types:\n      - name: Widget\n")
	configPath := filepath.Join(root, "docrender.yaml")
	writeFile(t, root, "docrender.yaml", "site:\n  title: Acme\nmodel: model.yaml\n")
	out := filepath.Join(root, "public")

	cmd := &BuildCmd{Overrides: Overrides{Output: out}}
	g := &Global{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	require.NoError(t, cmd.Run(g, &CLI{Config: configPath}))

	for _, rel := range []string{"index.html", "api/Acme/index.html", "api/Acme/Widget.html"} {
		_, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel)))
		require.NoError(t, err, rel)
	}
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	cmd := &InitCmd{Output: dir}
	require.NoError(t, cmd.Run(&Global{}, &CLI{}))
	_, err := os.Stat(filepath.Join(dir, "docrender.yaml"))
	require.NoError(t, err)
	require.Error(t, cmd.Run(&Global{}, &CLI{}))
}
