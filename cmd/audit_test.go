package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/contentquality/analyzer"
)

const document = `<!DOCTYPE html>
<html><head><title>Growing tomatoes</title>
<meta name="description" content="Tomatoes need sun and water"></head>
<body><article><h1>Growing tomatoes</h1><h2>Sun</h2>
<p>Tomatoes love sun. Plant tomatoes where the sun shines all day.</p>
<h2>Water</h2><p>Water tomatoes deeply twice a week.</p></article></body></html>`

// runCommand executes the root command in an empty working directory
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
	})

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--data-dir", dir))

	err = root.Execute()
	return out.String(), err
}

func writeDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(document), 0644))
	return path
}

func TestAuditJSON(t *testing.T) {
	path := writeDocument(t)

	output, err := runCommand(t, "", "audit", path, "--format", "json", "--url", "https://example.com/tomatoes")
	require.NoError(t, err)

	var report analyzer.Report
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.Equal(t, "https://example.com/tomatoes", report.URL)
	assert.Len(t, report.Audits, 5)

	heading, ok := report.Audit(analyzer.HeadingCheckID)
	require.True(t, ok)
	assert.Equal(t, 1.0, *heading.Score)
}

func TestAuditStdin(t *testing.T) {
	output, err := runCommand(t, document, "audit", "-", "--format", "markdown", "--title", "Custom title")
	require.NoError(t, err)

	assert.Contains(t, output, "# Content Quality Report")
	assert.Contains(t, output, "## Content Structure")
}

func TestAuditConsoleIsDefault(t *testing.T) {
	output, err := runCommand(t, document, "audit")
	require.NoError(t, err)
	assert.Contains(t, output, "Content Quality")
	assert.Contains(t, output, "Recommendations")
}

func TestAuditErrors(t *testing.T) {
	_, err := runCommand(t, "", "audit", filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)

	_, err = runCommand(t, "   ", "audit")
	assert.Error(t, err)

	_, err = runCommand(t, document, "audit", "--format", "pdf")
	assert.Error(t, err)
}

func TestBindFlags(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	root := NewRootCommand()
	require.NoError(t, root.PersistentFlags().Set("log-level", "debug"))
	require.NoError(t, bindFlags(root.PersistentFlags()))

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.False(t, viper.IsSet("devMode"), "unchanged flags are not bound")
}
