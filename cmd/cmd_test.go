package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wines := filepath.Join(dir, "wines.json")
	require.NoError(t, os.WriteFile(wines, []byte(`[
  {"id":"w1","bottle":"Barolo","quantity":3,"style":"Red"},
  {"id":"w2","bottle":"Sancerre","quantity":1,"style":"White","status":"consumed","consumedDate":"2024-02-14"}
]`), 0o600))
	logs := filepath.Join(dir, "logs")
	require.NoError(t, os.MkdirAll(logs, 0o700))

	conf := "catalog:\n  source: " + wines + "\n" +
		"webServer:\n  host: 127.0.0.1\n  port: 8080\n" +
		"persistence:\n  filePath: " + filepath.Join(dir, "state", "cellar.json") + "\n" +
		"logger:\n  dir: " + logs + "\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(conf), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		resetConfirmed = false
		exportOutput = ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestReset_RequiresConfirmation(t *testing.T) {
	_, err := run(t, "reset", "-c", writeTestConfig(t))
	assert.ErrorContains(t, err, "--yes")
}

func TestVerify_SeedsAndReportsConsistent(t *testing.T) {
	out, err := run(t, "verify", "-c", writeTestConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "ledger consistent: 1 logs, 3 bottles remaining")
}

func TestExport_WritesFile(t *testing.T) {
	config := writeTestConfig(t)
	target := filepath.Join(t.TempDir(), "export.json")

	_, err := run(t, "export", "-c", config, "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"migrated": true`)
	assert.Contains(t, string(data), `"w2"`)
}

func TestReset_WithConfirmation(t *testing.T) {
	out, err := run(t, "reset", "--yes", "-c", writeTestConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "1 consumption logs seeded")
}
