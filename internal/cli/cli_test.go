package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mergeExpected = `{"operations":[{"linesMerge":{
	"cartLines":[
		{"cartLineId":"gid://shopify/CartLine/1","quantity":1},
		{"cartLineId":"gid://shopify/CartLine/2","quantity":3}],
	"parentVariantId":"gid://shopify/ProductVariant/10",
	"title":"Starter Kit",
	"price":{"percentageDecrease":{"value":"10"}},
	"image":null,
	"attributes":[]}}]}`

// execute runs the root command in a temp directory so no config.yaml or .env
// from the working tree leaks into the test.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	chdir(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("testdata", name))
	require.NoError(t, err)
	return path
}

func TestRunCommand(t *testing.T) {
	t.Run("merge from file writes operations to stdout", func(t *testing.T) {
		path := testdataPath(t, "merge_cart.json")

		stdout, _, err := execute(t, "", "run", "merge", "--input", path)

		require.NoError(t, err)
		assert.JSONEq(t, mergeExpected, stdout)
	})

	t.Run("reads the cart from stdin", func(t *testing.T) {
		data, err := os.ReadFile(testdataPath(t, "merge_cart.json"))
		require.NoError(t, err)

		stdout, _, err := execute(t, string(data), "run", "expand")

		require.NoError(t, err)
		assert.JSONEq(t, `{"operations":[]}`, stdout)
	})

	t.Run("writes to the output file", func(t *testing.T) {
		path := testdataPath(t, "merge_cart.json")
		out := filepath.Join(t.TempDir(), "result.json")

		stdout, _, err := execute(t, "", "run", "merge", "-i", path, "-o", out, "--pretty")

		require.NoError(t, err)
		assert.Empty(t, stdout)

		written, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.JSONEq(t, mergeExpected, string(written))
		assert.Contains(t, string(written), "\n  \"operations\"")
	})

	t.Run("verbose prints a summary to stderr", func(t *testing.T) {
		path := testdataPath(t, "merge_cart.json")

		_, stderr, err := execute(t, "", "run", "merge", "--input", path, "--verbose")

		require.NoError(t, err)
		assert.Contains(t, stderr, "merge: linesMerge=1")
	})

	t.Run("unknown transform fails", func(t *testing.T) {
		_, _, err := execute(t, "{}", "run", "discount")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "discount")
	})

	t.Run("malformed cart fails", func(t *testing.T) {
		_, _, err := execute(t, `{"cart":`, "run", "merge")

		require.Error(t, err)
	})

	t.Run("missing config file fails", func(t *testing.T) {
		_, _, err := execute(t, "{}", "run", "merge", "--config", "does-not-exist.yaml")

		require.Error(t, err)
	})
}

func TestRunCommand_MalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0644))

	var stdout bytes.Buffer
	chdir(t, dir)
	root := NewRootCommand()
	root.SetIn(strings.NewReader("{}"))
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run", "merge"})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
	assert.Empty(t, stdout.String())
}

func TestRunCommand_DisabledTransform(t *testing.T) {
	t.Setenv("MERGE_ENABLED", "false")

	_, _, err := execute(t, "{}", "run", "merge")

	require.Error(t, err)
}

func TestListCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "list")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "expand"))
	assert.True(t, strings.HasPrefix(lines[2], "merge"))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
