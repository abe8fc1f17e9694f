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

const bookDocument = `{
  "_links": {
    "self": { "href": "/books/the-way-of-zen" },
    "author": { "href": "/people/alan-watts" },
    "find": { "href": "/books{?q}", "templated": true },
    "ea:admin": [
      { "href": "/admins/2", "name": "fred" },
      { "href": "/admins/5", "name": "kate", "deprecation": "https://example.com/admins" }
    ]
  },
  "_embedded": {
    "author": { "name": "Alan Watts", "born": 1915 }
  }
}`

// setUp writes the book document and a config file, returning their paths.
func setUp(t *testing.T, config string) (string, string) {
	t.Helper()
	dir := t.TempDir()

	doc := filepath.Join(dir, "book.json")
	require.NoError(t, os.WriteFile(doc, []byte(bookDocument), 0o600))

	cfg := filepath.Join(dir, "halq.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(config), 0o600))

	return doc, cfg
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLinks(t *testing.T) {
	doc, cfg := setUp(t, "")

	out, _, err := run(t, "", "--config", cfg, "links", doc)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Regexp(t, `^self\s+singular\s+/books/the-way-of-zen$`, lines[0])
	assert.Regexp(t, `^find\s+singular\s+/books\{\?q\} \(templated\)$`, lines[2])
	assert.Regexp(t, `^ea:admin\s+plural\s+/admins/5$`, lines[4])
}

func TestLinksFromStdinAsJSON(t *testing.T) {
	_, cfg := setUp(t, "")

	out, _, err := run(t, bookDocument, "--config", cfg, "links", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"self": {`)
	assert.Contains(t, out, `"ea:admin": [`)
}

func TestSelfUsesConfiguredBaseURL(t *testing.T) {
	doc, cfg := setUp(t, "base_url: https://books.example.com/api/\n")

	out, _, err := run(t, "", "--config", cfg, "self", doc)
	require.NoError(t, err)
	assert.Equal(t, "https://books.example.com/books/the-way-of-zen\n", out)

	out, _, err = run(t, "", "--config", cfg, "--base-url", "http://localhost:8080", "self", doc)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/books/the-way-of-zen\n", out)
}

func TestSelfWithoutBaseURL(t *testing.T) {
	doc, cfg := setUp(t, "")

	out, _, err := run(t, "", "--config", cfg, "self", doc)
	require.NoError(t, err)
	assert.Equal(t, "/books/the-way-of-zen\n", out)
}

func TestResolve(t *testing.T) {
	doc, cfg := setUp(t, "")

	out, _, err := run(t, "", "--config", cfg, "resolve", "find", doc, "-p", "q=zen")
	require.NoError(t, err)
	assert.Equal(t, "/books?q=zen\n", out)

	out, _, err = run(t, "", "--config", cfg, "resolve", "ea:admin", doc, "--name", "fred")
	require.NoError(t, err)
	assert.Equal(t, "/admins/2\n", out)

	_, _, err = run(t, "", "--config", cfg, "resolve", "ea:admin", doc)
	assert.ErrorContains(t, err, "unexpected array")

	_, _, err = run(t, "", "--config", cfg, "resolve", "ea:admin", doc, "--index", "7")
	assert.ErrorContains(t, err, "no index 7")

	_, _, err = run(t, "", "--config", cfg, "resolve", "missing", doc)
	assert.ErrorContains(t, err, "missing")

	_, _, err = run(t, "", "--config", cfg, "resolve", "find", doc, "-p", "novalue")
	assert.ErrorContains(t, err, "expected name=value")
}

func TestResolveDeprecatedLinkLogsWarning(t *testing.T) {
	doc, cfg := setUp(t, "log_level: info\n")

	out, stderr, err := run(t, "", "--config", cfg, "resolve", "ea:admin", doc, "--index", "1")
	require.NoError(t, err)
	assert.Equal(t, "/admins/5\n", out)
	assert.Contains(t, stderr, "following deprecated link")
	assert.Contains(t, stderr, "deprecation=\"https://example.com/admins\"")
}

func TestEmbedded(t *testing.T) {
	doc, cfg := setUp(t, "")

	out, _, err := run(t, "", "--config", cfg, "embedded", "author", doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alan Watts","born":1915}`, out)

	out, _, err = run(t, "", "--config", cfg, "embedded", "--list", doc)
	require.NoError(t, err)
	assert.Equal(t, "author\n", out)

	_, _, err = run(t, "", "--config", cfg, "embedded", "editor", doc)
	assert.ErrorContains(t, err, "editor")
}

func TestMissingExplicitConfigFails(t *testing.T) {
	doc, _ := setUp(t, "")

	_, _, err := run(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "self", doc)
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	doc, cfg := setUp(t, "log_level: chatty\n")

	_, _, err := run(t, "", "--config", cfg, "self", doc)
	assert.ErrorContains(t, err, "invalid log level")
}
