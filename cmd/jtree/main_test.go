package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const htmlGrammar = `@grammar html
 @keywords tag text
 @compiler html
@keyword tag
 @columns any
 @keywords tag text
 @compiler html
  @sub <{any}>
  @closeChildren </>
@keyword text
 @columns any*
 @compiler html
  @sub {any*}
`

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o666))
	return path
}

func runArgs(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	g := writeFile(t, dir, "html.grammar", htmlGrammar)
	valid := writeFile(t, dir, "valid.html", "tag div\n text hello\n")
	invalid := writeFile(t, dir, "invalid.html", "tag div\n bogus\n")

	code, stdout, _ := runArgs("-g", g, "check", valid)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, valid+": ok\n", stdout)

	code, stdout, stderr := runArgs("-g", g, "check", invalid)
	assert.Equal(t, exitInvalid, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `invalid keyword "bogus"`)
	assert.Contains(t, stderr, "at line 2")
}

func TestCompile(t *testing.T) {
	dir := t.TempDir()
	g := writeFile(t, dir, "html.grammar", htmlGrammar)
	doc := writeFile(t, dir, "page.html", "tag div\n text hello world\n")

	code, stdout, _ := runArgs("-g", g, "compile", doc)
	require.Equal(t, exitOK, code)
	assert.Equal(t, "<div>\n hello world\n</>\n", stdout)

	out := filepath.Join(dir, "page.out")
	code, stdout, _ = runArgs("-g", g, "-o", out, "compile", doc)
	require.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
	content, e := os.ReadFile(out)
	require.NoError(t, e)
	assert.Equal(t, "<div>\n hello world\n</>\n", string(content))

	code, _, stderr := runArgs("-g", g, "-t", "txt", "compile", doc)
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stderr, "txt")
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	g := writeFile(t, dir, "html.grammar", htmlGrammar)
	doc := writeFile(t, dir, "page.html", "tag p")
	cfg := writeFile(t, dir, "jtree.hcl", fmt.Sprintf("grammar = %q\ntarget = \"txt\"\nlog_level = \"error\"\n", g))

	code, _, _ := runArgs("-c", cfg, "compile", doc)
	assert.Equal(t, exitInvalid, code)

	code, stdout, _ := runArgs("-c", cfg, "-t", "html", "compile", doc)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "<p>\n\n</>\n", stdout)

	bad := writeFile(t, dir, "bad.hcl", "grammar = \n")
	code, _, _ = runArgs("-c", bad, "compile", doc)
	assert.Equal(t, exitUsage, code)

	unknown := writeFile(t, dir, "unknown.hcl", "workers = 3\n")
	code, _, _ = runArgs("-c", unknown, "compile", doc)
	assert.Equal(t, exitUsage, code)
}

func TestConfigOverride(t *testing.T) {
	c := config{Grammar: "a.grammar", Target: "js", LogLevel: "info"}
	flags := config{Grammar: "b.grammar", Target: "", Output: "out.js"}
	res := c.override(flags, map[string]bool{"g": true, "o": true})
	assert.Equal(t, config{Grammar: "b.grammar", Target: "js", Output: "out.js", LogLevel: "info"}, res)
}

func TestInvalidArguments(t *testing.T) {
	dir := t.TempDir()
	g := writeFile(t, dir, "html.grammar", htmlGrammar)
	doc := writeFile(t, dir, "page.html", "tag p")

	samples := [][]string{
		{},
		{"bogus", doc},
		{"check"},
		{"check", doc},
		{"-g", g, "check", doc, doc},
		{"-g", g, "-log-level", "loud", "check", doc},
		{"-unknown-flag", "check", doc},
	}
	for _, s := range samples {
		code, _, _ := runArgs(s...)
		assert.Equal(t, exitUsage, code, "%v", s)
	}

	code, _, _ := runArgs("-g", filepath.Join(dir, "missing.grammar"), "check", doc)
	assert.Equal(t, exitFailure, code)
	code, _, _ = runArgs("-g", g, "check", filepath.Join(dir, "missing.html"))
	assert.Equal(t, exitFailure, code)

	broken := writeFile(t, dir, "broken.grammar", "@bogus")
	code, _, stderr := runArgs("-g", broken, "check", doc)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "@bogus")
}

func TestVerboseLogging(t *testing.T) {
	dir := t.TempDir()
	g := writeFile(t, dir, "html.grammar", htmlGrammar)
	doc := writeFile(t, dir, "page.html", "tag p")

	code, _, stderr := runArgs("-v", "-g", g, "check", doc)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "grammar loaded")

	code, _, stderr = runArgs("-g", g, "check", doc)
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stderr)
}

func TestDocumentViews(t *testing.T) {
	dir := t.TempDir()
	g := writeFile(t, dir, "html.grammar", htmlGrammar)
	doc := writeFile(t, dir, "page.html", "tag div\n text hello world\n")

	code, stdout, _ := runArgs("-g", g, "syntax", doc)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "keyword any\n keyword any* any*\n", stdout)

	code, stdout, _ = runArgs("-g", g, "types", doc)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "NonTerminalNode keyword any\nTerminalNode  keyword any* any*\n", stdout)

	code, stdout, _ = runArgs("-g", g, "usage", doc)
	assert.Equal(t, exitOK, code)
	expected := "tag line-id keyword any\n " + doc + "-0 tag div\ntext line-id keyword any*\n " + doc + "-1 text hello world\n"
	assert.Equal(t, expected, stdout)
}

func TestConversions(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.tree", "b 1\na\n c 2\nn\n")

	samples := []struct {
		command, expected string
	}{
		{"json", "{\n \"b\": \"1\",\n \"a\": {\n  \"c\": \"2\"\n },\n \"n\": null\n}\n"},
		{"outline", "├b 1\n├a\n│└c 2\n└n\n"},
	}
	for _, s := range samples {
		code, stdout, _ := runArgs(s.command, doc)
		assert.Equal(t, exitOK, code, s.command)
		assert.Equal(t, s.expected, stdout, s.command)
	}

	js := writeFile(t, dir, "doc.json", `{"b": 1, "a": {"c": 2}}`)
	code, stdout, _ := runArgs("fromjson", js)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "b 1\na\n c 2\n", stdout)

	plain := writeFile(t, dir, "plain.tree", "b 1\na\n c hi\n")
	code, stdout, _ = runArgs("yaml", plain)
	require.Equal(t, exitOK, code)
	ym := writeFile(t, dir, "doc.yaml", stdout)
	code, stdout, _ = runArgs("fromyaml", ym)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "b 1\na\n c hi\n", stdout)

	code, _, _ = runArgs("fromjson", doc)
	assert.Equal(t, exitInvalid, code)
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "condensed.grammar", "@keyword base\n @columns int\n@keyword child base\n @keywords foo\n")

	code, stdout, _ := runArgs("expand", doc)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "@keyword base\n @columns int\n@keyword child base\n @columns int\n @keywords foo\n", stdout)

	broken := writeFile(t, dir, "broken.grammar", "@keyword a b")
	code, _, _ = runArgs("expand", broken)
	assert.Equal(t, exitInvalid, code)
}

func TestCondensedGrammar(t *testing.T) {
	dir := t.TempDir()
	g := writeFile(t, dir, "condensed.grammar", "@keyword base\n @columns int\n@keyword child base\n")
	doc := writeFile(t, dir, "doc.txt", "child 1\nbase 2\n")
	bad := writeFile(t, dir, "bad.txt", "child\n")

	code, _, _ := runArgs("-g", g, "-condensed", "check", doc)
	assert.Equal(t, exitOK, code)
	code, _, _ = runArgs("-g", g, "-condensed", "check", bad)
	assert.Equal(t, exitInvalid, code)
	code, _, _ = runArgs("-g", g, "check", bad)
	assert.Equal(t, exitOK, code)
}
