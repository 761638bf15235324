package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeShape(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shape.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const shape = `
fields:
  - {name: name, kind: string, example: harry}
  - name: tags
    kind: eachLike
    fields: [{name: tag, kind: string, example: x}]
`

func TestBuild_JSONDocument(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"build", "-f", writeShape(t, shape)}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	for _, want := range []string{`"body"`, `"matchingRules"`, `"$.tags[*].tag"`, `"harry"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %s:\n%s", want, out.String())
		}
	}
}

func TestBuild_YAMLBody(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"build", "-f", writeShape(t, shape), "-format", "yaml", "-body"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	want := "name: harry\ntags:\n    - tag: x\n"
	if out.String() != want {
		t.Fatalf("yaml = %q, want %q", out.String(), want)
	}
}

func TestBuild_FormatFromEnv(t *testing.T) {
	t.Setenv("PACTDSL_FORMAT", "yaml")
	var out, errOut bytes.Buffer
	if code := run([]string{"build", "-f", writeShape(t, shape)}, &out, &errOut); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	if !strings.HasPrefix(out.String(), "body:\n") {
		t.Fatalf("expected yaml document, got:\n%s", out.String())
	}
}

func TestBuild_BadEnvironment(t *testing.T) {
	t.Setenv("PACTDSL_VERBOSE", "banana")
	var out, errOut bytes.Buffer
	if code := run([]string{"build", "-f", writeShape(t, shape)}, &out, &errOut); code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
	if !strings.Contains(errOut.String(), "environment:") {
		t.Fatalf("stderr = %s", errOut.String())
	}
	if out.Len() != 0 {
		t.Fatalf("stdout not empty: %s", out.String())
	}
}

func TestBuild_ReportsIssues(t *testing.T) {
	src := "fields:\n  - {name: code, kind: regex, regex: \"[0-9]+\", example: abc}\n"
	var out, errOut bytes.Buffer
	code := run([]string{"build", "-f", writeShape(t, src), "-lang", "en"}, &out, &errOut)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "$.code: invalid_example:") {
		t.Fatalf("stderr = %s", errOut.String())
	}
	if out.Len() != 0 {
		t.Fatalf("stdout not empty: %s", out.String())
	}
}

func TestRun_Usage(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(nil, &out, &errOut); code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
	if code := run([]string{"build"}, &out, &errOut); code != 2 {
		t.Fatalf("missing -f: exit %d, want 2", code)
	}
	if !strings.Contains(errOut.String(), "Usage") {
		t.Fatalf("usage not printed: %s", errOut.String())
	}
}
