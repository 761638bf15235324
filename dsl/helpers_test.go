package dsl_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	pactdsl "github.com/reoring/pactdsl"
	"github.com/reoring/pactdsl/dsl"
	"github.com/reoring/pactdsl/matchers"
)

var clock = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func quiet() dsl.Option {
	return dsl.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func fixedClock() dsl.Option { return dsl.WithClock(func() time.Time { return clock }) }

func bodyJSON(t *testing.T, doc *pactdsl.Document) string {
	t.Helper()
	b, err := doc.BodyJSON()
	if err != nil {
		t.Fatalf("body json: %v", err)
	}
	return string(b)
}

// rulesOf renders each rule row as path=rule, joining AND groups with & and
// OR groups with |.
func rulesOf(c *matchers.Category) []string {
	var out []string
	for _, e := range c.Entries() {
		parts := make([]string, 0, len(e.Group.Rules))
		for _, r := range e.Group.Rules {
			parts = append(parts, matchers.Describe(r))
		}
		sep := "&"
		if e.Group.Logic == matchers.Or {
			sep = "|"
		}
		out = append(out, e.Path+"="+strings.Join(parts, sep))
	}
	return out
}

func assertStrings(t *testing.T, what string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got=%q want=%q", what, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%s[%d]: got=%q want=%q (all: %q)", what, i, got[i], want[i], got)
		}
	}
}

func mustIssue(t *testing.T, err error, code string) pactdsl.Issues {
	t.Helper()
	iss, ok := pactdsl.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	if !iss.HasCode(code) {
		t.Fatalf("expected code %s in %v", code, iss)
	}
	return iss
}
