package dsl

import (
	"log/slog"
	"strings"
	"time"

	pactdsl "github.com/reoring/pactdsl"
	"github.com/reoring/pactdsl/internal/pathexp"
)

// Option configures a build. Options are given to the root constructor and
// shared by every node of the tree.
type Option func(*build)

// WithLogger sets the logger for close and issue events. Defaults to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *build) {
		if l != nil {
			b.log = l
		}
	}
}

// WithClock sets the clock used for date and time examples.
func WithClock(now func() time.Time) Option {
	return func(b *build) {
		if now != nil {
			b.now = now
		}
	}
}

// build is the state shared by all nodes of one tree.
type build struct {
	issues pactdsl.Issues
	log    *slog.Logger
	now    func() time.Time
}

func newBuild(opts []Option) *build {
	b := &build{log: slog.Default(), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *build) record(iss pactdsl.Issue) {
	b.issues = pactdsl.AppendIssues(b.issues, iss)
	b.logIssue(iss)
}

func (b *build) logIssue(iss pactdsl.Issue) {
	b.log.Warn("dsl.issue", "path", iss.Path, "code", iss.Code, "op", iss.Op, "message", iss.Message)
}

// adopt copies issues recorded by another build, e.g. a RootValue spliced
// into this tree. Root-relative paths are rebased under at.
func (b *build) adopt(other *build, at string) {
	if other == nil || other == b {
		return
	}
	for _, iss := range other.issues {
		if strings.HasPrefix(iss.Path, pathexp.Root) {
			iss.Path = at + strings.TrimPrefix(iss.Path, pathexp.Root)
		}
		b.record(iss)
	}
}

func (b *build) err() error {
	if len(b.issues) == 0 {
		return nil
	}
	return append(pactdsl.Issues(nil), b.issues...)
}
