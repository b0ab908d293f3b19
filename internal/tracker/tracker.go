package tracker

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"miren.dev/fixme/internal/extract"
)

// NewIssue is an issue ready to be submitted to a tracker.
type NewIssue struct {
	Kind        extract.Kind
	Title       string
	Description string
	LabelID     string
}

// Created describes an issue the tracker accepted.
type Created struct {
	Identifier Identifier
	URL        string
}

// Backend is a remote issue tracker.
type Backend interface {
	// ResolveLabels maps each kind to the tracker's id for the named label.
	// With create set, missing labels are created instead of reported.
	ResolveLabels(ctx context.Context, names map[extract.Kind]string, create bool) (map[extract.Kind]string, error)
	CreateIssue(ctx context.Context, issue NewIssue) (*Created, error)
}

const maxTitleLen = 80

// Title returns the first line of the issue text, shortened to fit a
// tracker title.
func Title(issue extract.Issue) string {
	title, _, _ := strings.Cut(issue.Text, "\n")
	if utf8.RuneCountInString(title) <= maxTitleLen {
		return title
	}
	runes := []rune(title)
	return strings.TrimRight(string(runes[:maxTitleLen-1]), " \t") + "…"
}

// Description renders the issue as markdown with its source location.
func Description(issue extract.Issue) string {
	var b strings.Builder
	b.WriteString("```\n")
	b.WriteString(issue.Text)
	b.WriteString("\n```\n\n")
	fmt.Fprintf(&b, "`%s`", Location(issue))
	return b.String()
}

// Location formats the issue's file and 1-based line range.
func Location(issue extract.Issue) string {
	if issue.LineBegin == issue.LineEnd {
		return fmt.Sprintf("%s:%d", issue.File, issue.LineBegin+1)
	}
	return fmt.Sprintf("%s:%d-%d", issue.File, issue.LineBegin+1, issue.LineEnd+1)
}
