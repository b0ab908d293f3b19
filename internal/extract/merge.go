package extract

// Issue is a tagged comment, or a tagged line comment together with the
// untagged line comments directly below it. Lines are zero-based and
// inclusive.
type Issue struct {
	Kind      Kind
	Text      string
	LineBegin int
	LineEnd   int
	File      string
}

// IssueList holds the issues found in one file. Every Issue.Text is a
// substring of text.
type IssueList struct {
	File   string
	Issues []Issue

	text string
}

// Len returns the number of issues.
func (l *IssueList) Len() int {
	return len(l.Issues)
}

// span locates an issue's text in the merge buffer.
type span struct {
	off, n int
}

// Merge turns scanned comments into issues for file.
func Merge(comments []Comment, file string) *IssueList {
	buf := make([]byte, 0, len(comments)*20)
	issues := make([]Issue, 0, len(comments))
	spans := make([]span, 0, len(comments))

	for i := 0; i < len(comments); i++ {
		c := comments[i]

		kind, ok := Classify(c.Text)
		if !ok {
			continue
		}

		off := len(buf)
		buf = append(buf, c.Text...)
		issue := Issue{
			Kind:      kind,
			LineBegin: c.Line,
			LineEnd:   c.Line,
			File:      file,
		}

		switch c.Kind {
		case BlockComment:
			for _, b := range c.Text {
				if b == '\n' {
					issue.LineEnd++
				}
			}

		case LineComment:
			for i+1 < len(comments) {
				next := comments[i+1]
				if next.Kind != LineComment || next.Line != issue.LineEnd+1 {
					break
				}
				if _, tagged := Classify(next.Text); tagged {
					break
				}
				buf = append(buf, '\n')
				buf = append(buf, next.Text...)
				issue.LineEnd = next.Line
				i++
			}
		}

		n := len(trimRightSpaceBytes(buf[off:]))
		// drop trailing blank continuation lines
		buf = buf[:off+n]

		issues = append(issues, issue)
		spans = append(spans, span{off: off, n: n})
	}

	text := string(buf)
	for i, sp := range spans {
		issues[i].Text = text[sp.off : sp.off+sp.n]
	}

	return &IssueList{
		File:   file,
		Issues: issues,
		text:   text,
	}
}

// Extract scans input and returns the issues it contains.
func Extract(input, file string) *IssueList {
	return Merge(Scan(input), file)
}
