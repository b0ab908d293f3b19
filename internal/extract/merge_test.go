package extract

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractMergesContiguousLines(t *testing.T) {
	input := "package x\n" +
		"// FIXME: a\n" +
		"// continued\n" +
		"// more\n" +
		"\n" +
		"// orphan\n"

	list := Extract(input, "x.go")
	if list.Len() != 1 {
		t.Fatalf("expected 1 issue, got %d: %+v", list.Len(), list.Issues)
	}

	got := list.Issues[0]
	want := Issue{Kind: FIXME, Text: "FIXME: a\ncontinued\nmore", LineBegin: 1, LineEnd: 3, File: "x.go"}
	if got != want {
		t.Errorf("issue = %+v, want %+v", got, want)
	}
}

func TestExtractRetagStartsNewIssue(t *testing.T) {
	list := Extract("// FIXME: a\n// TODO: b\n", "x.go")
	want := []Issue{
		{Kind: FIXME, Text: "FIXME: a", LineBegin: 0, LineEnd: 0, File: "x.go"},
		{Kind: TODO, Text: "TODO: b", LineBegin: 1, LineEnd: 1, File: "x.go"},
	}
	if !reflect.DeepEqual(list.Issues, want) {
		t.Errorf("issues = %+v, want %+v", list.Issues, want)
	}
}

func TestExtractBlockNeverMerges(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Issue
	}{
		{
			name:  "block then line",
			input: "/* TODO: block */\n// trailing\n",
			want:  Issue{Kind: TODO, Text: "TODO: block", LineBegin: 0, LineEnd: 0, File: "f"},
		},
		{
			name:  "line then block",
			input: "// TODO: line\n/* more */\n",
			want:  Issue{Kind: TODO, Text: "TODO: line", LineBegin: 0, LineEnd: 0, File: "f"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := Extract(tt.input, "f")
			if list.Len() != 1 {
				t.Fatalf("expected 1 issue, got %+v", list.Issues)
			}
			if list.Issues[0] != tt.want {
				t.Errorf("issue = %+v, want %+v", list.Issues[0], tt.want)
			}
		})
	}
}

func TestExtractBlockLineCount(t *testing.T) {
	input := strings.Repeat("\n", 10) + "/* TODO: x\ny\nz */\n"

	list := Extract(input, "f")
	if list.Len() != 1 {
		t.Fatalf("expected 1 issue, got %+v", list.Issues)
	}
	got := list.Issues[0]
	if got.LineBegin != 10 || got.LineEnd != 12 {
		t.Errorf("lines = %d-%d, want 10-12", got.LineBegin, got.LineEnd)
	}
	if got.Text != "TODO: x\ny\nz" {
		t.Errorf("Text = %q", got.Text)
	}
}

func TestExtractBlankContinuations(t *testing.T) {
	list := Extract("// TODO: a\n//\n// b\n//\n", "f")
	if list.Len() != 1 {
		t.Fatalf("expected 1 issue, got %+v", list.Issues)
	}
	got := list.Issues[0]
	if got.Text != "TODO: a\n\nb" {
		t.Errorf("Text = %q, want %q", got.Text, "TODO: a\n\nb")
	}
	if got.LineEnd != 3 {
		t.Errorf("LineEnd = %d, want 3", got.LineEnd)
	}
}

func TestExtractTextsDoNotOverlap(t *testing.T) {
	list := Extract("// TODO: one\n//\n// FIXME: two\nx\n/* TODO: three */", "f")
	want := []string{"TODO: one", "FIXME: two", "TODO: three"}
	if list.Len() != len(want) {
		t.Fatalf("expected %d issues, got %+v", len(want), list.Issues)
	}
	for i, w := range want {
		if list.Issues[i].Text != w {
			t.Errorf("issue %d Text = %q, want %q", i, list.Issues[i].Text, w)
		}
	}
}

func TestExtractCodeOnEachLine(t *testing.T) {
	list := Extract("x := 1 // TODO: a\ny := 2 // b\n", "f")
	if list.Len() != 1 {
		t.Fatalf("expected 1 issue, got %+v", list.Issues)
	}
	if list.Issues[0].Text != "TODO: a\nb" || list.Issues[0].LineEnd != 1 {
		t.Errorf("issue = %+v", list.Issues[0])
	}
}

func TestExtractUntaggedSkipped(t *testing.T) {
	list := Extract("// just a note\n/* and a block */\n", "f")
	if list.Len() != 0 {
		t.Errorf("expected no issues, got %+v", list.Issues)
	}
	if list.File != "f" {
		t.Errorf("File = %q, want %q", list.File, "f")
	}
}

func TestExtractIdempotent(t *testing.T) {
	input := "// FIXME: a\n// b\n/* TODO: c\nd */\n// TODO: e\n"
	first := Extract(input, "f")
	second := Extract(input, "f")
	if !reflect.DeepEqual(first.Issues, second.Issues) {
		t.Errorf("runs differ:\n%+v\n%+v", first.Issues, second.Issues)
	}
}

func TestExtractTextNormalized(t *testing.T) {
	inputs := []string{
		"// FIXME: a\n// b   \n",
		"/*   TODO: spaced   */",
		"/*\nTODO: multi\nline\n*/\n",
		"\t//\tTODO: tabs\t\n",
		"//// TODO: slashes\n",
	}
	for _, input := range inputs {
		for _, issue := range Extract(input, "f").Issues {
			for _, d := range []string{"//", "/*", "*/", " ", "\t", "\n"} {
				if strings.HasPrefix(issue.Text, d) || strings.HasSuffix(issue.Text, d) {
					t.Errorf("Extract(%q) text %q has %q at an edge", input, issue.Text, d)
				}
			}
		}
	}
}

func TestExtractEdgesOfInput(t *testing.T) {
	if list := Extract("x\n// TODO: no newline at end", "f"); list.Len() != 0 {
		t.Errorf("unterminated line comment produced %+v", list.Issues)
	}

	list := Extract("//// TODO: quad\n", "f")
	if list.Len() != 1 {
		t.Fatalf("got %d issues, want 1", list.Len())
	}
	if got := list.Issues[0]; got.Kind != TODO || got.Text != "TODO: quad" {
		t.Errorf("issue = %+v, want TODO %q", got, "TODO: quad")
	}
}
