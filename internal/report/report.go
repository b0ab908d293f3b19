package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"miren.dev/fixme/internal/extract"
	"miren.dev/fixme/internal/tracker"
)

//go:embed templates/*.html
var templateFS embed.FS

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
	),
)

const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: tmpl}, nil
}

// issueRecord is the serialized form of an issue. Lines are 1-based.
type issueRecord struct {
	Kind       string   `json:"kind" yaml:"kind"`
	File       string   `json:"file" yaml:"file"`
	LineBegin  int      `json:"line_begin" yaml:"line_begin"`
	LineEnd    int      `json:"line_end" yaml:"line_end"`
	Text       string   `json:"text" yaml:"text"`
	References []string `json:"references,omitempty" yaml:"references,omitempty"`
}

func records(lists []*extract.IssueList) []issueRecord {
	recs := []issueRecord{}
	for _, list := range lists {
		for _, issue := range list.Issues {
			recs = append(recs, issueRecord{
				Kind:       issue.Kind.String(),
				File:       issue.File,
				LineBegin:  issue.LineBegin + 1,
				LineEnd:    issue.LineEnd + 1,
				Text:       issue.Text,
				References: tracker.ScanReferences(issue.Text),
			})
		}
	}
	return recs
}

// Render writes the issues of every list to w in format.
func (r *Renderer) Render(w io.Writer, format string, lists []*extract.IssueList) error {
	switch format {
	case FormatText, "":
		return renderText(w, lists)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records(lists))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records(lists)); err != nil {
			return err
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(lists))
		return err
	case FormatHTML:
		return r.renderHTML(w, lists)
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

func renderText(w io.Writer, lists []*extract.IssueList) error {
	var b strings.Builder
	for _, list := range lists {
		for _, issue := range list.Issues {
			first, rest, _ := strings.Cut(issue.Text, "\n")
			fmt.Fprintf(&b, "%s: %s\n", tracker.Location(issue), first)
			if rest == "" {
				continue
			}
			for _, line := range strings.Split(rest, "\n") {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Markdown renders the issues grouped by file.
func Markdown(lists []*extract.IssueList) string {
	var b strings.Builder
	b.WriteString("# Issues\n")
	for _, list := range lists {
		if list.Len() == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n", list.File)
		for _, issue := range list.Issues {
			fmt.Fprintf(&b, "\n### %s `%s`\n\n", issue.Kind, tracker.Location(issue))
			b.WriteString("```\n")
			b.WriteString(issue.Text)
			b.WriteString("\n```\n")
			if refs := tracker.ScanReferences(issue.Text); len(refs) > 0 {
				fmt.Fprintf(&b, "\nReferences: %s\n", strings.Join(refs, ", "))
			}
		}
	}
	return b.String()
}

type reportPageData struct {
	Count int
	Body  template.HTML
}

func (r *Renderer) renderHTML(w io.Writer, lists []*extract.IssueList) error {
	count := 0
	for _, list := range lists {
		count += list.Len()
	}
	return r.templates.ExecuteTemplate(w, "report.html", reportPageData{
		Count: count,
		Body:  renderMarkdown(Markdown(lists)),
	})
}

func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(buf.String())
}

// Results writes one line per filing outcome and reports how many failed.
func Results(w io.Writer, results []tracker.Result) (failed int, err error) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, res := range results {
		loc := tracker.Location(res.Issue)
		if res.Err != nil {
			failed++
			fmt.Fprintf(tw, "FAILED\t%s\t%v\n", loc, res.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", res.Created.Identifier, loc, res.Created.URL)
	}
	return failed, tw.Flush()
}
