package extract

import "strings"

type CommentKind int

const (
	LineComment CommentKind = iota
	BlockComment
)

func (k CommentKind) String() string {
	switch k {
	case LineComment:
		return "line"
	case BlockComment:
		return "block"
	default:
		return "unknown"
	}
}

// Comment is a single comment found in source text. Text is a substring of
// the scanned input with the delimiters and surrounding whitespace removed.
// Line is the zero-based line the comment starts on.
type Comment struct {
	Kind CommentKind
	Text string
	Line int
}

type scanMode int

const (
	stateNone scanMode = iota
	stateLine
	stateBlock
)

// scanState is the scanner's current state. start and line are only
// meaningful inside a comment and point at its opening '/'.
type scanState struct {
	mode  scanMode
	start int
	line  int
}

// Scan walks input once and returns its line and block comments in order.
// It knows nothing about string literals, so a "//" inside a string is
// reported as a comment. A line comment ends at its newline and a block
// comment at "*/"; one still open at the end of input is dropped.
func Scan(input string) []Comment {
	comments := make([]Comment, 0, len(input)/80)

	var st scanState
	line := 0

	for i := 0; i < len(input); i++ {
		c := input[i]

		switch st.mode {
		case stateNone:
			if c == '/' && i+1 < len(input) {
				switch input[i+1] {
				case '/':
					st = scanState{mode: stateLine, start: i, line: line}
					i++
					continue
				case '*':
					st = scanState{mode: stateBlock, start: i, line: line}
					i++
					continue
				}
			}
			if c == '\n' {
				line++
			}

		case stateLine:
			if c == '\n' {
				comments = append(comments, lineComment(input[st.start:i], st.line))
				st = scanState{}
				line++
			}

		case stateBlock:
			if c == '*' && i+1 < len(input) && input[i+1] == '/' {
				comments = append(comments, blockComment(input[st.start:i+2], st.line))
				st = scanState{}
				i++
				continue
			}
			if c == '\n' {
				line++
			}
		}
	}

	return comments
}

func lineComment(raw string, line int) Comment {
	return Comment{
		Kind: LineComment,
		Text: trimSpace(trimSlashes(raw)),
		Line: line,
	}
}

// trimSlashes removes every leading "//", so "//// x" and "// x" match.
func trimSlashes(s string) string {
	for strings.HasPrefix(s, "//") {
		s = s[2:]
	}
	return s
}

func blockComment(raw string, line int) Comment {
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "/*"), "*/")
	return Comment{
		Kind: BlockComment,
		Text: trimSpace(body),
		Line: line,
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// trimSpace trims ASCII whitespace only. Non-ASCII spaces stay part of the
// comment text.
func trimSpace(s string) string {
	return trimRightSpace(trimLeftSpace(s))
}

func trimLeftSpace(s string) string {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return s[i:]
}

func trimRightSpace(s string) string {
	i := len(s)
	for i > 0 && isSpace(s[i-1]) {
		i--
	}
	return s[:i]
}

func trimRightSpaceBytes(b []byte) []byte {
	i := len(b)
	for i > 0 && isSpace(b[i-1]) {
		i--
	}
	return b[:i]
}
