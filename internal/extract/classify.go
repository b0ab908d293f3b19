package extract

import (
	"bytes"
	"fmt"
	"strings"
)

type Kind int

const (
	FIXME Kind = iota
	TODO
)

// Kinds lists every issue kind in classification order.
var Kinds = []Kind{FIXME, TODO}

func (k Kind) String() string {
	switch k {
	case FIXME:
		return "FIXME"
	case TODO:
		return "TODO"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// prefixLen is the shortest stripped text that is never classified. Longer
// texts are matched on their first prefixLen+1 bytes.
const prefixLen = 6

// Classify reports whether a comment body starts with one of the issue tags.
// Leading whitespace and one leading "//", "/*" or "*" are ignored and the
// match is case-insensitive.
func Classify(text string) (Kind, bool) {
	s := stripMarker(trimLeftSpace(text))
	if len(s) <= prefixLen {
		return 0, false
	}

	label := []byte(s[:prefixLen+1])
	for i, c := range label {
		if 'a' <= c && c <= 'z' {
			label[i] = c - 'a' + 'A'
		}
	}
	for _, k := range Kinds {
		if bytes.HasPrefix(label, []byte(k.String())) {
			return k, true
		}
	}
	return 0, false
}

func stripMarker(s string) string {
	for _, m := range []string{"//", "/*", "*"} {
		if strings.HasPrefix(s, m) {
			return s[len(m):]
		}
	}
	return s
}
