package tracker

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Identifier is a human-readable issue reference such as MIR-42.
type Identifier struct {
	Prefix string
	Number int
}

func (id Identifier) String() string {
	return id.Prefix + "-" + strconv.Itoa(id.Number)
}

// ParseIdentifier splits "MIR-42" into {MIR 42}. The prefix may itself
// contain dashes; the number follows the last one.
func ParseIdentifier(s string) (Identifier, error) {
	i := strings.LastIndex(s, "-")
	if i <= 0 {
		return Identifier{}, fmt.Errorf("invalid identifier format: %s", s)
	}
	n, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return Identifier{}, fmt.Errorf("invalid issue number in %s: %w", s, err)
	}
	return Identifier{Prefix: s[:i], Number: n}, nil
}

var referencePattern = regexp.MustCompile(`\b([A-Z][A-Z0-9]*-\d+)\b`)

// ScanReferences returns the distinct issue identifiers such as MIR-42
// mentioned in text, in order of first appearance.
func ScanReferences(text string) []string {
	matches := referencePattern.FindAllString(text, -1)
	seen := make(map[string]bool, len(matches))
	var unique []string
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			unique = append(unique, m)
		}
	}
	return unique
}
