package answer

import (
	"regexp"
	"strings"
)

var (
	codeBlockRegex = regexp.MustCompile("(?s)```(\\w*)\\n(.*?)```")

	// answerLineRegex matches conclusion markers models commonly emit.
	// The bare "answer" form only counts at the start of the line, so
	// mid-sentence uses ("I cannot answer that") are not markers.
	answerLineRegex = regexp.MustCompile(`(?i)(?:final answer|the answer is|^answer)\s*[:=]?\s*(.+)$`)

	// numberRegex matches integers and decimals, with optional digit
	// grouping and sign.
	numberRegex = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)

	trailingPunct = ".!?;:,"
)

// Extract returns the answer portion of a completion.
//
// Code blocks are stripped first. If a line carries an explicit conclusion
// marker ("final answer:", "the answer is"), the text after the marker wins;
// the last such line is used so a restated conclusion beats an early guess.
// Otherwise the last non-empty line is taken whole.
func Extract(text string) string {
	text = codeBlockRegex.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	var marked, lastNonEmpty string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lastNonEmpty = line
		if m := answerLineRegex.FindStringSubmatch(line); m != nil {
			marked = strings.TrimSpace(m[1])
		}
	}

	if marked != "" {
		return marked
	}
	return lastNonEmpty
}

// Normalize canonicalizes an answer for comparison: lowercase, surrounding
// whitespace and markdown emphasis removed, trailing sentence punctuation
// dropped, and digit-grouping commas stripped from numbers.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*_`")
	s = strings.TrimRight(s, trailingPunct)
	s = strings.ToLower(s)

	// Strip grouping commas inside numbers ("121,643,937,801").
	s = numberRegex.ReplaceAllStringFunc(s, func(n string) string {
		return strings.ReplaceAll(n, ",", "")
	})

	return strings.Join(strings.Fields(s), " ")
}

// ExtractNumeric returns the last number in the completion, normalized.
// The boolean reports whether a number was found. Useful for arithmetic
// problems where prose around the number should not split the vote.
func ExtractNumeric(text string) (string, bool) {
	text = codeBlockRegex.ReplaceAllString(text, "")
	matches := numberRegex.FindAllString(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	return strings.ReplaceAll(matches[len(matches)-1], ",", ""), true
}
