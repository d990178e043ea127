package problemgen

import (
	"strconv"
	"strings"
)

// CheckAnswer reports whether value is the correct answer to p.
func CheckAnswer(p *Problem, value int) bool {
	return p != nil && value == p.Answer
}

// CheckAnswerText compares typed input against the problem.
//
// Normalization rules:
// - Whitespace is trimmed
// - Leading zeros are ignored (e.g., "007" matches "7")
// - "#n" selects the n-th option (1-based)
func CheckAnswerText(input string, p *Problem) bool {
	v, ok := ResolveAnswerText(input, p)
	return ok && CheckAnswer(p, v)
}

// ResolveAnswerText turns typed input into a candidate answer value.
func ResolveAnswerText(input string, p *Problem) (int, bool) {
	input = strings.TrimSpace(input)
	if input == "" || p == nil {
		return 0, false
	}
	if rest, ok := strings.CutPrefix(input, "#"); ok {
		idx, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || idx < 1 || idx > len(p.Options) {
			return 0, false
		}
		return p.Options[idx-1], true
	}
	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
