package problemgen

// OptionCount is the number of answer choices on every problem.
const OptionCount = 4

// Problem is a generated question ready for display or transmission.
type Problem struct {
	// Text is the prompt shown to the player, e.g. "7 + 3 = ?".
	Text string

	// Expression is the bare expression without the "= ?" suffix.
	// Empty for problems received from a peer that did not send one.
	Expression string

	Category Category
	Tier     Tier

	// Operator is one of "+", "-", "*", "/" for arithmetic problems.
	Operator string

	// Operands holds the numbers in the expression, in order. For long
	// division it is {dividend, divisor}.
	Operands []int

	// Answer is the correct choice. Always a member of Options.
	Answer int

	// Remainder is set for long division only.
	Remainder int

	// Options contains exactly OptionCount distinct positive integers.
	Options []int

	// Points is the credit for a correct answer.
	Points int

	// Steps is the worked solution (teacher mode only).
	Steps []string
}

// OptionIndex returns the position of v in Options, or -1.
func (p *Problem) OptionIndex(v int) int {
	for i, o := range p.Options {
		if o == v {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of p.
func (p *Problem) Clone() Problem {
	c := *p
	c.Operands = append([]int(nil), p.Operands...)
	c.Options = append([]int(nil), p.Options...)
	c.Steps = append([]string(nil), p.Steps...)
	return c
}

// Fallback returns the canned problem used when generation fails.
func Fallback() Problem {
	return Problem{
		Text:       "5 + 3 = ?",
		Expression: "5 + 3",
		Category:   CategoryArithmetic,
		Tier:       TierEasy,
		Operator:   "+",
		Operands:   []int{5, 3},
		Answer:     8,
		Options:    []int{8, 7, 9, 6},
		Points:     10,
	}
}

// Stats reports generator counters.
type Stats struct {
	ProblemsGenerated int64
	Fallbacks         int64
	LastTier          Tier
	LastCategory      Category
	Version           string
}
