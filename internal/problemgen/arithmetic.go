package problemgen

import "fmt"

var arithmeticOperators = []string{"+", "-", "*", "/"}

// operandMax is the upper bound of operand ranges for standard tiers.
func operandMax(t Tier) int {
	switch t {
	case TierEasy:
		return 10
	case TierMedium:
		return 50
	case TierHard:
		return 100
	default:
		return 10
	}
}

// divisorMax bounds the divisor and quotient of arithmetic division.
func divisorMax(t Tier) int {
	switch t {
	case TierEasy:
		return 10
	case TierMedium:
		return 12
	case TierHard:
		return 20
	default:
		return 10
	}
}

func (g *Generator) arithmetic(tier Tier) (Problem, error) {
	hi := operandMax(tier)
	op := arithmeticOperators[g.rng.IntN(len(arithmeticOperators))]

	var a, b, answer int
	switch op {
	case "+":
		a, b = g.between(1, hi), g.between(1, hi)
		answer = a + b
	case "-":
		a, b = g.between(1, hi), g.between(1, hi)
		for a == b {
			b = g.between(1, hi)
		}
		if a < b {
			a, b = b, a
		}
		answer = a - b
	case "*":
		a, b = g.between(1, hi), g.between(1, hi)
		answer = a * b
	case "/":
		// Quotient first so the dividend is an exact multiple.
		b = g.between(2, divisorMax(tier))
		answer = g.between(2, divisorMax(tier))
		a = answer * b
	}
	if answer <= 0 {
		return Problem{}, errNonPositive
	}

	opts, err := g.buildOptions(answer)
	if err != nil {
		return Problem{}, err
	}
	expr := fmt.Sprintf("%d %s %d", a, op, b)
	return Problem{
		Text:       expr + " = ?",
		Expression: expr,
		Category:   CategoryArithmetic,
		Tier:       tier,
		Operator:   op,
		Operands:   []int{a, b},
		Answer:     answer,
		Options:    opts,
		Points:     tier.Points(),
	}, nil
}
