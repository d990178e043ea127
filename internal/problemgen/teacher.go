package problemgen

import "fmt"

// teacherProblem assembles a teacher-mode problem from its parts.
func (g *Generator) teacherProblem(cat Category, tier Tier, expr, text string, operands []int, answer int, steps []string, seeds ...int) (Problem, error) {
	if answer <= 0 {
		return Problem{}, errNonPositive
	}
	opts, err := g.buildOptions(answer, seeds...)
	if err != nil {
		return Problem{}, err
	}
	return Problem{
		Text:       text,
		Expression: expr,
		Category:   cat,
		Tier:       tier,
		Operands:   operands,
		Answer:     answer,
		Options:    opts,
		Points:     tier.Points(),
		Steps:      steps,
	}, nil
}

func (g *Generator) pemdas(tier Tier) (Problem, error) {
	switch tier {
	case TierFoundational:
		a, b, c := g.between(1, 10), g.between(1, 10), g.between(1, 10)
		ans := a + b*c
		expr := fmt.Sprintf("%d + %d * %d", a, b, c)
		return g.teacherProblem(CategoryPEMDAS, tier, expr, expr+" = ?", []int{a, b, c}, ans, []string{
			fmt.Sprintf("1. Multiply first: %d * %d = %d", b, c, b*c),
			fmt.Sprintf("2. Then add: %d + %d = %d", a, b*c, ans),
			fmt.Sprintf("Answer: %d", ans),
		}, (a+b)*c, ans+5, ans-3)

	case TierIntermediate:
		a, b, c, d := g.between(1, 8), g.between(1, 8), g.between(1, 5), g.between(1, 5)
		ans := (a+b)*c - d
		expr := fmt.Sprintf("(%d + %d) * %d - %d", a, b, c, d)
		return g.teacherProblem(CategoryPEMDAS, tier, expr, expr+" = ?", []int{a, b, c, d}, ans, []string{
			fmt.Sprintf("1. Parentheses first: %d + %d = %d", a, b, a+b),
			fmt.Sprintf("2. Multiply: %d * %d = %d", a+b, c, (a+b)*c),
			fmt.Sprintf("3. Subtract: %d - %d = %d", (a+b)*c, d, ans),
			fmt.Sprintf("Answer: %d", ans),
		}, (a+b)*c, ans+5, ans-5)

	case TierAdvanced:
		a, b, c, d, e := g.between(2, 8), g.between(2, 8), g.between(2, 8), g.between(2, 8), g.between(1, 10)
		ans := a*b + c*d - e
		expr := fmt.Sprintf("%d * %d + %d * %d - %d", a, b, c, d, e)
		return g.teacherProblem(CategoryPEMDAS, tier, expr, expr+" = ?", []int{a, b, c, d, e}, ans, []string{
			fmt.Sprintf("1. First multiplication: %d * %d = %d", a, b, a*b),
			fmt.Sprintf("2. Second multiplication: %d * %d = %d", c, d, c*d),
			fmt.Sprintf("3. Add: %d + %d = %d", a*b, c*d, a*b+c*d),
			fmt.Sprintf("4. Subtract: %d - %d = %d", a*b+c*d, e, ans),
			fmt.Sprintf("Answer: %d", ans),
		}, a*b+c*d, ans+10, ans-10)

	case TierMastery:
		a, b, c, d := g.between(3, 9), g.between(3, 9), g.between(2, 8), g.between(2, 8)
		e, f := g.between(10, 20), g.between(2, 5)
		ans := a*b - c*d + e/f
		expr := fmt.Sprintf("%d * %d - %d * %d + %d / %d", a, b, c, d, e, f)
		return g.teacherProblem(CategoryPEMDAS, tier, expr, expr+" = ?", []int{a, b, c, d, e, f}, ans, []string{
			fmt.Sprintf("1. First: %d * %d = %d", a, b, a*b),
			fmt.Sprintf("2. Second: %d * %d = %d", c, d, c*d),
			fmt.Sprintf("3. Division (whole part): %d / %d = %d", e, f, e/f),
			fmt.Sprintf("4. Calculate: %d - %d + %d = %d", a*b, c*d, e/f, ans),
			fmt.Sprintf("Answer: %d", ans),
		}, a*b-c*d, ans+15, ans-15)
	}
	return Problem{}, fmt.Errorf("pemdas: unsupported tier %s", tier)
}

func (g *Generator) squareRoot(tier Tier) (Problem, error) {
	switch tier {
	case TierFoundational, TierIntermediate:
		hi := 10
		seeds := func(base int) []int { return []int{base - 1, base + 1, base + 2} }
		if tier == TierIntermediate {
			hi = 20
			seeds = func(base int) []int { return []int{base - 2, base + 2, base - 1} }
		}
		base := g.between(2, hi)
		sq := base * base
		expr := fmt.Sprintf("√%d", sq)
		return g.teacherProblem(CategorySquareRoot, tier, expr, expr+" = ?", []int{sq}, base, []string{
			fmt.Sprintf("What number times itself equals %d?", sq),
			fmt.Sprintf("%d × %d = %d", base, base, sq),
			fmt.Sprintf("Answer: √%d = %d", sq, base),
		}, seeds(base)...)

	case TierAdvanced:
		n := g.between(2, 100)
		ans := isqrt(n)
		expr := fmt.Sprintf("√%d", n)
		return g.teacherProblem(CategorySquareRoot, tier, expr, expr+" ≈ ? (round down)", []int{n}, ans, []string{
			fmt.Sprintf("Find √%d", n),
			fmt.Sprintf("%d² = %d", ans, ans*ans),
			fmt.Sprintf("%d² = %d", ans+1, (ans+1)*(ans+1)),
			fmt.Sprintf("%d is between these, so √%d ≈ %d", n, n, ans),
		}, ans-1, ans+1, ans-2)

	case TierMastery:
		a, base, c := g.between(1, 5), g.between(2, 10), g.between(1, 10)
		sq := base * base
		ans := a*base + c
		expr := fmt.Sprintf("%d * √%d + %d", a, sq, c)
		return g.teacherProblem(CategorySquareRoot, tier, expr, expr+" = ?", []int{a, sq, c}, ans, []string{
			fmt.Sprintf("1. Find √%d = %d", sq, base),
			fmt.Sprintf("2. Multiply: %d × %d = %d", a, base, a*base),
			fmt.Sprintf("3. Add: %d + %d = %d", a*base, c, ans),
			fmt.Sprintf("Answer: %d", ans),
		}, a*base, ans+5, ans-5)
	}
	return Problem{}, fmt.Errorf("square root: unsupported tier %s", tier)
}

// longDivisionRanges returns divisor and quotient bounds per tier.
func longDivisionRanges(t Tier) (dLo, dHi, qLo, qHi int) {
	switch t {
	case TierFoundational:
		return 2, 9, 2, 9
	case TierIntermediate:
		return 2, 9, 10, 99
	case TierAdvanced:
		return 10, 99, 10, 99
	default:
		return 50, 999, 10, 99
	}
}

func (g *Generator) longDivision(tier Tier) (Problem, error) {
	dLo, dHi, qLo, qHi := longDivisionRanges(tier)
	divisor := g.between(dLo, dHi)
	quotient := g.between(qLo, qHi)
	remainder := g.between(0, divisor-1)
	dividend := quotient*divisor + remainder

	final := fmt.Sprintf("Answer: %d", quotient)
	if remainder > 0 {
		final += fmt.Sprintf(" R%d", remainder)
	}
	steps := []string{
		fmt.Sprintf("Setup: %d ÷ %d", dividend, divisor),
		fmt.Sprintf("%d goes into %d %d times", divisor, dividend, quotient),
		fmt.Sprintf("Check: %d × %d = %d", quotient, divisor, quotient*divisor),
		fmt.Sprintf("Remainder: %d - %d = %d", dividend, quotient*divisor, remainder),
		final,
	}

	var seeds []int
	switch tier {
	case TierFoundational:
		seeds = []int{quotient - 1, quotient + 1, quotient + 2}
	case TierIntermediate:
		seeds = []int{quotient - 5, quotient + 5, quotient - 1}
	default:
		seeds = []int{quotient - 10, quotient + 10, quotient - 5}
	}

	expr := fmt.Sprintf("%d ÷ %d", dividend, divisor)
	p, err := g.teacherProblem(CategoryLongDivision, tier, expr, expr+" = ?", []int{dividend, divisor}, quotient, steps, seeds...)
	if err != nil {
		return Problem{}, err
	}
	p.Remainder = remainder
	return p, nil
}
