package problemgen

import "fmt"

// buildOptions returns OptionCount distinct positive choices containing
// answer. Seeds are tried first, then random offsets in
// [1, max(5, answer)] with a random sign, then deterministic offsets
// +1, +2, -1, +3, -2, ... The result is shuffled.
func (g *Generator) buildOptions(answer int, seeds ...int) ([]int, error) {
	if answer <= 0 {
		return nil, errNonPositive
	}

	opts := make([]int, 0, OptionCount)
	seen := make(map[int]bool, OptionCount)
	add := func(v int) {
		if v > 0 && !seen[v] && len(opts) < OptionCount {
			seen[v] = true
			opts = append(opts, v)
		}
	}

	add(answer)
	for _, s := range seeds {
		add(s)
	}

	span := max(5, answer)
	for i := 0; i < g.cfg.MaxOptionAttempts && len(opts) < OptionCount; i++ {
		off := g.between(1, span)
		if g.rng.IntN(2) == 0 {
			off = -off
		}
		add(answer + off)
	}

	for k := 1; len(opts) < OptionCount && k <= OptionCount+1; k++ {
		add(answer + k)
		if k > 1 {
			add(answer - (k - 1))
		}
	}

	if len(opts) != OptionCount {
		return nil, fmt.Errorf("could only build %d options for %d", len(opts), answer)
	}
	g.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts, nil
}
