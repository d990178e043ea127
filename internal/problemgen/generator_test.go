package problemgen

import (
	"fmt"
	"slices"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(opts ...Option) *Generator {
	opts = append([]Option{WithSeed(1, 2), WithLogger(zerolog.Nop())}, opts...)
	return New(opts...)
}

type combo struct {
	tier Tier
	cat  Category
}

func allCombos() []combo {
	var out []combo
	for _, t := range StandardTiers {
		out = append(out, combo{t, CategoryArithmetic})
	}
	for _, c := range TeacherCategories {
		for _, t := range TeacherTiers {
			out = append(out, combo{t, c})
		}
	}
	return out
}

func TestGenerate_Invariants(t *testing.T) {
	const iterations = 10000
	g := newTestGenerator()

	for _, c := range allCombos() {
		t.Run(fmt.Sprintf("%s/%s", c.cat, c.tier), func(t *testing.T) {
			for i := range iterations {
				p := g.Generate(c.tier, c.cat)
				require.Len(t, p.Options, OptionCount, "iteration %d: %s", i, p.Text)
				require.Contains(t, p.Options, p.Answer, "iteration %d: %s", i, p.Text)

				seen := map[int]bool{}
				for _, o := range p.Options {
					require.Greater(t, o, 0, "iteration %d: %s options %v", i, p.Text, p.Options)
					require.False(t, seen[o], "iteration %d: duplicate in %v", i, p.Options)
					seen[o] = true
				}
			}
		})
	}
	assert.Zero(t, g.Stats().Fallbacks)
}

func TestGenerate_ArithmeticDivisionIsExact(t *testing.T) {
	g := newTestGenerator()
	divisions := 0
	for _, tier := range StandardTiers {
		for range 5000 {
			p := g.Generate(tier, CategoryArithmetic)
			if p.Operator != "/" {
				continue
			}
			divisions++
			require.Len(t, p.Operands, 2)
			dividend, divisor := p.Operands[0], p.Operands[1]
			require.NotZero(t, divisor)
			assert.Zero(t, dividend%divisor, "%s", p.Text)
			assert.Equal(t, dividend/divisor, p.Answer, "%s", p.Text)
		}
	}
	assert.Greater(t, divisions, 0)
}

func TestGenerate_SubtractionIsNotClamped(t *testing.T) {
	g := newTestGenerator()
	subtractions := 0
	for range 10000 {
		p := g.Generate(TierEasy, CategoryArithmetic)
		if p.Operator != "-" {
			continue
		}
		subtractions++
		require.Len(t, p.Operands, 2)
		assert.Equal(t, p.Operands[0]-p.Operands[1], p.Answer, "%s", p.Text)
		assert.GreaterOrEqual(t, p.Operands[0], 1)
		assert.LessOrEqual(t, p.Operands[0], 10)
		assert.GreaterOrEqual(t, p.Operands[1], 1)
		assert.LessOrEqual(t, p.Operands[1], 10)
	}
	assert.Greater(t, subtractions, 0)
}

func TestGenerate_OperandRanges(t *testing.T) {
	g := newTestGenerator()
	for _, tier := range StandardTiers {
		hi := operandMax(tier)
		for range 2000 {
			p := g.Generate(tier, CategoryArithmetic)
			if p.Operator == "/" {
				continue
			}
			for _, n := range p.Operands {
				assert.GreaterOrEqual(t, n, 1)
				assert.LessOrEqual(t, n, hi, "%s at %s", p.Text, tier)
			}
			assert.Equal(t, tier.Points(), p.Points)
		}
	}
}

func TestGenerate_LongDivision(t *testing.T) {
	g := newTestGenerator()
	for _, tier := range TeacherTiers {
		dLo, dHi, qLo, qHi := longDivisionRanges(tier)
		for range 2000 {
			p := g.Generate(tier, CategoryLongDivision)
			require.Len(t, p.Operands, 2)
			dividend, divisor := p.Operands[0], p.Operands[1]
			assert.Equal(t, dividend, p.Answer*divisor+p.Remainder)
			assert.GreaterOrEqual(t, p.Remainder, 0)
			assert.Less(t, p.Remainder, divisor)
			assert.GreaterOrEqual(t, divisor, dLo)
			assert.LessOrEqual(t, divisor, dHi)
			assert.GreaterOrEqual(t, p.Answer, qLo)
			assert.LessOrEqual(t, p.Answer, qHi)
			assert.NotEmpty(t, p.Steps)
		}
	}
}

func TestGenerate_TeacherProblemsRecompute(t *testing.T) {
	g := newTestGenerator()
	for _, cat := range TeacherCategories {
		for _, tier := range TeacherTiers {
			for range 500 {
				p := g.Generate(tier, cat)
				got, err := Evaluate(p.Text)
				require.NoError(t, err, "%s", p.Text)
				assert.Equal(t, p.Answer, got, "%s", p.Text)
				assert.Equal(t, tier.Points(), p.Points)
				assert.Equal(t, cat, p.Category)
			}
		}
	}
}

func TestGenerate_TierMismatchIsMapped(t *testing.T) {
	g := newTestGenerator()

	p := g.Generate(TierEasy, CategoryPEMDAS)
	assert.Equal(t, TierFoundational, p.Tier)
	assert.Equal(t, CategoryPEMDAS, p.Category)

	p = g.Generate(TierMastery, CategoryArithmetic)
	assert.Equal(t, TierHard, p.Tier)
	assert.Equal(t, CategoryArithmetic, p.Category)
}

func TestGenerate_UnknownValuesFallBack(t *testing.T) {
	g := newTestGenerator()

	p := g.Generate(TierEasy, Category(99))
	assert.Equal(t, Fallback(), p)

	p = g.Generate(Tier(-1), CategoryArithmetic)
	assert.Equal(t, Fallback(), p)

	assert.Equal(t, int64(2), g.Stats().Fallbacks)
}

func TestGenerate_ExhaustedRedrawsFallBack(t *testing.T) {
	reject := rejectAll{}
	cfg := DefaultConfig()
	cfg.Validators = []Validator{reject}
	g := newTestGenerator(WithConfig(cfg))

	p := g.Generate(TierHard, CategoryArithmetic)
	assert.Equal(t, Fallback(), p)
	assert.Equal(t, int64(1), g.Stats().Fallbacks)
}

type rejectAll struct{}

func (rejectAll) Name() string { return "reject-all" }
func (rejectAll) Validate(*Problem) *ValidationError {
	return &ValidationError{Validator: "reject-all", Message: "no", Retryable: true}
}

func TestGenerate_SeedIsReproducible(t *testing.T) {
	a := newTestGenerator(WithSeed(7, 7))
	b := newTestGenerator(WithSeed(7, 7))
	for range 50 {
		assert.Equal(t, a.Generate(TierMedium, CategoryArithmetic), b.Generate(TierMedium, CategoryArithmetic))
	}
}

func TestGenerateBatch(t *testing.T) {
	g := newTestGenerator()

	batch := g.GenerateBatch(25, TierIntermediate, CategorySquareRoot)
	require.Len(t, batch, 25)
	for _, p := range batch {
		assert.Equal(t, CategorySquareRoot, p.Category)
	}
	assert.Nil(t, g.GenerateBatch(0, TierEasy, CategoryArithmetic))

	stats := g.Stats()
	assert.Equal(t, int64(25), stats.ProblemsGenerated)
	assert.Equal(t, TierIntermediate, stats.LastTier)
	assert.Equal(t, CategorySquareRoot, stats.LastCategory)
	assert.Equal(t, Version, stats.Version)
}

func TestBuildOptions_DeterministicFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxOptionAttempts = 0
	g := newTestGenerator(WithConfig(cfg))

	opts, err := g.buildOptions(1)
	require.NoError(t, err)
	slices.Sort(opts)
	assert.Equal(t, []int{1, 2, 3, 4}, opts)

	opts, err = g.buildOptions(10)
	require.NoError(t, err)
	slices.Sort(opts)
	assert.Equal(t, []int{9, 10, 11, 12}, opts)
}

func TestBuildOptions_SeedsFirst(t *testing.T) {
	g := newTestGenerator()
	opts, err := g.buildOptions(20, 21, 25, 15)
	require.NoError(t, err)
	slices.Sort(opts)
	assert.Equal(t, []int{15, 20, 21, 25}, opts)
}

func TestBuildOptions_RejectsNonPositive(t *testing.T) {
	g := newTestGenerator()
	_, err := g.buildOptions(0)
	assert.ErrorIs(t, err, errNonPositive)
}
