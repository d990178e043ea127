package problemgen

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Version is reported in generator statistics.
const Version = "1.0"

var errNonPositive = errors.New("answer is not positive")

// Source produces problems. Generate never fails: on any internal fault
// it returns Fallback().
type Source interface {
	Generate(tier Tier, cat Category) Problem
}

// Generator produces problems from a seeded random source.
// It is safe for concurrent use.
type Generator struct {
	cfg    Config
	logger zerolog.Logger

	mu    sync.Mutex
	rng   *rand.Rand
	stats Stats
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes generation reproducible.
func WithSeed(seed1, seed2 uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed1, seed2))
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(g *Generator) {
		g.cfg = cfg
	}
}

// WithLogger sets the logger used for generation faults.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		cfg:    DefaultConfig(),
		logger: log.With().Str("component", "problemgen").Logger(),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		stats:  Stats{Version: Version},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.cfg.MaxRedraws <= 0 {
		g.cfg.MaxRedraws = 1
	}
	return g
}

// Generate returns a problem for the tier and category. A tier from the
// other family is mapped to its nearest counterpart. Unknown values and
// internal failures yield Fallback().
func (g *Generator) Generate(tier Tier, cat Category) Problem {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generateLocked(tier, cat)
}

// GenerateBatch returns n independently generated problems. There is no
// uniqueness guarantee across the batch.
func (g *Generator) GenerateBatch(n int, tier Tier, cat Category) []Problem {
	if n <= 0 {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Problem, 0, n)
	for range n {
		out = append(out, g.generateLocked(tier, cat))
	}
	return out
}

// Stats returns a copy of the generator counters.
func (g *Generator) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

func (g *Generator) generateLocked(tier Tier, cat Category) Problem {
	g.stats.ProblemsGenerated++
	g.stats.LastTier = tier
	g.stats.LastCategory = cat

	p, err := g.safeDraw(tier, cat)
	if err != nil {
		g.stats.Fallbacks++
		g.logger.Warn().Err(err).
			Stringer("tier", tier).
			Stringer("category", cat).
			Msg("problem generation failed, using fallback")
		return Fallback()
	}
	return p
}

// safeDraw converts a panic inside a builder into an error.
func (g *Generator) safeDraw(tier Tier, cat Category) (p Problem, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}
	}()
	return g.draw(tier, cat)
}

func (g *Generator) draw(tier Tier, cat Category) (Problem, error) {
	if !tier.Valid() {
		return Problem{}, fmt.Errorf("unknown tier %d", int(tier))
	}

	var build func(Tier) (Problem, error)
	switch cat {
	case CategoryArithmetic:
		build = g.arithmetic
		if tier.IsTeacher() {
			g.logger.Debug().Stringer("tier", tier).Msg("teacher tier used for arithmetic, mapping to standard")
			tier = tier.Standard()
		}
	case CategoryPEMDAS:
		build = g.pemdas
	case CategorySquareRoot:
		build = g.squareRoot
	case CategoryLongDivision:
		build = g.longDivision
	default:
		return Problem{}, fmt.Errorf("unknown category %d", int(cat))
	}
	if cat.IsTeacher() && !tier.IsTeacher() {
		g.logger.Debug().Stringer("tier", tier).Stringer("category", cat).Msg("standard tier used for teacher category, mapping")
		tier = tier.Teacher()
	}

	var lastErr error
	for range g.cfg.MaxRedraws {
		p, err := build(tier)
		if err != nil {
			lastErr = err
			continue
		}
		if err := runValidators(g.cfg.Validators, &p); err != nil {
			lastErr = err
			continue
		}
		return p, nil
	}
	return Problem{}, fmt.Errorf("no valid problem after %d draws: %w", g.cfg.MaxRedraws, lastErr)
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}
