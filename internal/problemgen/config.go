package problemgen

// Config controls the behavior of the Generator.
type Config struct {
	// Validators is the ordered list of validators run on every generated
	// problem. The first failure triggers a redraw.
	Validators []Validator

	// MaxRedraws bounds how many candidate problems are drawn before the
	// generator gives up and returns the fallback problem.
	MaxRedraws int

	// MaxOptionAttempts bounds the random distractor loop before
	// deterministic offsets are used.
	MaxOptionAttempts int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerFormatValidator{},
			&DivisionValidator{},
			&MathCheckValidator{},
		},
		MaxRedraws:        20,
		MaxOptionAttempts: 50,
	}
}
