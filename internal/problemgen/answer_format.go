package problemgen

import "fmt"

// AnswerFormatValidator checks the answer choices: exactly OptionCount
// distinct positive integers, one of which is the answer.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(p *Problem) *ValidationError {
	if p.Answer <= 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %d is not positive", p.Answer),
			Retryable: true,
		}
	}
	if len(p.Options) != OptionCount {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected exactly %d options, got %d", OptionCount, len(p.Options)),
			Retryable: true,
		}
	}
	seen := make(map[int]bool, OptionCount)
	for i, o := range p.Options {
		if o <= 0 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %d is not positive: %d", i+1, o),
				Retryable: true,
			}
		}
		if seen[o] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate option %d", o),
				Retryable: true,
			}
		}
		seen[o] = true
	}
	if !seen[p.Answer] {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %d is not among the options", p.Answer),
			Retryable: true,
		}
	}
	return nil
}
