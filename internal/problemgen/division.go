package problemgen

import "fmt"

// DivisionValidator checks the operand relationship of division problems.
// Arithmetic division must be exact; long division must satisfy
// dividend = quotient × divisor + remainder with 0 <= remainder < divisor.
type DivisionValidator struct{}

func (v *DivisionValidator) Name() string { return "division" }

func (v *DivisionValidator) Validate(p *Problem) *ValidationError {
	switch {
	case p.Category == CategoryArithmetic && p.Operator == "/":
		dividend, divisor, verr := v.operands(p)
		if verr != nil {
			return verr
		}
		if dividend%divisor != 0 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("%d is not a multiple of %d", dividend, divisor),
				Retryable: true,
			}
		}
		if p.Answer != dividend/divisor {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("answer %d, want %d", p.Answer, dividend/divisor),
				Retryable: true,
			}
		}
	case p.Category == CategoryLongDivision:
		dividend, divisor, verr := v.operands(p)
		if verr != nil {
			return verr
		}
		if p.Remainder < 0 || p.Remainder >= divisor {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("remainder %d out of range for divisor %d", p.Remainder, divisor),
				Retryable: true,
			}
		}
		if p.Answer*divisor+p.Remainder != dividend {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("%d × %d + %d != %d", p.Answer, divisor, p.Remainder, dividend),
				Retryable: true,
			}
		}
	}
	return nil
}

func (v *DivisionValidator) operands(p *Problem) (int, int, *ValidationError) {
	if len(p.Operands) != 2 {
		return 0, 0, &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("division needs 2 operands, got %d", len(p.Operands)),
			Retryable: true,
		}
	}
	if p.Operands[1] == 0 {
		return 0, 0, &ValidationError{
			Validator: v.Name(),
			Message:   "zero divisor",
			Retryable: true,
		}
	}
	return p.Operands[0], p.Operands[1], nil
}
