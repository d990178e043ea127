package problemgen

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem) *ValidationError {
	if p.Text == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "problem text is empty",
			Retryable: true,
		}
	}
	if len(p.Text) > 200 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "problem text exceeds 200 characters",
			Retryable: true,
		}
	}
	if !p.Tier.Valid() {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "tier is not a known tier",
			Retryable: false,
		}
	}
	if p.Points <= 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "points must be positive",
			Retryable: false,
		}
	}
	if p.Category.IsTeacher() && len(p.Steps) == 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "teacher-mode problem has no steps",
			Retryable: true,
		}
	}
	return nil
}
