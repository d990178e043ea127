package problemgen

import "testing"

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Validator: "test-validator",
		Message:   "something went wrong",
		Retryable: true,
	}
	expected := `validator "test-validator": something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	cfg := DefaultConfig()
	names := []string{"structural", "answer-format", "division", "math-check"}
	if len(cfg.Validators) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(cfg.Validators))
	}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxRedraws != 20 {
		t.Errorf("expected MaxRedraws 20, got %d", cfg.MaxRedraws)
	}
	if cfg.MaxOptionAttempts != 50 {
		t.Errorf("expected MaxOptionAttempts 50, got %d", cfg.MaxOptionAttempts)
	}
}

func TestValidate_Fallback(t *testing.T) {
	p := Fallback()
	if err := Validate(&p); err != nil {
		t.Fatalf("fallback problem must be valid: %v", err)
	}
}
