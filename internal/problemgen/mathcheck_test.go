package problemgen

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"7 + 3 = ?", 10},
		{"9 - 4 = ?", 5},
		{"6 * 7", 42},
		{"6 × 7", 42},
		{"42 / 6", 7},
		{"42 ÷ 6 = ?", 7},
		{"47 ÷ 6 = ?", 7},
		{"2 + 3 * 4 = ?", 14},
		{"(2 + 3) * 4 - 1 = ?", 19},
		{"3 * 4 - 2 * 5 + 17 / 5 = ?", 5},
		{"√81 = ?", 9},
		{"√50 ≈ ? (round down)", 7},
		{"3 * √49 + 2 = ?", 23},
		{"-3 + 5", 2},
	}
	for _, tc := range tests {
		got, err := Evaluate(tc.text)
		if err != nil {
			t.Errorf("Evaluate(%q) error: %v", tc.text, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Evaluate(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestEvaluate_NotComputable(t *testing.T) {
	for _, text := range []string{"", "what is love?", "3 +", "(3 + 4", "4 / 0", "3 4"} {
		if _, err := Evaluate(text); !errors.Is(err, ErrNotComputable) {
			t.Errorf("Evaluate(%q): expected ErrNotComputable, got %v", text, err)
		}
	}
}

func TestEvaluate_RejectsHugeLiterals(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		_, err := Evaluate("√9223372036854775807 = ?")
		done <- err
	}()
	select {
	case err := <-done:
		if !errors.Is(err, ErrNotComputable) {
			t.Fatalf("expected ErrNotComputable, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Evaluate did not return")
	}
}

func TestEvaluate_LargeRoot(t *testing.T) {
	got, err := Evaluate("√(1000000000 * 1000000000 * 9)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3_000_000_000 {
		t.Errorf("got %d, want 3000000000", got)
	}
}

func TestIsqrt(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{99, 9},
		{100, 10},
		{math.MaxInt64, 3037000499},
		{3037000499 * 3037000499, 3037000499},
	}
	for _, tc := range tests {
		if got := isqrt(tc.n); got != tc.want {
			t.Errorf("isqrt(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestExpressionFromText(t *testing.T) {
	if got := ExpressionFromText("7 + 3 = ?"); got != "7 + 3" {
		t.Errorf("got %q", got)
	}
	if got := ExpressionFromText("√50 ≈ ? (round down)"); got != "√50" {
		t.Errorf("got %q", got)
	}
	if got := ExpressionFromText("12 * 3"); got != "12 * 3" {
		t.Errorf("got %q", got)
	}
}

func TestMathCheck_Validate(t *testing.T) {
	v := &MathCheckValidator{}

	p := validProblem()
	if err := v.Validate(p); err != nil {
		t.Fatalf("correct addition should pass: %v", err)
	}

	p.Answer = 11
	if err := v.Validate(p); err == nil {
		t.Fatal("wrong addition should fail")
	}
}

func TestMathCheck_FallsBackToText(t *testing.T) {
	v := &MathCheckValidator{}
	p := validProblem()
	p.Expression = ""
	p.Text = "(1 + 2) * 3 = ?"
	p.Answer = 9
	if err := v.Validate(p); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestMathCheck_NonComputablePasses(t *testing.T) {
	v := &MathCheckValidator{}
	p := validProblem()
	p.Expression = ""
	p.Text = "Pick the largest number"
	if err := v.Validate(p); err != nil {
		t.Fatalf("non-computable text should pass silently: %v", err)
	}
}
