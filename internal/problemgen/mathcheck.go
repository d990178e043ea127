package problemgen

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// MathCheckValidator independently recomputes the answer from the problem
// expression. Problems whose text cannot be parsed pass through silently.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(p *Problem) *ValidationError {
	src := p.Expression
	if src == "" {
		src = p.Text
	}
	computed, err := Evaluate(src)
	if err != nil {
		return nil
	}
	if computed != p.Answer {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %d but problem claims %d", computed, p.Answer),
			Retryable: true,
		}
	}
	return nil
}

// ErrNotComputable is returned by Evaluate for text that is not an
// integer expression.
var ErrNotComputable = errors.New("expression not computable")

// MaxLiteral bounds the numbers Evaluate accepts.
const MaxLiteral = 1_000_000_000

// ExpressionFromText strips the prompt suffix from a problem text:
// "7 + 3 = ?" becomes "7 + 3" and "√50 ≈ ? (round down)" becomes "√50".
func ExpressionFromText(text string) string {
	if i := strings.IndexAny(text, "=≈"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// Evaluate computes an integer expression using the usual precedence.
// Supported: + - * / × ÷, parentheses, unary minus and √. Division and
// non-perfect roots round down.
func Evaluate(text string) (int, error) {
	toks, err := tokenize(ExpressionFromText(text))
	if err != nil {
		return 0, err
	}
	if len(toks) == 0 {
		return 0, ErrNotComputable
	}
	e := &evaluator{toks: toks}
	n, err := e.expr()
	if err != nil {
		return 0, err
	}
	if e.pos != len(e.toks) {
		return 0, fmt.Errorf("%w: unexpected %q", ErrNotComputable, e.toks[e.pos].text)
	}
	return n, nil
}

type token struct {
	text string
	num  int
	isNo bool
}

func tokenize(s string) ([]token, error) {
	var toks []token
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r):
			j := i
			for j < len(rs) && unicode.IsDigit(rs[j]) {
				j++
			}
			n, err := strconv.Atoi(string(rs[i:j]))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrNotComputable, err)
			}
			if n > MaxLiteral {
				return nil, fmt.Errorf("%w: %d exceeds %d", ErrNotComputable, n, MaxLiteral)
			}
			toks = append(toks, token{text: string(rs[i:j]), num: n, isNo: true})
			i = j
		default:
			op := normalizeOp(string(r))
			if !strings.Contains("+-*/()√", op) {
				return nil, fmt.Errorf("%w: unexpected %q", ErrNotComputable, r)
			}
			toks = append(toks, token{text: op})
			i++
		}
	}
	return toks, nil
}

type evaluator struct {
	toks []token
	pos  int
}

func (e *evaluator) peek() string {
	if e.pos >= len(e.toks) || e.toks[e.pos].isNo {
		return ""
	}
	return e.toks[e.pos].text
}

func (e *evaluator) expr() (int, error) {
	left, err := e.term()
	if err != nil {
		return 0, err
	}
	for op := e.peek(); op == "+" || op == "-"; op = e.peek() {
		e.pos++
		right, err := e.term()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

func (e *evaluator) term() (int, error) {
	left, err := e.unary()
	if err != nil {
		return 0, err
	}
	for op := e.peek(); op == "*" || op == "/"; op = e.peek() {
		e.pos++
		right, err := e.unary()
		if err != nil {
			return 0, err
		}
		if op == "*" {
			left *= right
			continue
		}
		if right == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrNotComputable)
		}
		left = floorDiv(left, right)
	}
	return left, nil
}

func (e *evaluator) unary() (int, error) {
	switch e.peek() {
	case "-":
		e.pos++
		n, err := e.unary()
		return -n, err
	case "√":
		e.pos++
		n, err := e.unary()
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, fmt.Errorf("%w: root of negative", ErrNotComputable)
		}
		return isqrt(n), nil
	}
	return e.primary()
}

func (e *evaluator) primary() (int, error) {
	if e.pos >= len(e.toks) {
		return 0, fmt.Errorf("%w: unexpected end", ErrNotComputable)
	}
	t := e.toks[e.pos]
	if t.isNo {
		e.pos++
		return t.num, nil
	}
	if t.text != "(" {
		return 0, fmt.Errorf("%w: unexpected %q", ErrNotComputable, t.text)
	}
	e.pos++
	n, err := e.expr()
	if err != nil {
		return 0, err
	}
	if e.peek() != ")" {
		return 0, fmt.Errorf("%w: missing )", ErrNotComputable)
	}
	e.pos++
	return n, nil
}

// normalizeOp normalizes multiplication and division symbols.
func normalizeOp(op string) string {
	switch op {
	case "×":
		return "*"
	case "÷":
		return "/"
	default:
		return op
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// isqrt returns the largest r with r*r <= n. Comparisons divide instead
// of multiplying so values near MaxInt cannot overflow.
func isqrt(n int) int {
	if n < 2 {
		return n
	}
	r := int(math.Sqrt(float64(n)))
	for r > n/r {
		r--
	}
	for r+1 <= n/(r+1) {
		r++
	}
	return r
}
