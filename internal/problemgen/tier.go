package problemgen

import (
	"fmt"
	"strings"
)

// Tier is a difficulty level. It controls operand ranges and point value.
type Tier int

const (
	TierEasy         Tier = iota // Operands 1-10
	TierMedium                   // Operands 1-50
	TierHard                     // Operands 1-100
	TierFoundational             // Teacher mode, single-step
	TierIntermediate             // Teacher mode, two or three steps
	TierAdvanced                 // Teacher mode, multi-step
	TierMastery                  // Teacher mode, mixed operations
)

// StandardTiers lists the tiers used for arithmetic play.
var StandardTiers = []Tier{TierEasy, TierMedium, TierHard}

// TeacherTiers lists the tiers used for teacher-mode categories.
var TeacherTiers = []Tier{TierFoundational, TierIntermediate, TierAdvanced, TierMastery}

func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "EASY"
	case TierMedium:
		return "MEDIUM"
	case TierHard:
		return "HARD"
	case TierFoundational:
		return "FOUNDATIONAL"
	case TierIntermediate:
		return "INTERMEDIATE"
	case TierAdvanced:
		return "ADVANCED"
	case TierMastery:
		return "MASTERY"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Valid reports whether t is one of the declared tiers.
func (t Tier) Valid() bool {
	return t >= TierEasy && t <= TierMastery
}

// IsTeacher reports whether t belongs to the teacher-mode family.
func (t Tier) IsTeacher() bool {
	return t >= TierFoundational && t <= TierMastery
}

// Level returns the 1-based rank of the tier within its family.
func (t Tier) Level() int {
	switch t {
	case TierEasy, TierFoundational:
		return 1
	case TierMedium, TierIntermediate:
		return 2
	case TierHard, TierAdvanced:
		return 3
	case TierMastery:
		return 4
	default:
		return 1
	}
}

// Points is the credit for a correct answer at this tier.
func (t Tier) Points() int {
	return 10 * t.Level()
}

// Standard maps a teacher tier onto the closest standard tier.
// Standard tiers are returned unchanged.
func (t Tier) Standard() Tier {
	switch t {
	case TierFoundational:
		return TierEasy
	case TierIntermediate:
		return TierMedium
	case TierAdvanced, TierMastery:
		return TierHard
	default:
		return t
	}
}

// Teacher maps a standard tier onto the closest teacher tier.
// Teacher tiers are returned unchanged.
func (t Tier) Teacher() Tier {
	switch t {
	case TierEasy:
		return TierFoundational
	case TierMedium:
		return TierIntermediate
	case TierHard:
		return TierAdvanced
	default:
		return t
	}
}

// ParseTier parses a tier name case-insensitively.
func ParseTier(s string) (Tier, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EASY":
		return TierEasy, nil
	case "MEDIUM":
		return TierMedium, nil
	case "HARD":
		return TierHard, nil
	case "FOUNDATIONAL":
		return TierFoundational, nil
	case "INTERMEDIATE":
		return TierIntermediate, nil
	case "ADVANCED":
		return TierAdvanced, nil
	case "MASTERY":
		return TierMastery, nil
	default:
		return TierEasy, fmt.Errorf("unknown tier %q", s)
	}
}

// Category is a problem family.
type Category int

const (
	CategoryArithmetic   Category = iota // + - × ÷ on two operands
	CategoryPEMDAS                       // Order of operations
	CategorySquareRoot                   // Radicals
	CategoryLongDivision                 // Division with remainder
)

// TeacherCategories lists the teacher-mode categories.
var TeacherCategories = []Category{CategoryPEMDAS, CategorySquareRoot, CategoryLongDivision}

func (c Category) String() string {
	switch c {
	case CategoryArithmetic:
		return "ARITHMETIC"
	case CategoryPEMDAS:
		return "PEMDAS"
	case CategorySquareRoot:
		return "SQUARE_ROOT"
	case CategoryLongDivision:
		return "LONG_DIVISION"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// IsTeacher reports whether c is a teacher-mode category.
func (c Category) IsTeacher() bool {
	return c == CategoryPEMDAS || c == CategorySquareRoot || c == CategoryLongDivision
}

// ParseCategory parses a category name case-insensitively. Dashes and
// spaces are accepted in place of underscores.
func ParseCategory(s string) (Category, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	switch norm {
	case "ARITHMETIC":
		return CategoryArithmetic, nil
	case "PEMDAS":
		return CategoryPEMDAS, nil
	case "SQUARE_ROOT", "SQRT":
		return CategorySquareRoot, nil
	case "LONG_DIVISION":
		return CategoryLongDivision, nil
	default:
		return CategoryArithmetic, fmt.Errorf("unknown category %q", s)
	}
}
