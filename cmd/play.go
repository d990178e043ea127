package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/problemgen"
)

var playCmd = &cobra.Command{
	Use:         "play",
	Short:       "Start a solo practice session",
	Annotations: map[string]string{annotationTUI: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := categoryFlag(cmd, problemgen.CategoryArithmetic)
		if err != nil {
			return err
		}
		return runApp(cmd, func(rt *appDeps) (*duel.Session, error) {
			tier, err := tierFlag(cmd, rt.tier)
			if err != nil {
				return nil, err
			}
			if cat.IsTeacher() {
				tier = tier.Teacher()
			}
			return rt.newSession(cmd.Context(), rt.sessionConfig(duel.RoleSolo, tier, cat), nil)
		})
	},
}

var teacherCmd = &cobra.Command{
	Use:         "teacher",
	Short:       "Practice with step-by-step worked solutions",
	Annotations: map[string]string{annotationTUI: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := categoryFlag(cmd, problemgen.CategoryPEMDAS)
		if err != nil {
			return err
		}
		if !cat.IsTeacher() {
			return fmt.Errorf("teacher mode has no %s problems", cat)
		}
		return runApp(cmd, func(rt *appDeps) (*duel.Session, error) {
			tier, err := tierFlag(cmd, rt.tier)
			if err != nil {
				return nil, err
			}
			return rt.newSession(cmd.Context(), rt.sessionConfig(duel.RoleSolo, tier.Teacher(), cat), nil)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{playCmd, teacherCmd} {
		c.Flags().String("tier", "", "Difficulty tier (defaults to --difficulty)")
	}
	playCmd.Flags().String("category", "ARITHMETIC", "Problem category")
	teacherCmd.Flags().String("category", "PEMDAS", "Problem category: PEMDAS, SQUARE_ROOT or LONG_DIVISION")
}

// tierFlag reads --tier, falling back to def when unset.
func tierFlag(cmd *cobra.Command, def problemgen.Tier) (problemgen.Tier, error) {
	v, _ := cmd.Flags().GetString("tier")
	if v == "" {
		return def, nil
	}
	return problemgen.ParseTier(v)
}

// categoryFlag reads --category, falling back to def when unset.
func categoryFlag(cmd *cobra.Command, def problemgen.Category) (problemgen.Category, error) {
	v, _ := cmd.Flags().GetString("category")
	if v == "" {
		return def, nil
	}
	return problemgen.ParseCategory(v)
}
