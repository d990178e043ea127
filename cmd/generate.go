package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/protocol"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a batch of generated problems (no database)",
	Long: `Generate problems for a tier and category and print them, or answer them
interactively with --quiz. Nothing is stored. Useful for checking problem
quality at each tier.`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.Int("count", 5, "Number of problems to generate")
	f.String("tier", "EASY", "Difficulty tier")
	f.String("category", "ARITHMETIC", "Problem category")
	f.Uint64("seed", 0, "Random seed for reproducible batches (0 = random)")
	f.Bool("quiz", false, "Answer the problems interactively")
	f.Bool("wire", false, "Print each problem as its wire message")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")
	quiz, _ := cmd.Flags().GetBool("quiz")
	wire, _ := cmd.Flags().GetBool("wire")

	tier, err := tierFlag(cmd, problemgen.TierEasy)
	if err != nil {
		return err
	}
	cat, err := categoryFlag(cmd, problemgen.CategoryArithmetic)
	if err != nil {
		return err
	}
	if cat.IsTeacher() {
		tier = tier.Teacher()
	}

	var opts []problemgen.Option
	if seed != 0 {
		opts = append(opts, problemgen.WithSeed(seed, seed^0x9e3779b97f4a7c15))
	}
	gen := problemgen.New(opts...)
	batch := gen.GenerateBatch(count, tier, cat)

	out := cmd.OutOrStdout()
	if quiz {
		return runQuiz(out, cmd.InOrStdin(), tier, cat, batch)
	}

	fmt.Fprintf(out, "%s · %s · %d problems\n\n", tier, cat, len(batch))
	for i, p := range batch {
		if wire {
			frame, err := protocol.Encode(protocol.NewProblem(p))
			if err != nil {
				return fmt.Errorf("encode problem %d: %w", i+1, err)
			}
			fmt.Fprintln(out, string(frame))
			continue
		}
		printProblem(out, i+1, len(batch), p)
		fmt.Fprintf(out, "Answer: %s\n", answerText(p))
		for _, step := range p.Steps {
			fmt.Fprintf(out, "  %s\n", step)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func printProblem(out io.Writer, n, total int, p problemgen.Problem) {
	fmt.Fprintf(out, "── Problem %d/%d ──\n", n, total)
	fmt.Fprintln(out, p.Text)
	for j, o := range p.Options {
		fmt.Fprintf(out, "  %d) %d\n", j+1, o)
	}
}

func answerText(p problemgen.Problem) string {
	if p.Category == problemgen.CategoryLongDivision && p.Remainder > 0 {
		return fmt.Sprintf("%d R%d", p.Answer, p.Remainder)
	}
	return fmt.Sprintf("%d", p.Answer)
}

// runQuiz asks each problem on out and reads answers from in. An answer
// may be the value or "#n" for the n-th option.
func runQuiz(out io.Writer, in io.Reader, tier problemgen.Tier, cat problemgen.Category, batch []problemgen.Problem) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintf(out, "%s · %s · answer with the value or #n\n\n", tier, cat)

	var correct, score, asked int
	for i, p := range batch {
		printProblem(out, i+1, len(batch), p)
		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		asked++
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprintln(out, "(skipped)")
			fmt.Fprintln(out)
			continue
		}

		if problemgen.CheckAnswerText(answer, &p) {
			correct++
			score += p.Points
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", answerText(p))
		}
		for _, step := range p.Steps {
			fmt.Fprintf(out, "  %s\n", step)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct, %d points ──\n", correct, asked, score)
	return scanner.Err()
}
