package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/examtrainer/internal/quiz"
)

// runLineQuiz drives the engine from line input until the quiz completes
// or the learner pauses with "q" (or input ends). A paused quiz stays
// checkpointed.
func runLineQuiz(ctx context.Context, e *env, in io.Reader, out io.Writer) error {
	eng := e.engine
	sc := bufio.NewScanner(in)

	for eng.Phase().Active() {
		switch eng.Phase() {
		case quiz.PhaseAwaitingAnswer:
			printQuestion(out, e, eng)
			fmt.Fprint(out, "Answer [A-D, q to pause]: ")
			if !sc.Scan() {
				return pause(out, sc.Err())
			}
			input := strings.ToUpper(strings.TrimSpace(sc.Text()))
			if input == "Q" {
				return pause(out, nil)
			}
			if err := eng.SelectAnswer(input); err != nil {
				fmt.Fprintf(out, "  %v\n", err)
				continue
			}
			if _, err := eng.SubmitAnswer(ctx); err != nil {
				fmt.Fprintf(out, "  warning: %v\n", err)
			}

		case quiz.PhaseShowingFeedback:
			printFeedback(out, eng)
			fmt.Fprint(out, "Press Enter to continue (q to pause): ")
			if !sc.Scan() {
				return pause(out, sc.Err())
			}
			if strings.EqualFold(strings.TrimSpace(sc.Text()), "q") {
				return pause(out, nil)
			}
			if err := eng.NextQuestion(ctx); err != nil {
				return err
			}
		}
	}

	if res := eng.Results(); res != nil {
		printResult(out, res)
	}
	return nil
}

func pause(out io.Writer, err error) error {
	if err != nil {
		return fmt.Errorf("read answer: %w", err)
	}
	fmt.Fprintln(out, "\nPaused. Continue with: examtrainer quiz resume")
	return nil
}

func printQuestion(out io.Writer, e *env, eng *quiz.Engine) {
	q := eng.Current()
	fmt.Fprintf(out, "\nQuestion %d of %d", eng.CurrentNumber(), eng.Total())
	if view, err := e.view(); err == nil {
		if c, ok := view.CategoryFor(q.Question.Number); ok {
			fmt.Fprintf(out, "  [%s]", c.Name)
		}
	}
	fmt.Fprintf(out, "  #%d\n%s\n", q.Question.Number, q.Question.Text)
	for _, c := range q.Choices {
		fmt.Fprintf(out, "  %s) %s\n", c.Label, c.Text)
	}
}

func printFeedback(out io.Writer, eng *quiz.Engine) {
	a := eng.LastAnswer()
	if a == nil {
		return
	}
	if a.IsCorrect {
		fmt.Fprintln(out, "  Correct!")
		return
	}
	q := eng.Current()
	correct, _ := q.Choice(q.CorrectLabel())
	fmt.Fprintf(out, "  Wrong. Correct answer: %s) %s\n", correct.Label, correct.Text)
}

func printResult(out io.Writer, res *quiz.Result) {
	s := res.Session
	fmt.Fprintln(out, "\nQuiz complete")
	fmt.Fprintf(out, "  Correct: %d\n", s.CorrectCount)
	fmt.Fprintf(out, "  Wrong:   %d\n", s.WrongCount)
	fmt.Fprintf(out, "  Score:   %.0f%%\n", res.Percent)
}
