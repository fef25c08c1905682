package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/shopspring/decimal"
)

// Tracker is the part of the expense service the shell drives.
type Tracker interface {
	AddExpense(ctx context.Context, amount decimal.Decimal, date model.Date, categoryName, note string) (model.Transaction, error)
	AddCategory(ctx context.Context, name string) (model.Category, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetExpenses(ctx context.Context, r model.DateRange) ([]model.Transaction, error)
	Today() model.Date
}

// errQuit ends the menu loop without an error.
var errQuit = errors.New("quit")

// Shell is the interactive text menu.
type Shell struct {
	tracker Tracker
	input   *LineReader
	out     io.Writer
}

// NewShell creates a shell reading answers from in and writing to out.
func NewShell(tracker Tracker, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		tracker: tracker,
		input:   NewLineReader(in),
		out:     out,
	}
}

// Run shows the menu until the user exits, input ends or ctx is canceled.
// Validation problems are printed and the menu is shown again; any other error
// stops the loop and is returned.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.printMenu()

		choice, err := s.input.Prompt(ctx, s.out, "Select an option:")
		if err != nil {
			return s.endOfInput(err)
		}

		var actionErr error
		switch choice {
		case "1":
			actionErr = s.addExpense(ctx)
		case "2":
			actionErr = s.listExpenses(ctx)
		case "3":
			actionErr = s.addCategory(ctx)
		case "4":
			actionErr = s.listCategories(ctx)
		case "0":
			fmt.Fprintln(s.out, SubtleStyle.Render("Goodbye."))
			return nil
		default:
			fmt.Fprintln(s.out, FormatWarning("Invalid option."))
			continue
		}

		switch {
		case actionErr == nil:
		case errors.Is(actionErr, errQuit):
			return nil
		case common.IsValidation(actionErr):
			fmt.Fprintln(s.out, FormatError(actionErr.Error()))
		default:
			return actionErr
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, TitleStyle.Render("==== Expense Tracker ===="))
	fmt.Fprintln(s.out, "1) Add Expense")
	fmt.Fprintln(s.out, "2) List Expenses")
	fmt.Fprintln(s.out, "3) Add Category")
	fmt.Fprintln(s.out, "4) List Categories")
	fmt.Fprintln(s.out, "0) Exit")
}

// endOfInput maps a read failure to the loop result: running out of input or being
// canceled ends the session normally.
func (s *Shell) endOfInput(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, ErrInputCancelled) {
		fmt.Fprintln(s.out)
		return nil
	}
	return fmt.Errorf("failed to read input: %w", err)
}

func (s *Shell) ask(ctx context.Context, label string) (string, error) {
	answer, err := s.input.Prompt(ctx, s.out, label)
	if err != nil {
		if endErr := s.endOfInput(err); endErr != nil {
			return "", endErr
		}
		return "", errQuit
	}
	return answer, nil
}

func (s *Shell) addExpense(ctx context.Context) error {
	rawAmount, err := s.ask(ctx, "Amount:")
	if err != nil {
		return err
	}
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return err
	}

	rawDate, err := s.ask(ctx, "Date (YYYY-MM-DD, blank for today):")
	if err != nil {
		return err
	}
	date := s.tracker.Today()
	if rawDate != "" {
		if date, err = ParseDateInput(rawDate); err != nil {
			return err
		}
	}

	category, err := s.ask(ctx, "Category:")
	if err != nil {
		return err
	}
	note, err := s.ask(ctx, "Note (optional):")
	if err != nil {
		return err
	}

	if _, err := s.tracker.AddExpense(ctx, amount, date, category, note); err != nil {
		return err
	}

	fmt.Fprintln(s.out, FormatSuccess(fmt.Sprintf("Added %s to %s on %s", FormatAmount(amount), category, date)))
	return nil
}

func (s *Shell) listExpenses(ctx context.Context) error {
	expenses, err := s.tracker.GetExpenses(ctx, model.DateRange{})
	if err != nil {
		return err
	}
	cats, err := s.tracker.GetCategories(ctx)
	if err != nil {
		return err
	}
	return RenderExpenses(s.out, expenses, cats)
}

func (s *Shell) addCategory(ctx context.Context) error {
	name, err := s.ask(ctx, "Category name:")
	if err != nil {
		return err
	}

	cat, err := s.tracker.AddCategory(ctx, name)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, FormatSuccess(fmt.Sprintf("Category %q is ready", cat.Name)))
	return nil
}

func (s *Shell) listCategories(ctx context.Context) error {
	cats, err := s.tracker.GetCategories(ctx)
	if err != nil {
		return err
	}
	return RenderCategories(s.out, cats)
}

// ParseAmount parses a user-entered decimal amount. Sign checks are left to the
// service so every entry point reports the same error.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", common.ErrValidation, s)
	}
	return amount, nil
}

// ParseDateInput parses a user-entered YYYY-MM-DD date.
func ParseDateInput(s string) (model.Date, error) {
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return d, nil
}
