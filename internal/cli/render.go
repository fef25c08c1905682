package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount with two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// RenderExpenses writes txns as a table followed by their total. Category names are
// looked up in cats; unknown ids are shown as such rather than failing.
func RenderExpenses(w io.Writer, txns []model.Transaction, cats []model.Category) error {
	if len(txns) == 0 {
		_, err := fmt.Fprintln(w, SubtleStyle.Render("No expenses found."))
		return err
	}

	names := make(map[uuid.UUID]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("Date"),
		HeaderStyle.Render("Amount"),
		HeaderStyle.Render("Category"),
		HeaderStyle.Render("Note"))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 10),
		strings.Repeat("-", 10),
		strings.Repeat("-", 15),
		strings.Repeat("-", 30))

	total := decimal.Zero
	for _, txn := range txns {
		name, ok := names[txn.CategoryID]
		if !ok {
			name = SubtleStyle.Render("(unknown)")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", txn.Date, FormatAmount(txn.Amount), name, txn.Note)
		total = total.Add(txn.Amount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s %s\n", TitleStyle.Render("Total:"), AmountStyle.Render(FormatAmount(total)))
	return err
}

// RenderCategories writes cats as a table.
func RenderCategories(w io.Writer, cats []model.Category) error {
	if len(cats) == 0 {
		_, err := fmt.Fprintln(w, SubtleStyle.Render("No categories found. Use 'expense categories add' to create one."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		HeaderStyle.Render("Name"),
		HeaderStyle.Render("Type"),
		HeaderStyle.Render("ID"))
	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		strings.Repeat("-", 20),
		strings.Repeat("-", 7),
		strings.Repeat("-", 36))

	for _, c := range cats {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Type, c.ID)
	}
	return tw.Flush()
}

// RenderTotals writes per-category totals sorted by name, then the grand total.
func RenderTotals(w io.Writer, totals map[string]decimal.Decimal, spent decimal.Decimal) error {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", HeaderStyle.Render("Category"), HeaderStyle.Render("Total"))
	fmt.Fprintf(tw, "%s\t%s\n", strings.Repeat("-", 20), strings.Repeat("-", 10))
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%s\n", name, FormatAmount(totals[name]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s %s\n", TitleStyle.Render("Total spent:"), AmountStyle.Render(FormatAmount(spent)))
	return err
}
