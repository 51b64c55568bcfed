package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/input"
	"max.ks1230/finance-tracker/internal/model/netincome"
	"max.ks1230/finance-tracker/internal/model/storage"
)

const exitChoice = 0

type handler func(ctx context.Context) error

type entry struct {
	label  string
	handle handler
}

type menu struct {
	entries  map[int]entry
	choices  []string
	expenses storage.ExpenseRepository
	incomes  storage.IncomeRepository
	calc     *netincome.Calculator
	in       *input.Reader
	out      io.Writer
}

func newMenu(expenses storage.ExpenseRepository, incomes storage.IncomeRepository,
	calc *netincome.Calculator, in *input.Reader, out io.Writer) *menu {
	m := &menu{
		expenses: expenses,
		incomes:  incomes,
		calc:     calc,
		in:       in,
		out:      out,
	}
	m.entries = map[int]entry{
		1: {"Add Expense", m.addExpense},
		2: {"Add Income", m.addIncome},
		3: {"Delete Expense", m.deleteExpense},
		4: {"Delete Income", m.deleteIncome},
		5: {"View All Expenses", m.listExpenses},
		6: {"View All Incomes", m.listIncomes},
		7: {"Calculate Net Income", m.netIncome},
		8: {"Total Expenses", m.totalExpenses},
		9: {"Total Incomes", m.totalIncomes},
	}
	for i := 1; i <= len(m.entries); i++ {
		m.choices = append(m.choices, fmt.Sprintf("%d. %s", i, m.entries[i].label))
	}
	m.choices = append(m.choices, fmt.Sprintf("%d. Exit", exitChoice))
	return m
}

// run serves menu choices until Exit or end of input. A failed choice is
// reported and the menu continues.
func (m *menu) run(ctx context.Context) {
	for {
		choice, err := m.in.ReadChoice(m.choices, exitChoice, len(m.entries))
		if err != nil {
			if !errors.Is(err, input.ErrInputClosed) {
				logger.Error("menu input failed", zap.Error(err))
			}
			return
		}
		if choice == exitChoice {
			return
		}

		err = m.entries[choice].handle(ctx)
		if errors.Is(err, input.ErrInputClosed) {
			return
		}
		if err != nil {
			m.report(choice, err)
		}
	}
}

func (m *menu) report(choice int, err error) {
	var daErr *customerr.DataAccessError
	var valErr *customerr.ValidationError
	switch {
	case errors.As(err, &daErr):
		logger.Error("data access failed", zap.String("op", daErr.Op), zap.Error(daErr.Err))
		fmt.Fprintf(m.out, "Could not complete %q: %v\n", m.entries[choice].label, err)
	case errors.As(err, &valErr):
		fmt.Fprintln(m.out, valErr.Error())
	default:
		logger.Error("menu choice failed", zap.Int("choice", choice), zap.Error(err))
		fmt.Fprintf(m.out, "Something went wrong: %v\n", err)
	}
}

func (m *menu) addExpense(ctx context.Context) error {
	res, err := m.expenses.Add(ctx)
	if err != nil {
		return err
	}
	m.reportWrite(res, "Expense added successfully! ID: %d\n", "Expense was not added.\n")
	return nil
}

func (m *menu) addIncome(ctx context.Context) error {
	res, err := m.incomes.Add(ctx)
	if err != nil {
		return err
	}
	m.reportWrite(res, "Income added successfully! ID: %d\n", "Income was not added.\n")
	return nil
}

func (m *menu) deleteExpense(ctx context.Context) error {
	res, err := m.expenses.Delete(ctx)
	if err != nil {
		return err
	}
	m.reportWrite(res, "Expense %d deleted successfully!\n", "No expense with that ID.\n")
	return nil
}

func (m *menu) deleteIncome(ctx context.Context) error {
	res, err := m.incomes.Delete(ctx)
	if err != nil {
		return err
	}
	m.reportWrite(res, "Income %d deleted successfully!\n", "No income with that ID.\n")
	return nil
}

func (m *menu) reportWrite(res storage.WriteResult, okFormat, failMessage string) {
	if res.OK() {
		fmt.Fprintf(m.out, okFormat, res.ID)
		return
	}
	fmt.Fprint(m.out, failMessage)
}

func (m *menu) listExpenses(ctx context.Context) error {
	exps, err := m.expenses.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, e := range exps {
		fmt.Fprintln(m.out, e)
	}
	return nil
}

func (m *menu) listIncomes(ctx context.Context) error {
	incs, err := m.incomes.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, i := range incs {
		fmt.Fprintln(m.out, i)
	}
	return nil
}

func (m *menu) netIncome(ctx context.Context) error {
	net, err := m.calc.CalculateNetIncome(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "\nNet income for the month: %v\n\n", net)
	return nil
}

func (m *menu) totalExpenses(ctx context.Context) error {
	agg, err := m.expenses.FindAllAndAggregate(ctx)
	if err != nil {
		return err
	}
	netincome.Print(m.out, "Expenses", agg)
	return nil
}

func (m *menu) totalIncomes(ctx context.Context) error {
	agg, err := m.incomes.FindAllAndAggregate(ctx)
	if err != nil {
		return err
	}
	netincome.Print(m.out, "Incomes", agg)
	return nil
}
