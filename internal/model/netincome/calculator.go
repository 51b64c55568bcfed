package netincome

import (
	"context"
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/logger"
)

// emptyTotal is reported for an aggregate that carries no total at all.
const emptyTotal = -1

type monthlyFinder interface {
	FindMonthly(ctx context.Context, month, year int) (finance.Aggregate, error)
}

type periodReader interface {
	ReadIntRange(prompt string, min, max int) (int, error)
}

type config interface {
	MaxYear() int
}

type Calculator struct {
	expenses monthlyFinder
	incomes  monthlyFinder
	input    periodReader
	out      io.Writer
	maxYear  int
}

// Result is the net income of one month. It is derived and never persisted.
type Result struct {
	Month        int
	Year         int
	TotalIncome  float64
	TotalExpense float64
	Net          float64
}

func NewCalculator(config config, expenses, incomes monthlyFinder, input periodReader, out io.Writer) *Calculator {
	return &Calculator{
		expenses: expenses,
		incomes:  incomes,
		input:    input,
		out:      out,
		maxYear:  config.MaxYear(),
	}
}

// CalculateNetIncome asks for a month and a year, prints both monthly
// aggregates and returns income minus expense.
func (c *Calculator) CalculateNetIncome(ctx context.Context) (float64, error) {
	month, err := c.input.ReadIntRange("Enter month: ", 1, 12)
	if err != nil {
		return 0, err
	}
	year, err := c.input.ReadIntRange("Enter year: ", 1, c.maxYear)
	if err != nil {
		return 0, err
	}

	incomes, expenses, err := c.monthly(ctx, month, year)
	if err != nil {
		return 0, err
	}
	Print(c.out, "Incomes", incomes)
	Print(c.out, "Expenses", expenses)

	return newResult(month, year, incomes, expenses).Net, nil
}

// Compute queries both repositories for the period without any console output.
func (c *Calculator) Compute(ctx context.Context, month, year int) (Result, error) {
	incomes, expenses, err := c.monthly(ctx, month, year)
	if err != nil {
		return Result{}, err
	}
	return newResult(month, year, incomes, expenses), nil
}

func (c *Calculator) monthly(ctx context.Context, month, year int) (incomes, expenses finance.Aggregate, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "calculateNetIncome")
	defer span.Finish()

	logger.Info("CalculateNetIncome - start", zap.Int("month", month), zap.Int("year", year))
	defer logger.Info("CalculateNetIncome - end")

	incomes, err = c.incomes.FindMonthly(ctx, month, year)
	if err != nil {
		return finance.Aggregate{}, finance.Aggregate{}, errors.Wrap(err, "calculate net income")
	}
	expenses, err = c.expenses.FindMonthly(ctx, month, year)
	if err != nil {
		return finance.Aggregate{}, finance.Aggregate{}, errors.Wrap(err, "calculate net income")
	}
	return incomes, expenses, nil
}

func newResult(month, year int, incomes, expenses finance.Aggregate) Result {
	totalIncome := ReduceToTotal(incomes)
	totalExpense := ReduceToTotal(expenses)
	return Result{
		Month:        month,
		Year:         year,
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Net:          totalIncome - totalExpense,
	}
}

// ReduceToTotal returns the aggregate total, or -1 when the aggregate is empty.
func ReduceToTotal(agg finance.Aggregate) float64 {
	if agg.Empty() {
		return emptyTotal
	}
	return agg.Total()
}
