package storage

import (
	"context"

	"max.ks1230/finance-tracker/internal/entity/finance"
)

// InMemExpenseStorage keeps expenses in insertion order. Not safe for concurrent use.
type InMemExpenseStorage struct {
	expenses []finance.Expense
	lastID   int64
	input    inputReader
}

func NewInMemExpenseStorage(input inputReader) *InMemExpenseStorage {
	return &InMemExpenseStorage{
		expenses: make([]finance.Expense, 0),
		input:    input,
	}
}

func (s *InMemExpenseStorage) FindAll(_ context.Context) ([]finance.Expense, error) {
	res := make([]finance.Expense, len(s.expenses))
	copy(res, s.expenses)
	return res, nil
}

func (s *InMemExpenseStorage) FindMonthly(_ context.Context, month, year int) (finance.Aggregate, error) {
	if err := validatePeriod(month, year); err != nil {
		return finance.Aggregate{}, err
	}
	agg := finance.NewAggregate()
	for _, e := range s.expenses {
		if inPeriod(e.DateIncurred, month, year) {
			agg.Add(e.Amount)
		}
	}
	return agg, nil
}

func (s *InMemExpenseStorage) FindAllAndAggregate(_ context.Context) (finance.Aggregate, error) {
	agg := finance.NewAggregate()
	for _, e := range s.expenses {
		agg.Add(e.Amount)
	}
	return agg, nil
}

func (s *InMemExpenseStorage) Add(ctx context.Context) (WriteResult, error) {
	return addExpense(ctx, s.input, s.Create)
}

func (s *InMemExpenseStorage) Delete(ctx context.Context) (WriteResult, error) {
	return deleteByID(ctx, s.input, expenseIDPrompt, s.Remove)
}

func (s *InMemExpenseStorage) Create(_ context.Context, e finance.Expense) (WriteResult, error) {
	if err := validateRecord(e); err != nil {
		return WriteResult{}, err
	}
	s.lastID++
	e.SetID(s.lastID)
	s.expenses = append(s.expenses, e)
	return WriteResult{ID: e.ID, RowsAffected: 1}, nil
}

func (s *InMemExpenseStorage) Remove(_ context.Context, id int64) (WriteResult, error) {
	for idx, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:idx], s.expenses[idx+1:]...)
			return WriteResult{ID: id, RowsAffected: 1}, nil
		}
	}
	return WriteResult{ID: id}, nil
}

// InMemIncomeStorage keeps incomes in insertion order. Not safe for concurrent use.
type InMemIncomeStorage struct {
	incomes []finance.Income
	lastID  int64
	input   inputReader
}

func NewInMemIncomeStorage(input inputReader) *InMemIncomeStorage {
	return &InMemIncomeStorage{
		incomes: make([]finance.Income, 0),
		input:   input,
	}
}

func (s *InMemIncomeStorage) FindAll(_ context.Context) ([]finance.Income, error) {
	res := make([]finance.Income, len(s.incomes))
	copy(res, s.incomes)
	return res, nil
}

func (s *InMemIncomeStorage) FindMonthly(_ context.Context, month, year int) (finance.Aggregate, error) {
	if err := validatePeriod(month, year); err != nil {
		return finance.Aggregate{}, err
	}
	agg := finance.NewAggregate()
	for _, i := range s.incomes {
		if inPeriod(i.DateEarned, month, year) {
			agg.Add(i.Amount)
		}
	}
	return agg, nil
}

func (s *InMemIncomeStorage) FindAllAndAggregate(_ context.Context) (finance.Aggregate, error) {
	agg := finance.NewAggregate()
	for _, i := range s.incomes {
		agg.Add(i.Amount)
	}
	return agg, nil
}

func (s *InMemIncomeStorage) Add(ctx context.Context) (WriteResult, error) {
	return addIncome(ctx, s.input, s.Create)
}

func (s *InMemIncomeStorage) Delete(ctx context.Context) (WriteResult, error) {
	return deleteByID(ctx, s.input, incomeIDPrompt, s.Remove)
}

func (s *InMemIncomeStorage) Create(_ context.Context, i finance.Income) (WriteResult, error) {
	if err := validateRecord(i); err != nil {
		return WriteResult{}, err
	}
	s.lastID++
	i.SetID(s.lastID)
	s.incomes = append(s.incomes, i)
	return WriteResult{ID: i.ID, RowsAffected: 1}, nil
}

func (s *InMemIncomeStorage) Remove(_ context.Context, id int64) (WriteResult, error) {
	for idx, i := range s.incomes {
		if i.ID == id {
			s.incomes = append(s.incomes[:idx], s.incomes[idx+1:]...)
			return WriteResult{ID: id, RowsAffected: 1}, nil
		}
	}
	return WriteResult{ID: id}, nil
}

func inPeriod(d finance.Date, month, year int) bool {
	return int(d.Month()) == month && d.Year() == year
}

var (
	_ ExpenseRepository = (*InMemExpenseStorage)(nil)
	_ IncomeRepository  = (*InMemIncomeStorage)(nil)
)
