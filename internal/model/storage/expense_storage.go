package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/entity/finance"
)

const (
	expenseTable     = "expense"
	expenseIDColumn  = "expense_id"
	expenseDateCol   = "dateincurred"
	expenseIDPrompt  = "Enter Expense ID: "
	opFindExpenses   = "findAllExpenses"
	opSpendExpenses  = "findAllExpensesAndCalculateSpend"
	opMonthlyExpense = "findMonthlyExpense"
	opAddExpense     = "addExpense"
	opDeleteExpense  = "deleteExpense"
)

var expenseColumns = []string{expenseIDColumn, "title", "category", amountColumn, expenseDateCol}

// ExpenseStorage is the SQL ExpenseRepository.
type ExpenseStorage struct {
	sqlStorage
	input inputReader
}

func NewExpenseStorage(pool ConnectionProvider, dialect Dialect, input inputReader) *ExpenseStorage {
	return &ExpenseStorage{
		sqlStorage: sqlStorage{
			pool:    pool,
			dialect: dialect,
			table:   expenseTable,
			idCol:   expenseIDColumn,
			dateCol: expenseDateCol,
		},
		input: input,
	}
}

func (s *ExpenseStorage) FindAll(ctx context.Context) ([]finance.Expense, error) {
	q := s.dialect.builder.Select(expenseColumns...).
		From(expenseTable).
		OrderBy(expenseIDColumn)

	var exps []finance.Expense
	err := s.withConn(ctx, opFindExpenses, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := queryRows(ctx, conn, q)
		if err != nil {
			return err
		}
		defer closeRows(rows)

		res := make([]finance.Expense, 0)
		for rows.Next() {
			var e finance.Expense
			if err = rows.Scan(&e.ID, &e.Title, &e.Category, &e.Amount, &e.DateIncurred); err != nil {
				return errors.Wrap(err, "scan expense")
			}
			res = append(res, e)
		}
		if err = rows.Err(); err != nil {
			return err
		}
		exps = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exps, nil
}

func (s *ExpenseStorage) FindMonthly(ctx context.Context, month, year int) (finance.Aggregate, error) {
	return s.findMonthly(ctx, opMonthlyExpense, month, year)
}

func (s *ExpenseStorage) FindAllAndAggregate(ctx context.Context) (finance.Aggregate, error) {
	return s.findAggregate(ctx, opSpendExpenses, nil)
}

func (s *ExpenseStorage) Add(ctx context.Context) (WriteResult, error) {
	return addExpense(ctx, s.input, s.Create)
}

func (s *ExpenseStorage) Delete(ctx context.Context) (WriteResult, error) {
	return deleteByID(ctx, s.input, expenseIDPrompt, s.Remove)
}

func (s *ExpenseStorage) Create(ctx context.Context, e finance.Expense) (WriteResult, error) {
	if err := validateRecord(e); err != nil {
		return WriteResult{}, err
	}
	return s.insert(ctx, opAddExpense, expenseColumns[1:], e.Title, e.Category, e.Amount, e.DateIncurred)
}

func (s *ExpenseStorage) Remove(ctx context.Context, id int64) (WriteResult, error) {
	return s.remove(ctx, opDeleteExpense, id)
}

var _ ExpenseRepository = (*ExpenseStorage)(nil)
