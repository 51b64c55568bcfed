package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/entity/finance"
)

const (
	incomeTable     = "income"
	incomeIDColumn  = "income_id"
	incomeDateCol   = "dateearned"
	incomeIDPrompt  = "Enter Income ID: "
	opFindIncomes   = "findAllIncomes"
	opGainIncomes   = "findAllIncomesAndCalculateGain"
	opMonthlyIncome = "findMonthlyIncome"
	opAddIncome     = "addIncome"
	opDeleteIncome  = "deleteIncome"
)

var incomeColumns = []string{incomeIDColumn, "title", amountColumn, incomeDateCol}

// IncomeStorage is the SQL IncomeRepository.
type IncomeStorage struct {
	sqlStorage
	input inputReader
}

func NewIncomeStorage(pool ConnectionProvider, dialect Dialect, input inputReader) *IncomeStorage {
	return &IncomeStorage{
		sqlStorage: sqlStorage{
			pool:    pool,
			dialect: dialect,
			table:   incomeTable,
			idCol:   incomeIDColumn,
			dateCol: incomeDateCol,
		},
		input: input,
	}
}

func (s *IncomeStorage) FindAll(ctx context.Context) ([]finance.Income, error) {
	q := s.dialect.builder.Select(incomeColumns...).
		From(incomeTable).
		OrderBy(incomeIDColumn)

	var incs []finance.Income
	err := s.withConn(ctx, opFindIncomes, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := queryRows(ctx, conn, q)
		if err != nil {
			return err
		}
		defer closeRows(rows)

		res := make([]finance.Income, 0)
		for rows.Next() {
			var i finance.Income
			if err = rows.Scan(&i.ID, &i.Title, &i.Amount, &i.DateEarned); err != nil {
				return errors.Wrap(err, "scan income")
			}
			res = append(res, i)
		}
		if err = rows.Err(); err != nil {
			return err
		}
		incs = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return incs, nil
}

func (s *IncomeStorage) FindMonthly(ctx context.Context, month, year int) (finance.Aggregate, error) {
	return s.findMonthly(ctx, opMonthlyIncome, month, year)
}

func (s *IncomeStorage) FindAllAndAggregate(ctx context.Context) (finance.Aggregate, error) {
	return s.findAggregate(ctx, opGainIncomes, nil)
}

func (s *IncomeStorage) Add(ctx context.Context) (WriteResult, error) {
	return addIncome(ctx, s.input, s.Create)
}

func (s *IncomeStorage) Delete(ctx context.Context) (WriteResult, error) {
	return deleteByID(ctx, s.input, incomeIDPrompt, s.Remove)
}

func (s *IncomeStorage) Create(ctx context.Context, i finance.Income) (WriteResult, error) {
	if err := validateRecord(i); err != nil {
		return WriteResult{}, err
	}
	return s.insert(ctx, opAddIncome, incomeColumns[1:], i.Title, i.Amount, i.DateEarned)
}

func (s *IncomeStorage) Remove(ctx context.Context, id int64) (WriteResult, error) {
	return s.remove(ctx, opDeleteIncome, id)
}

var _ IncomeRepository = (*IncomeStorage)(nil)
