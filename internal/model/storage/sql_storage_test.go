package storage

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/input"
)

type countingPool struct {
	pool     *Pool
	acquired int
	released int
}

func (p *countingPool) Acquire(ctx context.Context) (*sql.Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err == nil {
		p.acquired++
	}
	return conn, err
}

func (p *countingPool) Release(conn *sql.Conn) {
	p.released++
	p.pool.Release(conn)
}

func newMockPool(t *testing.T) (*countingPool, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &countingPool{pool: &Pool{db}}, mock
}

func newTestInput(lines ...string) *input.Reader {
	return input.New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &strings.Builder{})
}

var selectExpenses = regexp.QuoteMeta("SELECT expense_id, title, category, amount, dateincurred FROM expense ORDER BY expense_id")

func Test_OnFindAll_ShouldReturnExpensesInStoreOrder(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectQuery(selectExpenses).
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow(int64(1), "Rent", "Housing", 800.0, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)).
			AddRow(int64(2), "Coffee", "Food", 3.5, "2024-03-02"))

	exps, err := NewExpenseStorage(pool, Postgres, nil).FindAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []finance.Expense{
		finance.NewExpense(1, "Rent", "Housing", 800, finance.NewDate(2024, time.March, 1)),
		finance.NewExpense(2, "Coffee", "Food", 3.5, finance.NewDate(2024, time.March, 2)),
	}, exps)
	assert.Equal(t, 1, pool.acquired)
	assert.Equal(t, 1, pool.released)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_OnFindAll_ShouldReturnEmptySliceWhenNoRows(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectQuery(selectExpenses).WillReturnRows(sqlmock.NewRows(expenseColumns))

	exps, err := NewExpenseStorage(pool, Postgres, nil).FindAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, exps)
	assert.Empty(t, exps)
}

func Test_OnFindAllFailure_ShouldWrapErrorAndReleaseConnection(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectQuery(selectExpenses).WillReturnError(errors.New("connection lost"))

	exps, err := NewExpenseStorage(pool, Postgres, nil).FindAll(context.Background())

	assert.Nil(t, exps)
	var daErr *customerr.DataAccessError
	require.True(t, errors.As(err, &daErr))
	assert.Equal(t, "findAllExpenses", daErr.Op)
	assert.Contains(t, err.Error(), "connection lost")
	assert.Equal(t, pool.acquired, pool.released)
	assert.Equal(t, 1, pool.released)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_OnAcquireFailure_ShouldReturnDataAccessError(t *testing.T) {
	pool, _ := newMockPool(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewIncomeStorage(pool, Postgres, nil).FindAll(ctx)

	var daErr *customerr.DataAccessError
	require.True(t, errors.As(err, &daErr))
	assert.Equal(t, "findAllIncomes", daErr.Op)
	assert.Equal(t, 0, pool.acquired)
	assert.Equal(t, 0, pool.released)
}

func Test_OnFindMonthly_ShouldReturnAmountsAndTheirTotal(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT amount FROM expense WHERE EXTRACT(MONTH FROM dateincurred) = $1 AND EXTRACT(YEAR FROM dateincurred) = $2")).
		WithArgs(3, 2024).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(100.5).AddRow(200.25).AddRow(50.0))

	agg, err := NewExpenseStorage(pool, Postgres, nil).FindMonthly(context.Background(), 3, 2024)

	require.NoError(t, err)
	assert.Equal(t, []float64{100.5, 200.25, 50}, agg.Amounts())
	assert.InDelta(t, 350.75, agg.Total(), 1e-9)
	assert.Equal(t, 1, pool.released)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_OnFindMonthly_ShouldTotalEveryMonth(t *testing.T) {
	pool, mock := newMockPool(t)
	storage := NewIncomeStorage(pool, Postgres, nil)

	for month := 1; month <= 12; month++ {
		rows := sqlmock.NewRows([]string{"amount"})
		sum := 0.0
		for k := 0; k < month; k++ {
			am := float64(month*10+k) + 0.1
			rows.AddRow(am)
			sum += am
		}
		mock.ExpectQuery(regexp.QuoteMeta("SELECT amount FROM income WHERE")).
			WithArgs(month, 2023).
			WillReturnRows(rows)

		agg, err := storage.FindMonthly(context.Background(), month, 2023)
		require.NoError(t, err)

		preceding := 0.0
		for _, am := range agg.Amounts() {
			preceding += am
		}
		assert.InDelta(t, preceding, agg.Total(), 1e-9)
		assert.InDelta(t, sum, agg.Total(), 1e-9)
	}
	assert.Equal(t, 12, pool.acquired)
	assert.Equal(t, 12, pool.released)
}

func Test_OnFindMonthlyWithoutRows_ShouldReturnZeroTotal(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT amount FROM income WHERE")).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}))

	agg, err := NewIncomeStorage(pool, Postgres, nil).FindMonthly(context.Background(), 1, 2020)

	require.NoError(t, err)
	assert.False(t, agg.Empty())
	assert.Equal(t, 0, agg.Len())
	assert.Equal(t, 0.0, agg.Total())
}

func Test_OnFindMonthlyWithBadMonth_ShouldNotTouchStore(t *testing.T) {
	pool, _ := newMockPool(t)

	_, err := NewExpenseStorage(pool, Postgres, nil).FindMonthly(context.Background(), 13, 2024)

	var valErr *customerr.ValidationError
	assert.True(t, errors.As(err, &valErr))
	assert.Equal(t, 0, pool.acquired)
}

func Test_OnRowErrorMidAggregate_ShouldDiscardPartialResult(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT amount FROM expense ORDER BY expense_id")).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).
			AddRow(10.0).
			AddRow(20.0).
			RowError(1, errors.New("network reset")))

	agg, err := NewExpenseStorage(pool, Postgres, nil).FindAllAndAggregate(context.Background())

	var daErr *customerr.DataAccessError
	require.True(t, errors.As(err, &daErr))
	assert.Equal(t, "findAllExpensesAndCalculateSpend", daErr.Op)
	assert.True(t, agg.Empty())
	assert.Equal(t, 1, pool.released)
}

func Test_OnFindAllAndAggregate_ShouldTotalWholeTable(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT amount FROM income ORDER BY income_id")).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(1000.0).AddRow(250.0))

	agg, err := NewIncomeStorage(pool, Postgres, nil).FindAllAndAggregate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 250}, agg.Amounts())
	assert.Equal(t, 1250.0, agg.Total())
}

func Test_OnAdd_ShouldCaptureFieldsAndInsertRow(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectQuery("INSERT INTO expense .*RETURNING expense_id").
		WithArgs("Rent", "Housing", 800.0, "2024-03-01").
		WillReturnRows(sqlmock.NewRows([]string{expenseIDColumn}).AddRow(int64(7)))

	in := newTestInput("Rent", "Housing", "eight hundred", "800", "2024-02-30", "2024-03-01")
	res, err := NewExpenseStorage(pool, Postgres, in).Add(context.Background())

	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, int64(7), res.ID)
	assert.Equal(t, 1, pool.released)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_OnAddIncome_ShouldAllowNegativeAmount(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectQuery("INSERT INTO income .*RETURNING income_id").
		WithArgs("Refund correction", -25.5, "2024-05-10").
		WillReturnRows(sqlmock.NewRows([]string{incomeIDColumn}).AddRow(int64(3)))

	in := newTestInput("Refund correction", "-25.5", "2024-05-10")
	res, err := NewIncomeStorage(pool, Postgres, in).Add(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), res.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_OnAddWithClosedInput_ShouldNotTouchStore(t *testing.T) {
	pool, _ := newMockPool(t)
	in := input.New(strings.NewReader("Rent\n"), &strings.Builder{})

	_, err := NewExpenseStorage(pool, Postgres, in).Add(context.Background())

	assert.ErrorIs(t, err, input.ErrInputClosed)
	assert.Equal(t, 0, pool.acquired)
}

func Test_OnCreateWithBlankTitle_ShouldFailValidation(t *testing.T) {
	pool, _ := newMockPool(t)
	e := finance.NewExpense(0, "   ", "Food", 5, finance.NewDate(2024, time.January, 1))

	_, err := NewExpenseStorage(pool, Postgres, nil).Create(context.Background(), e)

	var valErr *customerr.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "Title", valErr.Field)
	assert.Equal(t, 0, pool.acquired)
}

func Test_OnCreateWithoutDate_ShouldFailValidation(t *testing.T) {
	pool, _ := newMockPool(t)

	_, err := NewIncomeStorage(pool, Postgres, nil).Create(context.Background(), finance.NewIncome(0, "Salary", 10, finance.Date{}))

	var valErr *customerr.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "DateEarned", valErr.Field)
}

func Test_OnInsertFailure_ShouldWrapConstraintError(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectQuery("INSERT INTO income").
		WillReturnError(errors.New(`null value in column "amount" violates not-null constraint`))

	_, err := NewIncomeStorage(pool, Postgres, nil).
		Create(context.Background(), finance.NewIncome(0, "Salary", 10, finance.NewDate(2024, time.June, 1)))

	var daErr *customerr.DataAccessError
	require.True(t, errors.As(err, &daErr))
	assert.Equal(t, "addIncome", daErr.Op)
	assert.Equal(t, 1, pool.acquired)
	assert.Equal(t, 1, pool.released)
}

func Test_OnDeleteMissingID_ShouldReportZeroRowsWithoutError(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM expense WHERE expense_id = $1")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	in := newTestInput("abc", "0", "99")
	res, err := NewExpenseStorage(pool, Postgres, in).Delete(context.Background())

	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, int64(0), res.RowsAffected)
	assert.Equal(t, 1, pool.released)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_OnDeleteFailure_ShouldWrapError(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM income WHERE income_id = $1")).
		WithArgs(int64(4)).
		WillReturnError(errors.New("syntax error"))

	_, err := NewIncomeStorage(pool, Postgres, nil).Remove(context.Background(), 4)

	var daErr *customerr.DataAccessError
	require.True(t, errors.As(err, &daErr))
	assert.Equal(t, "deleteIncome", daErr.Op)
	assert.Equal(t, 1, pool.released)
}

func Test_OnAddThenDelete_ShouldKeepCardinality(t *testing.T) {
	pool, mock := newMockPool(t)
	storage := NewIncomeStorage(pool, Postgres, nil)
	existing := func() *sqlmock.Rows {
		return sqlmock.NewRows(incomeColumns).
			AddRow(int64(1), "Salary", 2000.0, "2024-01-31").
			AddRow(int64(2), "Bonus", 300.0, "2024-02-15")
	}
	selectIncomes := regexp.QuoteMeta("SELECT income_id, title, amount, dateearned FROM income")

	mock.ExpectQuery(selectIncomes).WillReturnRows(existing())
	mock.ExpectQuery("INSERT INTO income").
		WillReturnRows(sqlmock.NewRows([]string{incomeIDColumn}).AddRow(int64(3)))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM income WHERE income_id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectIncomes).WillReturnRows(existing())

	ctx := context.Background()
	before, err := storage.FindAll(ctx)
	require.NoError(t, err)
	added, err := storage.Create(ctx, finance.NewIncome(0, "Gift", 50, finance.NewDate(2024, time.March, 3)))
	require.NoError(t, err)
	deleted, err := storage.Remove(ctx, added.ID)
	require.NoError(t, err)
	after, err := storage.FindAll(ctx)
	require.NoError(t, err)

	assert.True(t, deleted.OK())
	assert.Len(t, after, len(before))
	assert.Equal(t, 4, pool.acquired)
	assert.Equal(t, 4, pool.released)
	assert.NoError(t, mock.ExpectationsWereMet())
}
