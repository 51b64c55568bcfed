package storage

import (
	"context"
	"database/sql"

	"max.ks1230/finance-tracker/internal/entity/finance"
)

// ConnectionProvider hands out pooled connections. Every Acquire is paired
// with exactly one Release.
type ConnectionProvider interface {
	Acquire(ctx context.Context) (*sql.Conn, error)
	Release(conn *sql.Conn)
}

type ExpenseRepository interface {
	FindAll(ctx context.Context) ([]finance.Expense, error)
	FindMonthly(ctx context.Context, month, year int) (finance.Aggregate, error)
	FindAllAndAggregate(ctx context.Context) (finance.Aggregate, error)
	Add(ctx context.Context) (WriteResult, error)
	Delete(ctx context.Context) (WriteResult, error)
	Create(ctx context.Context, e finance.Expense) (WriteResult, error)
	Remove(ctx context.Context, id int64) (WriteResult, error)
}

type IncomeRepository interface {
	FindAll(ctx context.Context) ([]finance.Income, error)
	FindMonthly(ctx context.Context, month, year int) (finance.Aggregate, error)
	FindAllAndAggregate(ctx context.Context) (finance.Aggregate, error)
	Add(ctx context.Context) (WriteResult, error)
	Delete(ctx context.Context) (WriteResult, error)
	Create(ctx context.Context, i finance.Income) (WriteResult, error)
	Remove(ctx context.Context, id int64) (WriteResult, error)
}

// WriteResult reports the outcome of an insert or delete. ID is the
// store-assigned id on insert and the requested id on delete.
type WriteResult struct {
	ID           int64
	RowsAffected int64
}

func (r WriteResult) OK() bool {
	return r.RowsAffected > 0
}
