package storage

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/customerr"
)

const amountColumn = "amount"

// sqlStorage is shared by the SQL repositories. Each public repository
// operation runs inside withConn and so owns exactly one connection.
type sqlStorage struct {
	pool    ConnectionProvider
	dialect Dialect
	table   string
	idCol   string
	dateCol string
}

func (s *sqlStorage) withConn(ctx context.Context, op string, fn func(ctx context.Context, conn *sql.Conn) error) (err error) {
	logger.Info(op + " - start")
	defer logger.Info(op + " - end")

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()
	span.SetTag("db.type", s.dialect.name)

	start := time.Now()
	defer func() {
		observeOperation(op, time.Since(start), err != nil)
		if err != nil {
			ext.Error.Set(span, true)
			logger.Error("storage operation failed", zap.String("op", op), zap.Error(err))
		}
	}()

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return customerr.DataAccess(op, err)
	}
	defer s.pool.Release(conn)

	if err = fn(ctx, conn); err != nil {
		return customerr.DataAccess(op, err)
	}
	return nil
}

func (s *sqlStorage) findAggregate(ctx context.Context, op string, where sq.Sqlizer) (finance.Aggregate, error) {
	q := s.dialect.builder.Select(amountColumn).
		From(s.table).
		OrderBy(s.idCol)
	if where != nil {
		q = q.Where(where)
	}

	var agg finance.Aggregate
	err := s.withConn(ctx, op, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := queryRows(ctx, conn, q)
		if err != nil {
			return err
		}
		defer closeRows(rows)

		res := finance.NewAggregate()
		for rows.Next() {
			var amount float64
			if err = rows.Scan(&amount); err != nil {
				return errors.Wrap(err, "scan amount")
			}
			res.Add(amount)
		}
		if err = rows.Err(); err != nil {
			return err
		}
		agg = res
		return nil
	})
	if err != nil {
		return finance.Aggregate{}, err
	}
	return agg, nil
}

func (s *sqlStorage) findMonthly(ctx context.Context, op string, month, year int) (finance.Aggregate, error) {
	if err := validatePeriod(month, year); err != nil {
		return finance.Aggregate{}, err
	}
	return s.findAggregate(ctx, op, s.dialect.monthFilter(s.dateCol, month, year))
}

func (s *sqlStorage) insert(ctx context.Context, op string, columns []string, values ...any) (WriteResult, error) {
	q := s.dialect.builder.Insert(s.table).
		Columns(columns...).
		Values(values...)

	var res WriteResult
	err := s.withConn(ctx, op, func(ctx context.Context, conn *sql.Conn) error {
		if s.dialect.returningID {
			query, args, err := q.Suffix("RETURNING " + s.idCol).ToSql()
			if err != nil {
				return errors.Wrap(err, "build insert")
			}
			if err = conn.QueryRowContext(ctx, query, args...).Scan(&res.ID); err != nil {
				return err
			}
			res.RowsAffected = 1
			return nil
		}

		result, err := execStatement(ctx, conn, q)
		if err != nil {
			return err
		}
		if res.ID, err = result.LastInsertId(); err != nil {
			return errors.Wrap(err, "last insert id")
		}
		res.RowsAffected, err = result.RowsAffected()
		return errors.Wrap(err, "rows affected")
	})
	if err != nil {
		return WriteResult{}, err
	}
	return res, nil
}

func (s *sqlStorage) remove(ctx context.Context, op string, id int64) (WriteResult, error) {
	q := s.dialect.builder.Delete(s.table).
		Where(sq.Eq{s.idCol: id})

	res := WriteResult{ID: id}
	err := s.withConn(ctx, op, func(ctx context.Context, conn *sql.Conn) error {
		result, err := execStatement(ctx, conn, q)
		if err != nil {
			return err
		}
		res.RowsAffected, err = result.RowsAffected()
		return errors.Wrap(err, "rows affected")
	})
	if err != nil {
		return WriteResult{}, err
	}
	return res, nil
}

func queryRows(ctx context.Context, conn *sql.Conn, q sq.Sqlizer) (*sql.Rows, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build query")
	}
	return conn.QueryContext(ctx, query, args...)
}

func execStatement(ctx context.Context, conn *sql.Conn, q sq.Sqlizer) (sql.Result, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build statement")
	}
	return conn.ExecContext(ctx, query, args...)
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logger.Error("error closing rows", zap.Error(err))
	}
}
