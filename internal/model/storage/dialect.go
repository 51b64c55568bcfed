package storage

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jinzhu/now"
	"max.ks1230/finance-tracker/internal/entity/finance"
)

// Dialect captures what differs between backing stores: driver, placeholders,
// how inserted ids come back and how a date column is matched against a month.
type Dialect struct {
	name        string
	driver      string
	builder     sq.StatementBuilderType
	returningID bool
	monthFilter func(column string, month, year int) sq.Sqlizer
}

var Postgres = Dialect{
	name:        "postgres",
	driver:      "postgres",
	builder:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	returningID: true,
	monthFilter: func(column string, month, year int) sq.Sqlizer {
		return sq.Expr("EXTRACT(MONTH FROM "+column+") = ? AND EXTRACT(YEAR FROM "+column+") = ?", month, year)
	},
}

// SQLite keeps dates as ISO text, so a month is the half-open range from its
// first day to the first day of the next month. Text with a time part still sorts inside it.
var SQLite = Dialect{
	name:    "sqlite",
	driver:  "sqlite",
	builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	monthFilter: func(column string, month, year int) sq.Sqlizer {
		begin, end := monthBounds(month, year)
		return sq.And{sq.GtOrEq{column: begin}, sq.Lt{column: end}}
	},
}

func (d Dialect) Name() string {
	return d.name
}

// monthBounds returns the first day of the month and the first day of the next one.
func monthBounds(month, year int) (begin, end string) {
	m := now.With(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
	next := m.EndOfMonth().Add(time.Nanosecond)
	return m.BeginningOfMonth().Format(finance.DateLayout), next.Format(finance.DateLayout)
}
