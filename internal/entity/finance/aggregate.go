package finance

import "github.com/shopspring/decimal"

// Aggregate holds per-record amounts in store order together with their total.
// The zero value is empty: it was never filled by a query and has no total.
type Aggregate struct {
	amounts      []float64
	total        decimal.Decimal
	materialized bool
}

func NewAggregate() Aggregate {
	return Aggregate{
		amounts:      make([]float64, 0),
		materialized: true,
	}
}

func AggregateOf(amounts ...float64) Aggregate {
	agg := NewAggregate()
	for _, am := range amounts {
		agg.Add(am)
	}
	return agg
}

func (a *Aggregate) Add(amount float64) {
	a.amounts = append(a.amounts, amount)
	a.total = a.total.Add(decimal.NewFromFloat(amount))
	a.materialized = true
}

// Amounts returns a copy of the per-record amounts.
func (a Aggregate) Amounts() []float64 {
	res := make([]float64, len(a.amounts))
	copy(res, a.amounts)
	return res
}

func (a Aggregate) Len() int {
	return len(a.amounts)
}

func (a Aggregate) Total() float64 {
	return a.total.InexactFloat64()
}

func (a Aggregate) Empty() bool {
	return !a.materialized
}
