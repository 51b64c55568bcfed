package finance

import "fmt"

type Expense struct {
	ID           int64
	Title        string `validate:"notblank"`
	Category     string
	Amount       float64
	DateIncurred Date `validate:"required"`
}

func NewExpense(id int64, title, category string, amount float64, dateIncurred Date) Expense {
	return Expense{
		ID:           id,
		Title:        title,
		Category:     category,
		Amount:       amount,
		DateIncurred: dateIncurred,
	}
}

func (e *Expense) SetID(id int64) {
	e.ID = id
}

func (e *Expense) SetTitle(title string) {
	e.Title = title
}

func (e *Expense) SetCategory(category string) {
	e.Category = category
}

func (e *Expense) SetAmount(amount float64) {
	e.Amount = amount
}

func (e *Expense) SetDateIncurred(d Date) {
	e.DateIncurred = d
}

func (e Expense) String() string {
	return fmt.Sprintf("Expense{expenseID=%d, title='%s', category='%s', amount=%v, dateIncurred='%s'}",
		e.ID, e.Title, e.Category, e.Amount, e.DateIncurred)
}
