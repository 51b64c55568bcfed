package finance

import "fmt"

type Income struct {
	ID         int64
	Title      string `validate:"notblank"`
	Amount     float64
	DateEarned Date `validate:"required"`
}

func NewIncome(id int64, title string, amount float64, dateEarned Date) Income {
	return Income{
		ID:         id,
		Title:      title,
		Amount:     amount,
		DateEarned: dateEarned,
	}
}

func (i *Income) SetID(id int64) {
	i.ID = id
}

func (i *Income) SetTitle(title string) {
	i.Title = title
}

func (i *Income) SetAmount(amount float64) {
	i.Amount = amount
}

func (i *Income) SetDateEarned(d Date) {
	i.DateEarned = d
}

func (i Income) String() string {
	return fmt.Sprintf("Income{incomeID=%d, title='%s', amount=%v, dateEarned='%s'}",
		i.ID, i.Title, i.Amount, i.DateEarned)
}
