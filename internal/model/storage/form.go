package storage

import (
	"context"
	"math"

	"max.ks1230/finance-tracker/internal/entity/finance"
)

// amounts may be negative
const noLowerBound = -math.MaxFloat64

type inputReader interface {
	ReadText(prompt string) (string, error)
	ReadLine(prompt string) (string, error)
	ReadDouble(prompt string, min float64) (float64, error)
	ReadDate(prompt string) (finance.Date, error)
	ReadInt(prompt string, min int) (int, error)
}

func captureExpense(r inputReader) (finance.Expense, error) {
	title, err := r.ReadText("Enter expense Title: ")
	if err != nil {
		return finance.Expense{}, err
	}
	category, err := r.ReadLine("Enter expense Category: ")
	if err != nil {
		return finance.Expense{}, err
	}
	amount, err := r.ReadDouble("Enter expense Amount: ", noLowerBound)
	if err != nil {
		return finance.Expense{}, err
	}
	date, err := r.ReadDate("Enter expense Date (YYYY-MM-DD): ")
	if err != nil {
		return finance.Expense{}, err
	}
	return finance.NewExpense(0, title, category, amount, date), nil
}

func captureIncome(r inputReader) (finance.Income, error) {
	title, err := r.ReadText("Enter income Title: ")
	if err != nil {
		return finance.Income{}, err
	}
	amount, err := r.ReadDouble("Enter income Amount: ", noLowerBound)
	if err != nil {
		return finance.Income{}, err
	}
	date, err := r.ReadDate("Enter income Date (YYYY-MM-DD): ")
	if err != nil {
		return finance.Income{}, err
	}
	return finance.NewIncome(0, title, amount, date), nil
}

func captureID(r inputReader, prompt string) (int64, error) {
	id, err := r.ReadInt(prompt, 1)
	return int64(id), err
}

type expenseCreator func(ctx context.Context, e finance.Expense) (WriteResult, error)

type incomeCreator func(ctx context.Context, i finance.Income) (WriteResult, error)

type remover func(ctx context.Context, id int64) (WriteResult, error)

func addExpense(ctx context.Context, r inputReader, create expenseCreator) (WriteResult, error) {
	e, err := captureExpense(r)
	if err != nil {
		return WriteResult{}, err
	}
	return create(ctx, e)
}

func addIncome(ctx context.Context, r inputReader, create incomeCreator) (WriteResult, error) {
	i, err := captureIncome(r)
	if err != nil {
		return WriteResult{}, err
	}
	return create(ctx, i)
}

func deleteByID(ctx context.Context, r inputReader, prompt string, remove remover) (WriteResult, error) {
	id, err := captureID(r, prompt)
	if err != nil {
		return WriteResult{}, err
	}
	return remove(ctx, id)
}
