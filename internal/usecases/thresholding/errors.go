package thresholding

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeBudget     = errors.New("negative budget")
	ErrUnknownBudgetType  = errors.New("unknown budget type")
	ErrInvalidClassifyArg = errors.New("invalid classification input")
)

// ClassificationInputError rejeita um único registro de campanha cujos dados
// não permitem classificação segura.
type ClassificationInputError struct {
	Err        error
	BudgetType string
	Previous   float64
	Current    float64
}

func (e *ClassificationInputError) Error() string {
	return fmt.Sprintf("%s: %s (budget_type=%q previous=%.2f current=%.2f)",
		ErrInvalidClassifyArg.Error(), e.Err.Error(), e.BudgetType, e.Previous, e.Current)
}

func (e *ClassificationInputError) Unwrap() error {
	return e.Err
}

// IsClassificationInputError verifica se o erro rejeita apenas a campanha
func IsClassificationInputError(err error) bool {
	var target *ClassificationInputError
	return errors.As(err, &target)
}
