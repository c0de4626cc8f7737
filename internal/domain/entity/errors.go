package entity

import (
	"errors"
	"fmt"
)

// ErrInput помечает кадр или кандидата, которые нельзя обработать.
// Такой кадр пропускается, состояние трекера не меняется.
var ErrInput = errors.New("invalid input")

// InputError описывает причину отказа во входных данных
type InputError struct {
	Reason string
}

// NewInputError создаёт InputError с форматированной причиной
func NewInputError(format string, args ...any) error {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

// Is позволяет проверять ошибку через errors.Is(err, ErrInput).
func (e *InputError) Is(target error) bool {
	return target == ErrInput
}
