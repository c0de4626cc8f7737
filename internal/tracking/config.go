package tracking

import (
	"fmt"
	"math"
)

// Association выбирает алгоритм сопоставления кандидатов с треками.
type Association string

const (
	// AssociationGreedy жадное сопоставление по ближайшему центру.
	AssociationGreedy Association = "greedy"
	// AssociationHungarian сопоставление минимальной суммарной стоимости.
	AssociationHungarian Association = "hungarian"
)

// Config параметры трекера
type Config struct {
	ConfirmFrames    int         // кадров подряд до подтверждения
	MaxLostFrames    int         // кадров без сопоставления до удаления
	MaxMatchDistance float64     // максимальное расстояние между центрами, px
	Association      Association // алгоритм сопоставления
}

// DefaultConfig возвращает параметры трекера по умолчанию.
func DefaultConfig() Config {
	return Config{
		ConfirmFrames:    3,
		MaxLostFrames:    5,
		MaxMatchDistance: 60,
		Association:      AssociationGreedy,
	}
}

// Validate проверяет параметры трекера.
func (c Config) Validate() error {
	if c.ConfirmFrames < 1 {
		return fmt.Errorf("confirm frames must be at least 1, got %d", c.ConfirmFrames)
	}
	if c.MaxLostFrames < 0 {
		return fmt.Errorf("max lost frames must not be negative, got %d", c.MaxLostFrames)
	}
	if math.IsNaN(c.MaxMatchDistance) || math.IsInf(c.MaxMatchDistance, 0) || c.MaxMatchDistance <= 0 {
		return fmt.Errorf("max match distance must be a positive number, got %v", c.MaxMatchDistance)
	}
	switch c.Association {
	case AssociationGreedy, AssociationHungarian:
	default:
		return fmt.Errorf("unknown association %q", c.Association)
	}
	return nil
}
