package catalog

import (
	"fmt"
	"strings"
	"time"
)

type Unit string

const (
	UnitPiece    Unit = "piece"
	UnitMeter    Unit = "meter"
	UnitKilogram Unit = "kilogram"
	UnitLiter    Unit = "liter"
	UnitPack     Unit = "pack"
	UnitRoll     Unit = "roll"
)

// Units в порядке показа в форме.
var Units = []Unit{UnitPiece, UnitMeter, UnitKilogram, UnitLiter, UnitPack, UnitRoll}

var unitLabels = map[Unit]string{
	UnitPiece:    "шт.",
	UnitMeter:    "м",
	UnitKilogram: "кг",
	UnitLiter:    "л",
	UnitPack:     "упак.",
	UnitRoll:     "рулон",
}

func (u Unit) Valid() bool {
	_, ok := unitLabels[u]
	return ok
}

func (u Unit) Label() string {
	if l, ok := unitLabels[u]; ok {
		return l
	}
	return string(u)
}

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Material struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	ArticleNumber string  `json:"article_number,omitempty"`
	Unit          Unit    `json:"unit"`
	Remains       float64 `json:"remains"`
	MinCount      float64 `json:"min_count"`
	CategoryID    int64   `json:"category_id"`
}

type StockStatus string

const (
	StockOut StockStatus = "out_of_stock"
	StockLow StockStatus = "low"
	StockIn  StockStatus = "in_stock"
)

func (s StockStatus) Label() string {
	switch s {
	case StockOut:
		return "❌ Нет в наличии"
	case StockLow:
		return "⚠️ Мало"
	default:
		return "✅ В наличии"
	}
}

// MaterialStockStatus считает статус остатка: ноль — нет в наличии,
// не больше минимума — мало, иначе в наличии.
func MaterialStockStatus(remains, minCount float64) StockStatus {
	switch {
	case remains == 0:
		return StockOut
	case remains <= minCount:
		return StockLow
	default:
		return StockIn
	}
}

func (m Material) StockStatus() StockStatus {
	return MaterialStockStatus(m.Remains, m.MinCount)
}

// ValidateCategory проверяет форму категории до отправки на бэкенд.
func ValidateCategory(c Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("название категории не может быть пустым")
	}
	return nil
}

// ValidateMaterial проверяет форму материала до отправки на бэкенд.
func ValidateMaterial(m Material) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("название материала не может быть пустым")
	}
	if m.CategoryID == 0 {
		return fmt.Errorf("выберите категорию")
	}
	if !m.Unit.Valid() {
		return fmt.Errorf("неизвестная единица измерения: %s", m.Unit)
	}
	if m.Remains < 0 {
		return fmt.Errorf("остаток не может быть отрицательным")
	}
	if m.MinCount < 0 {
		return fmt.Errorf("минимальный остаток не может быть отрицательным")
	}
	return nil
}
