package purchases

import "fmt"

type Purchase struct {
	ID           int64   `json:"id"`
	MaterialID   int64   `json:"material_id"`
	Count        float64 `json:"count"`
	UnitPrice    float64 `json:"unit_price"`
	TotalPrice   float64 `json:"total_price"`
	PurchaseDate string  `json:"purchase_date"` // YYYY-MM-DD
	Notes        string  `json:"notes,omitempty"`
}

// TotalPrice считается на клиенте и уходит в payload как есть,
// бэкенд его не пересчитывает.
func TotalPrice(count, unitPrice float64) float64 {
	return count * unitPrice
}

// Validate проверяет форму закупки до отправки на бэкенд.
func Validate(p Purchase) error {
	if p.MaterialID == 0 {
		return fmt.Errorf("выберите материал")
	}
	if p.Count <= 0 {
		return fmt.Errorf("количество должно быть больше 0")
	}
	if p.UnitPrice <= 0 {
		return fmt.Errorf("цена за единицу должна быть больше 0")
	}
	return nil
}
