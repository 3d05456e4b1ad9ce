package orders

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusReady      Status = "ready"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses в порядке показа в клавиатуре статусов.
var Statuses = []Status{StatusNew, StatusInProgress, StatusReady, StatusDelivered, StatusCancelled}

var statusLabels = map[Status]string{
	StatusNew:        "🆕 Новый",
	StatusInProgress: "🔧 В работе",
	StatusReady:      "✅ Готов",
	StatusDelivered:  "📦 Выдан",
	StatusCancelled:  "❌ Отменен",
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Completed — статусы, в которых заказ считается завершённым:
// при переходе в них ставится фактическая дата завершения.
func (s Status) Completed() bool {
	return s == StatusReady || s == StatusDelivered
}

// transitions — явная таблица переходов (current -> requested).
// Бизнес-правил на порядок статусов нет, поэтому таблица
// разрешает всё; ограничения добавляются здесь, а не по коду.
var transitions = map[Status][]Status{
	StatusNew:        {StatusNew, StatusInProgress, StatusReady, StatusDelivered, StatusCancelled},
	StatusInProgress: {StatusNew, StatusInProgress, StatusReady, StatusDelivered, StatusCancelled},
	StatusReady:      {StatusNew, StatusInProgress, StatusReady, StatusDelivered, StatusCancelled},
	StatusDelivered:  {StatusNew, StatusInProgress, StatusReady, StatusDelivered, StatusCancelled},
	StatusCancelled:  {StatusNew, StatusInProgress, StatusReady, StatusDelivered, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID                    int64     `json:"id"`
	Number                string    `json:"number"`
	MaterialID            int64     `json:"material_id"`
	ClientName            string    `json:"client_name"`
	Price                 float64   `json:"price"`
	Quantity              float64   `json:"quantity"`
	Status                Status    `json:"status"`
	TotalAmount           float64   `json:"total_amount"`
	PlannedCompletionDate string    `json:"planned_completion_date,omitempty"`
	ActualCompletionDate  string    `json:"actual_completion_date,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// TotalAmount пересчитывается при каждом создании/изменении,
// затрагивающем цену или количество.
func TotalAmount(price, quantity float64) float64 {
	return price * quantity
}

// NextNumber генерирует номер заказа вида ORD-YYYYMMDD-NNN,
// где NNN — количество существующих заказов + 1.
// Известное ограничение: номер не защищён от коллизий при
// параллельном создании, настоящую нумерацию должен вести бэкенд.
func NextNumber(existingCount int, date time.Time) string {
	return fmt.Sprintf("ORD-%04d%02d%02d-%03d",
		date.Year(), int(date.Month()), date.Day(), existingCount+1)
}

// Stamp проставляет фактическую дату завершения при переходе
// в завершённый статус. Однажды выставленная дата больше не трогается.
func (o *Order) Stamp(newStatus Status, now time.Time) {
	o.Status = newStatus
	if newStatus.Completed() && o.ActualCompletionDate == "" {
		o.ActualCompletionDate = now.Format(time.RFC3339)
	}
}

// ApplyEdit собирает обновление заказа из текущей сущности: форма
// предзаполнена её значениями, change правит нужные поля. Сумма
// пересчитывается при каждом обновлении; фактическая дата завершения
// всегда берётся из до-правочной копии.
func ApplyEdit(o Order, change func(*Order)) Order {
	upd := o
	change(&upd)
	upd.TotalAmount = TotalAmount(upd.Price, upd.Quantity)
	upd.ActualCompletionDate = o.ActualCompletionDate
	return upd
}

// Validate проверяет форму заказа до отправки на бэкенд.
func Validate(o Order) error {
	if o.MaterialID == 0 {
		return fmt.Errorf("выберите товар/материал")
	}
	if strings.TrimSpace(o.ClientName) == "" {
		return fmt.Errorf("введите имя клиента")
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("количество должно быть больше 0")
	}
	if o.Price < 0 {
		return fmt.Errorf("цена не может быть отрицательной")
	}
	if !o.Status.Valid() {
		return fmt.Errorf("неизвестный статус: %s", o.Status)
	}
	return nil
}
