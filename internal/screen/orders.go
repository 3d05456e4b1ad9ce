package screen

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mkazantsev/workshop-bot/internal/domain/catalog"
	"github.com/mkazantsev/workshop-bot/internal/domain/orders"
)

// ErrTransitionNotAllowed — переход запрещён таблицей переходов.
var ErrTransitionNotAllowed = errors.New("screen: status transition not allowed")

// OrdersAPI — кусок клиента заказов, нужный экрану для смены статуса.
type OrdersAPI interface {
	UpdateStatus(ctx context.Context, id int64, status orders.Status) error
}

// OrderBoard — экран заказов: список заказов плюс материалы
// для имён и остатков.
type OrderBoard struct {
	*Manager[orders.Order, catalog.Material]
	api OrdersAPI
	now func() time.Time
}

func NewOrderBoard(log *slog.Logger, loadOrders LoadFunc[orders.Order], loadMaterials LoadFunc[catalog.Material], api OrdersAPI) *OrderBoard {
	return &OrderBoard{
		Manager: New(log, loadOrders, loadMaterials),
		api:     api,
		now:     time.Now,
	}
}

// Get возвращает заказ из локальной копии (nil — нет такого).
func (b *OrderBoard) Get(id int64) *orders.Order {
	for i := range b.Items() {
		if b.Items()[i].ID == id {
			return &b.Items()[i]
		}
	}
	return nil
}

// MaterialName резолвит имя материала из кросс-загрузки.
func (b *OrderBoard) MaterialName(id int64) string {
	for _, m := range b.CrossItems() {
		if m.ID == id {
			return m.Name
		}
	}
	return "?"
}

// Material возвращает материал из кросс-загрузки (nil — нет такого).
func (b *OrderBoard) Material(id int64) *catalog.Material {
	for i, m := range b.CrossItems() {
		if m.ID == id {
			return &b.CrossItems()[i]
		}
	}
	return nil
}

// NextNumber — номер для нового заказа из локального количества.
func (b *OrderBoard) NextNumber() string {
	return orders.NextNumber(len(b.Items()), b.now())
}

// ChangeStatus шлёт частичное обновление статуса и при успехе всегда
// оптимистично патчит локальную копию: статус плюс дата завершения,
// если заказ перешёл в готов/выдан и дата ещё не стояла. Полной
// перезагрузки нет ни для одного статуса — одна дисциплина на все
// переходы; расхождение с бэкендом снимает следующий Reload.
// При ошибке локальное состояние не меняется.
func (b *OrderBoard) ChangeStatus(ctx context.Context, id int64, status orders.Status) error {
	if b.Phase() != PhaseReady {
		return ErrNotReady
	}
	cur := b.Get(id)
	if cur != nil && !orders.CanTransition(cur.Status, status) {
		return ErrTransitionNotAllowed
	}
	if err := b.api.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	now := b.now()
	b.Patch(func(items []orders.Order) {
		for i := range items {
			if items[i].ID == id {
				items[i].Stamp(status, now)
				return
			}
		}
	})
	return nil
}
