package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mkazantsev/workshop-bot/internal/dialog"
	"github.com/mkazantsev/workshop-bot/internal/domain/orders"
	"github.com/mkazantsev/workshop-bot/internal/screen"
)

func (b *Bot) ordScreen(ctx context.Context, chatID int64) *screen.OrderBoard {
	if s := b.scr(chatID).orders; s != nil {
		return s
	}
	return b.openOrdersScreen(ctx, chatID)
}

func (b *Bot) showOrderList(ctx context.Context, chatID int64, editMsgID *int) {
	board := b.ordScreen(ctx, chatID)

	var completed, inProgress int
	var total float64
	for _, o := range board.Items() {
		if o.Status.Completed() {
			completed++
		}
		if o.Status == orders.StatusInProgress {
			inProgress++
		}
		total += o.TotalAmount
	}

	text := fmt.Sprintf("📋 Заказы (%d)\n✅ Завершено: %d · 🔧 В работе: %d\nИтого: %s",
		len(board.Items()), completed, inProgress, formatPrice(total))
	if !board.Loaded() {
		text = "📋 Заказы\n⚠️ Список не загрузился — нажмите «Обновить»"
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, o := range board.Items() {
		label := fmt.Sprintf("%s · %s · %s", o.Number, o.ClientName, o.Status.Label())
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("ord:item:%d", o.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Создать", "ord:add"),
		tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", "ord:reload"),
		tgbotapi.NewInlineKeyboardButtonData("📤 Экспорт", "ord:export"),
	))
	b.sendOrEdit(chatID, editMsgID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showOrderCard(chatID int64, editMsgID int, board *screen.OrderBoard, id int64) {
	o := board.Get(id)
	if o == nil {
		b.editTextAndClear(chatID, editMsgID, "Заказ не найден")
		return
	}
	notes := o.Notes
	if notes == "" {
		notes = "—"
	}
	text := fmt.Sprintf(
		"📋 Заказ %s\nКлиент: %s\nМатериал: %s\nЦена: %s × %s = %s\nСтатус: %s\nПлановая дата: %s\nФактическая дата: %s\nПримечание: %s",
		o.Number, o.ClientName, board.MaterialName(o.MaterialID),
		formatPrice(o.Price), formatQty(o.Quantity), formatPrice(o.TotalAmount),
		o.Status.Label(), formatDate(o.PlannedCompletionDate), formatDate(o.ActualCompletionDate),
		notes,
	)
	rows := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("✏️ Клиент", fmt.Sprintf("ord:cl:%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("💰 Цена", fmt.Sprintf("ord:pr:%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("🔢 Кол-во", fmt.Sprintf("ord:qty:%d", id)),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("📅 План. дата", fmt.Sprintf("ord:pl:%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("📝 Примечание", fmt.Sprintf("ord:nt:%d", id)),
		},
	}
	rows = append(rows, statusKeyboard(id, o.Status).InlineKeyboard...)
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", fmt.Sprintf("ord:del:%d", id)),
		tgbotapi.NewInlineKeyboardButtonData("⬅️ К списку", "ord:back"),
	})
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID, text, tgbotapi.NewInlineKeyboardMarkup(rows...)))
}

func (b *Bot) showOrderPickMaterial(chatID int64, editMsgID int, board *screen.OrderBoard) {
	if !board.CrossLoaded() || len(board.CrossItems()) == 0 {
		b.editTextAndClear(chatID, editMsgID, "Сначала создайте хотя бы один материал")
		return
	}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, m := range board.CrossItems() {
		label := fmt.Sprintf("%s %s", stockBadge(m.StockStatus()), m.Name)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("ord:mat:%d", m.ID)),
		))
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID, "Выберите товар/материал:", tgbotapi.NewInlineKeyboardMarkup(rows...)))
}

func (b *Bot) onOrderCallback(ctx context.Context, chatID int64, msgID int, cb *tgbotapi.CallbackQuery, action string, id int64, arg string) {
	board := b.ordScreen(ctx, chatID)

	switch action {
	case "item":
		b.showOrderCard(chatID, msgID, board, id)

	case "add":
		board.OpenCreate()
		_ = b.states.Set(ctx, chatID, dialog.StateOrdPickMat, dialog.Payload{})
		b.showOrderPickMaterial(chatID, msgID, board)

	case "mat":
		st, _ := b.states.Get(ctx, chatID)
		st.Payload["material_id"] = id
		_ = b.states.Set(ctx, chatID, dialog.StateOrdClient, st.Payload)
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Введите имя клиента:", navKeyboard(false, true)))

	case "st":
		b.onOrderStatusChange(ctx, chatID, msgID, cb, board, id, orders.Status(arg))

	case "cl":
		board.OpenEdit(id)
		_ = b.states.Set(ctx, chatID, dialog.StateOrdEditClient, dialog.Payload{"id": id})
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Введите имя клиента:", navKeyboard(false, true)))

	case "pr":
		board.OpenEdit(id)
		_ = b.states.Set(ctx, chatID, dialog.StateOrdEditPrice, dialog.Payload{"id": id})
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Введите новую цену:", navKeyboard(false, true)))

	case "qty":
		board.OpenEdit(id)
		_ = b.states.Set(ctx, chatID, dialog.StateOrdEditQty, dialog.Payload{"id": id})
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Введите новое количество:", navKeyboard(false, true)))

	case "pl":
		board.OpenEdit(id)
		_ = b.states.Set(ctx, chatID, dialog.StateOrdEditPlanned, dialog.Payload{"id": id})
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Плановая дата ГГГГ-ММ-ДД (или «-», чтобы убрать):", navKeyboard(false, true)))

	case "nt":
		board.OpenEdit(id)
		_ = b.states.Set(ctx, chatID, dialog.StateOrdEditNotes, dialog.Payload{"id": id})
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Примечание (или «-», чтобы убрать):", navKeyboard(false, true)))

	case "del":
		board.RequestDelete(id)
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Удалить этот заказ?", confirmDeleteKeyboard("ord")))

	case "delyes":
		delID := board.PendingDelete()
		err := board.ConfirmDelete(ctx, func(ctx context.Context) error {
			return b.orders.Delete(ctx, delID)
		})
		if err != nil {
			_ = b.answerCallback(cb, "Не удалось удалить заказ", true)
		}
		b.showOrderList(ctx, chatID, &msgID)

	case "delno":
		board.CancelDelete()
		b.showOrderList(ctx, chatID, &msgID)

	case "reload":
		board.Reload(ctx)
		b.showOrderList(ctx, chatID, &msgID)

	case "back":
		b.showOrderList(ctx, chatID, &msgID)

	case "export":
		b.exportOrders(ctx, chatID, cb, board)
	}
}

// onOrderStatusChange — PATCH статуса. При успехе карточка
// перерисовывается из локальной копии: экран уже оптимистично
// пропатчен, полной перезагрузки нет.
func (b *Bot) onOrderStatusChange(ctx context.Context, chatID int64, msgID int, cb *tgbotapi.CallbackQuery, board *screen.OrderBoard, id int64, newStatus orders.Status) {
	if !newStatus.Valid() {
		_ = b.answerCallback(cb, "Неизвестный статус", true)
		return
	}
	if err := board.ChangeStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, screen.ErrTransitionNotAllowed) {
			_ = b.answerCallback(cb, "Переход в этот статус запрещён", true)
			return
		}
		_ = b.answerCallback(cb, "Не удалось обновить статус", true)
		return
	}
	_ = b.answerCallback(cb, "Статус обновлён", false)
	b.showOrderCard(chatID, msgID, board, id)
}

// onOrderInput — текстовые шаги мастера создания и правок карточки.
func (b *Bot) onOrderInput(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	switch st.State {
	case dialog.StateOrdClient:
		st.Payload["client_name"] = text
		_ = b.states.Set(ctx, chatID, dialog.StateOrdPrice, st.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Введите цену за единицу:"))

	case dialog.StateOrdPrice:
		v, err := parseNonNegativeFloat(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		st.Payload["price"] = v
		_ = b.states.Set(ctx, chatID, dialog.StateOrdQty, st.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Введите количество:"))

	case dialog.StateOrdQty:
		v, err := parsePositiveFloat(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		st.Payload["quantity"] = v
		_ = b.states.Set(ctx, chatID, dialog.StateOrdPlanned, st.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Плановая дата ГГГГ-ММ-ДД (или «-», чтобы пропустить):"))

	case dialog.StateOrdPlanned:
		d, err := parseDateInput(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		st.Payload["planned"] = d
		_ = b.states.Set(ctx, chatID, dialog.StateOrdNotes, st.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Примечание (или «-», чтобы пропустить):"))

	case dialog.StateOrdNotes:
		b.finishOrderCreate(ctx, chatID, st, skipDash(text))

	case dialog.StateOrdEditClient:
		b.orderCardEditFromInput(ctx, chatID, st, func(o *orders.Order) { o.ClientName = text })

	case dialog.StateOrdEditPrice:
		v, err := parseNonNegativeFloat(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		b.orderCardEditFromInput(ctx, chatID, st, func(o *orders.Order) { o.Price = v })

	case dialog.StateOrdEditQty:
		v, err := parsePositiveFloat(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		b.orderCardEditFromInput(ctx, chatID, st, func(o *orders.Order) { o.Quantity = v })

	case dialog.StateOrdEditPlanned:
		d, err := parseDateInput(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		b.orderCardEditFromInput(ctx, chatID, st, func(o *orders.Order) { o.PlannedCompletionDate = d })

	case dialog.StateOrdEditNotes:
		b.orderCardEditFromInput(ctx, chatID, st, func(o *orders.Order) { o.Notes = skipDash(text) })
	}
}

func (b *Bot) finishOrderCreate(ctx context.Context, chatID int64, st *dialog.Item, notes string) {
	board := b.ordScreen(ctx, chatID)

	matID, _ := dialog.GetInt64(st.Payload, "material_id")
	client, _ := dialog.GetString(st.Payload, "client_name")
	price, _ := dialog.GetFloat(st.Payload, "price")
	qty, _ := dialog.GetFloat(st.Payload, "quantity")
	planned, _ := dialog.GetString(st.Payload, "planned")

	o := orders.Order{
		Number:                board.NextNumber(),
		MaterialID:            matID,
		ClientName:            client,
		Price:                 price,
		Quantity:              qty,
		Status:                orders.StatusNew,
		TotalAmount:           orders.TotalAmount(price, qty),
		PlannedCompletionDate: planned,
		Notes:                 notes,
		CreatedAt:             time.Now(),
	}
	if err := orders.Validate(o); err != nil {
		b.send(tgbotapi.NewMessage(chatID, err.Error()))
		return
	}
	err := board.Mutate(ctx, func(ctx context.Context) error {
		_, err := b.orders.Create(ctx, o)
		return err
	})
	_ = b.states.Reset(ctx, chatID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось создать заказ"))
		return
	}
	b.showOrderList(ctx, chatID, nil)
}

// orderCardEditFromInput: форма предзаполнена текущей сущностью,
// меняется одно поле, обновление собирает orders.ApplyEdit.
func (b *Bot) orderCardEditFromInput(ctx context.Context, chatID int64, st *dialog.Item, change func(*orders.Order)) {
	board := b.ordScreen(ctx, chatID)
	id, _ := dialog.GetInt64(st.Payload, "id")
	cur := board.Get(id)
	if cur == nil {
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Заказ не найден"))
		return
	}
	upd := orders.ApplyEdit(*cur, change)
	if err := orders.Validate(upd); err != nil {
		b.send(tgbotapi.NewMessage(chatID, err.Error()))
		return
	}
	err := board.Mutate(ctx, func(ctx context.Context) error {
		_, err := b.orders.Update(ctx, id, upd)
		return err
	})
	_ = b.states.Reset(ctx, chatID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось обновить заказ"))
		return
	}
	b.showOrderList(ctx, chatID, nil)
}
