package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mkazantsev/workshop-bot/internal/dialog"
	"github.com/mkazantsev/workshop-bot/internal/domain/catalog"
	"github.com/mkazantsev/workshop-bot/internal/domain/purchases"
	"github.com/mkazantsev/workshop-bot/internal/screen"
)

func (b *Bot) purScreen(ctx context.Context, chatID int64) *screen.Manager[purchases.Purchase, catalog.Material] {
	if m := b.scr(chatID).purchases; m != nil {
		return m
	}
	return b.openPurchasesScreen(ctx, chatID)
}

func (b *Bot) purMaterialName(m *screen.Manager[purchases.Purchase, catalog.Material], id int64) string {
	for _, it := range m.CrossItems() {
		if it.ID == id {
			return it.Name
		}
	}
	return fmt.Sprintf("Материал #%d", id)
}

func (b *Bot) showPurchaseList(ctx context.Context, chatID int64, editMsgID *int) {
	m := b.purScreen(ctx, chatID)

	var total float64
	for _, p := range m.Items() {
		total += p.TotalPrice
	}

	text := fmt.Sprintf("🛒 Закупки (%d)\nИтого: %s", len(m.Items()), formatPrice(total))
	if !m.Loaded() {
		text = "🛒 Закупки\n⚠️ Журнал не загрузился — нажмите «Обновить»"
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, p := range m.Items() {
		label := fmt.Sprintf("%s · %s · %s", formatDate(p.PurchaseDate), b.purMaterialName(m, p.MaterialID), formatPrice(p.TotalPrice))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("pur:item:%d", p.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Создать", "pur:add"),
		tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", "pur:reload"),
	))
	b.sendOrEdit(chatID, editMsgID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showPurchaseCard(chatID int64, editMsgID int, m *screen.Manager[purchases.Purchase, catalog.Material], id int64) {
	var found *purchases.Purchase
	for i, p := range m.Items() {
		if p.ID == id {
			found = &m.Items()[i]
			break
		}
	}
	if found == nil {
		b.editTextAndClear(chatID, editMsgID, "Закупка не найдена")
		return
	}
	notes := found.Notes
	if notes == "" {
		notes = "—"
	}
	text := fmt.Sprintf(
		"🛒 Закупка от %s\nМатериал: %s\nКоличество: %s\nЦена за единицу: %s\nСумма: %s\nПримечание: %s",
		formatDate(found.PurchaseDate), b.purMaterialName(m, found.MaterialID),
		formatQty(found.Count), formatPrice(found.UnitPrice), formatPrice(found.TotalPrice), notes,
	)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", fmt.Sprintf("pur:del:%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("⬅️ К списку", "pur:back"),
		),
	)
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID, text, kb))
}

func (b *Bot) showPurchasePickMaterial(chatID int64, editMsgID int, m *screen.Manager[purchases.Purchase, catalog.Material]) {
	if !m.CrossLoaded() || len(m.CrossItems()) == 0 {
		b.editTextAndClear(chatID, editMsgID, "Сначала создайте хотя бы один материал")
		return
	}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, it := range m.CrossItems() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(it.Name, fmt.Sprintf("pur:mat:%d", it.ID)),
		))
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID, "Выберите материал:", tgbotapi.NewInlineKeyboardMarkup(rows...)))
}

func (b *Bot) onPurchaseCallback(ctx context.Context, chatID int64, msgID int, cb *tgbotapi.CallbackQuery, action string, id int64) {
	m := b.purScreen(ctx, chatID)

	switch action {
	case "item":
		b.showPurchaseCard(chatID, msgID, m, id)

	case "add":
		m.OpenCreate()
		_ = b.states.Set(ctx, chatID, dialog.StatePurPickMat, dialog.Payload{})
		b.showPurchasePickMaterial(chatID, msgID, m)

	case "mat":
		st, _ := b.states.Get(ctx, chatID)
		st.Payload["material_id"] = id
		_ = b.states.Set(ctx, chatID, dialog.StatePurCount, st.Payload)
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Введите количество:", navKeyboard(false, true)))

	case "del":
		m.RequestDelete(id)
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Удалить эту закупку?", confirmDeleteKeyboard("pur")))

	case "delyes":
		delID := m.PendingDelete()
		err := m.ConfirmDelete(ctx, func(ctx context.Context) error {
			return b.purchases.Delete(ctx, delID)
		})
		if err != nil {
			_ = b.answerCallback(cb, "Не удалось удалить закупку", true)
		}
		b.showPurchaseList(ctx, chatID, &msgID)

	case "delno":
		m.CancelDelete()
		b.showPurchaseList(ctx, chatID, &msgID)

	case "reload":
		m.Reload(ctx)
		b.showPurchaseList(ctx, chatID, &msgID)

	case "back":
		b.showPurchaseList(ctx, chatID, &msgID)
	}
}

// onPurchaseInput — текстовые шаги мастера создания закупки.
func (b *Bot) onPurchaseInput(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	switch st.State {
	case dialog.StatePurCount:
		v, err := parsePositiveFloat(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		st.Payload["count"] = v
		_ = b.states.Set(ctx, chatID, dialog.StatePurPrice, st.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Введите цену за единицу:"))

	case dialog.StatePurPrice:
		v, err := parsePositiveFloat(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		st.Payload["unit_price"] = v
		_ = b.states.Set(ctx, chatID, dialog.StatePurDate, st.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Дата закупки ГГГГ-ММ-ДД (или «-» — сегодня):"))

	case dialog.StatePurDate:
		d, err := parseDateInput(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		if d == "" {
			d = time.Now().Format("2006-01-02")
		}
		st.Payload["purchase_date"] = d
		_ = b.states.Set(ctx, chatID, dialog.StatePurNotes, st.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Примечание (или «-», чтобы пропустить):"))

	case dialog.StatePurNotes:
		b.finishPurchaseCreate(ctx, chatID, st, skipDash(text))
	}
}

func (b *Bot) finishPurchaseCreate(ctx context.Context, chatID int64, st *dialog.Item, notes string) {
	m := b.purScreen(ctx, chatID)

	matID, _ := dialog.GetInt64(st.Payload, "material_id")
	count, _ := dialog.GetFloat(st.Payload, "count")
	unitPrice, _ := dialog.GetFloat(st.Payload, "unit_price")
	date, _ := dialog.GetString(st.Payload, "purchase_date")

	p := purchases.Purchase{
		MaterialID:   matID,
		Count:        count,
		UnitPrice:    unitPrice,
		TotalPrice:   purchases.TotalPrice(count, unitPrice),
		PurchaseDate: date,
		Notes:        notes,
	}
	if err := purchases.Validate(p); err != nil {
		b.send(tgbotapi.NewMessage(chatID, err.Error()))
		return
	}
	err := m.Mutate(ctx, func(ctx context.Context) error {
		_, err := b.purchases.Create(ctx, p)
		return err
	})
	_ = b.states.Reset(ctx, chatID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось создать закупку"))
		return
	}
	b.showPurchaseList(ctx, chatID, nil)
}
