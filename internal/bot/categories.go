package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mkazantsev/workshop-bot/internal/dialog"
	"github.com/mkazantsev/workshop-bot/internal/domain/catalog"
	"github.com/mkazantsev/workshop-bot/internal/screen"
)

func (b *Bot) catScreen(ctx context.Context, chatID int64) *screen.Manager[catalog.Category, struct{}] {
	if m := b.scr(chatID).categories; m != nil {
		return m
	}
	return b.openCategoriesScreen(ctx, chatID)
}

func (b *Bot) showCategoryList(ctx context.Context, chatID int64, editMsgID *int) {
	m := b.catScreen(ctx, chatID)

	text := fmt.Sprintf("📁 Категории (%d)", len(m.Items()))
	if !m.Loaded() {
		text = "📁 Категории\n⚠️ Список не загрузился — нажмите «Обновить»"
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, c := range m.Items() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Name, fmt.Sprintf("cat:item:%d", c.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Создать", "cat:add"),
		tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", "cat:reload"),
	))
	b.sendOrEdit(chatID, editMsgID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showCategoryCard(chatID int64, editMsgID int, m *screen.Manager[catalog.Category, struct{}], id int64) {
	var found *catalog.Category
	for i, c := range m.Items() {
		if c.ID == id {
			found = &m.Items()[i]
			break
		}
	}
	if found == nil {
		b.editTextAndClear(chatID, editMsgID, "Категория не найдена")
		return
	}
	text := fmt.Sprintf("📁 Категория: %s\nСоздана: %s", found.Name, found.CreatedAt.Format("02.01.2006"))
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Переименовать", fmt.Sprintf("cat:rn:%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", fmt.Sprintf("cat:del:%d", id)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ К списку", "cat:back"),
		),
	)
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID, text, kb))
}

func (b *Bot) onCategoryCallback(ctx context.Context, chatID int64, msgID int, cb *tgbotapi.CallbackQuery, action string, id int64) {
	m := b.catScreen(ctx, chatID)

	switch action {
	case "item":
		b.showCategoryCard(chatID, msgID, m, id)

	case "add":
		m.OpenCreate()
		_ = b.states.Set(ctx, chatID, dialog.StateCatName, dialog.Payload{})
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Введите название категории:", navKeyboard(false, true)))

	case "rn":
		m.OpenEdit(id)
		_ = b.states.Set(ctx, chatID, dialog.StateCatRename, dialog.Payload{"id": id})
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Введите новое название:", navKeyboard(false, true)))

	case "del":
		m.RequestDelete(id)
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Удалить эту категорию?", confirmDeleteKeyboard("cat")))

	case "delyes":
		delID := m.PendingDelete()
		err := m.ConfirmDelete(ctx, func(ctx context.Context) error {
			return b.categories.Delete(ctx, delID)
		})
		if err != nil {
			_ = b.answerCallback(cb, "Не удалось удалить категорию", true)
			b.showCategoryList(ctx, chatID, &msgID)
			return
		}
		b.showCategoryList(ctx, chatID, &msgID)

	case "delno":
		m.CancelDelete()
		b.showCategoryList(ctx, chatID, &msgID)

	case "reload":
		m.Reload(ctx)
		b.showCategoryList(ctx, chatID, &msgID)

	case "back":
		b.showCategoryList(ctx, chatID, &msgID)
	}
}

// onCategoryInput — текстовые шаги форм категории.
func (b *Bot) onCategoryInput(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	m := b.catScreen(ctx, chatID)

	switch st.State {
	case dialog.StateCatName:
		c := catalog.Category{Name: text}
		if err := catalog.ValidateCategory(c); err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		err := m.Mutate(ctx, func(ctx context.Context) error {
			_, err := b.categories.Create(ctx, c)
			return err
		})
		_ = b.states.Reset(ctx, chatID)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Не удалось создать категорию"))
			return
		}
		b.showCategoryList(ctx, chatID, nil)

	case dialog.StateCatRename:
		id, _ := dialog.GetInt64(st.Payload, "id")
		// форма предзаполняется текущими значениями сущности
		var cur *catalog.Category
		for i, c := range m.Items() {
			if c.ID == id {
				cur = &m.Items()[i]
				break
			}
		}
		if cur == nil {
			_ = b.states.Reset(ctx, chatID)
			b.send(tgbotapi.NewMessage(chatID, "Категория не найдена"))
			return
		}
		upd := *cur
		upd.Name = text
		if err := catalog.ValidateCategory(upd); err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		err := m.Mutate(ctx, func(ctx context.Context) error {
			_, err := b.categories.Update(ctx, id, upd)
			return err
		})
		_ = b.states.Reset(ctx, chatID)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Не удалось обновить категорию"))
			return
		}
		b.showCategoryList(ctx, chatID, nil)
	}
}
