package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	chatID := msg.Chat.ID

	// Консоль доступна только админскому чату; авторизация как таковая
	// живёт вне этой системы.
	if chatID != b.adminChat {
		b.send(tgbotapi.NewMessage(chatID, "Доступ запрещён"))
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	switch msg.Text {
	case "Категории":
		_ = b.states.Reset(ctx, chatID)
		b.showCategoryList(ctx, chatID, nil)
		return
	case "Материалы":
		_ = b.states.Reset(ctx, chatID)
		b.showMaterialList(ctx, chatID, nil)
		return
	case "Закупки":
		_ = b.states.Reset(ctx, chatID)
		b.showPurchaseList(ctx, chatID, nil)
		return
	case "Заказы":
		_ = b.states.Reset(ctx, chatID)
		b.showOrderList(ctx, chatID, nil)
		return
	}

	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("dialog state load failed", "err", err)
		return
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	switch {
	case strings.HasPrefix(string(st.State), "cat_"):
		b.onCategoryInput(ctx, chatID, st, text)
	case strings.HasPrefix(string(st.State), "mat_"):
		b.onMaterialInput(ctx, chatID, st, text)
	case strings.HasPrefix(string(st.State), "pur_"):
		b.onPurchaseInput(ctx, chatID, st, text)
	case strings.HasPrefix(string(st.State), "ord_"):
		b.onOrderInput(ctx, chatID, st, text)
	default:
		b.send(tgbotapi.NewMessage(chatID, "Выберите раздел кнопками снизу."))
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		_ = b.states.Reset(ctx, chatID)
		m := tgbotapi.NewMessage(chatID, "Консоль мастерской. Разделы — на кнопках снизу.")
		m.ReplyMarkup = mainReplyKeyboard()
		b.send(m)
	case "help":
		b.send(tgbotapi.NewMessage(chatID,
			"Команды:\n/start — главное меню\n/help — помощь\n\nРазделы: Категории, Материалы, Закупки, Заказы."))
	}
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	if chatID != b.adminChat {
		_ = b.answerCallback(cb, "Доступ запрещён", true)
		return
	}

	parts := strings.Split(cb.Data, ":")
	if len(parts) < 2 {
		_ = b.answerCallback(cb, "", false)
		return
	}

	// nav:cancel — отмена текущего шага формы, сетевых вызовов нет
	if parts[0] == "nav" {
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "Действие отменено")
		_ = b.answerCallback(cb, "", false)
		return
	}

	action := parts[1]
	var id int64
	var arg string
	if len(parts) > 2 {
		if n, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			id = n
		} else {
			arg = parts[2]
		}
	}
	if len(parts) > 3 {
		arg = parts[3]
	}

	switch parts[0] {
	case "cat":
		b.onCategoryCallback(ctx, chatID, msgID, cb, action, id)
	case "mat":
		b.onMaterialCallback(ctx, chatID, msgID, cb, action, id, arg)
	case "pur":
		b.onPurchaseCallback(ctx, chatID, msgID, cb, action, id)
	case "ord":
		b.onOrderCallback(ctx, chatID, msgID, cb, action, id, arg)
	}
	_ = b.answerCallback(cb, "", false)
}
