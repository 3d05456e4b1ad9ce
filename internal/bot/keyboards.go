package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mkazantsev/workshop-bot/internal/domain/catalog"
	"github.com/mkazantsev/workshop-bot/internal/domain/orders"
)

// mainReplyKeyboard — нижняя панель с экранами консоли.
func mainReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton("Категории"), tgbotapi.NewKeyboardButton("Материалы")},
			{tgbotapi.NewKeyboardButton("Закупки"), tgbotapi.NewKeyboardButton("Заказы")},
		},
	}
}

func navKeyboard(back bool, cancel bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if back {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "nav:back"))
	}
	if cancel {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖️ Отменить", "nav:cancel"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// confirmDeleteKeyboard — явное подтверждение удаления; отказ не делает
// ни одного сетевого вызова.
func confirmDeleteKeyboard(prefix string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", prefix+":delyes"),
			tgbotapi.NewInlineKeyboardButtonData("✖️ Нет", prefix+":delno"),
		),
	)
}

func unitKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}
	for _, u := range catalog.Units {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(u.Label(), "mat:unit:"+string(u)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// statusKeyboard — смена статуса из карточки заказа.
func statusKeyboard(orderID int64, current orders.Status) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}
	for _, st := range orders.Statuses {
		if st == current || !orders.CanTransition(current, st) {
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(st.Label(), fmt.Sprintf("ord:st:%d:%s", orderID, st)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
