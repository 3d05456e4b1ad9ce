package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

/*** HELPERS ***/

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

// sendOrEdit показывает экран: редактирует сообщение, если есть его id,
// иначе шлёт новое.
func (b *Bot) sendOrEdit(chatID int64, editMsgID *int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, text, kb))
		return
	}
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = kb
	b.send(m)
}

// formatPrice — деньги с двумя знаками только при показе;
// в payload значения уходят с полной точностью.
func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f ₽", v)
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatDate принимает RFC3339 или YYYY-MM-DD, показывает ДД.ММ.ГГГГ.
func formatDate(s string) string {
	if s == "" {
		return "—"
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02.01.2006")
		}
	}
	return s
}

// parsePositiveFloat разбирает пользовательский ввод числа,
// запятая допускается как десятичный разделитель.
func parsePositiveFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("введите число")
	}
	if v <= 0 {
		return 0, fmt.Errorf("число должно быть больше 0")
	}
	return v, nil
}

func parseNonNegativeFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("введите число")
	}
	if v < 0 {
		return 0, fmt.Errorf("число не может быть отрицательным")
	}
	return v, nil
}

// parseDateInput: «-» — пусто (или сегодня, решает вызывающий),
// иначе строго YYYY-MM-DD.
func parseDateInput(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "-" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("дата в формате ГГГГ-ММ-ДД, либо «-»")
	}
	return s, nil
}

// skipDash: «-» означает «пропустить поле».
func skipDash(s string) string {
	s = strings.TrimSpace(s)
	if s == "-" {
		return ""
	}
	return s
}
