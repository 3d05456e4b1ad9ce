package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"

	"github.com/mkazantsev/workshop-bot/internal/domain/catalog"
	"github.com/mkazantsev/workshop-bot/internal/screen"
)

// exportOrders выгружает журнал заказов в Excel и шлёт файлом в чат.
func (b *Bot) exportOrders(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery, board *screen.OrderBoard) {
	if !board.Loaded() {
		_ = b.answerCallback(cb, "Список заказов не загружен", true)
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"number", "client_name", "material", "price", "quantity",
		"total_amount", "status", "planned_completion_date", "actual_completion_date", "notes",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = b.answerCallback(cb, "Ошибка формирования файла", true)
		return
	}

	for i, o := range board.Items() {
		row := []interface{}{
			o.Number, o.ClientName, board.MaterialName(o.MaterialID),
			o.Price, o.Quantity, o.TotalAmount, string(o.Status),
			o.PlannedCompletionDate, o.ActualCompletionDate, o.Notes,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			_ = b.answerCallback(cb, "Ошибка формирования файла", true)
			return
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		_ = b.answerCallback(cb, "Ошибка формирования файла", true)
		return
	}
	name := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: buf.Bytes()})
	b.send(doc)
	_ = b.answerCallback(cb, "Журнал выгружен", false)
}

// exportMaterials выгружает остатки материалов со статусами наличия.
func (b *Bot) exportMaterials(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery, m *screen.Manager[catalog.Material, catalog.Category]) {
	if !m.Loaded() {
		_ = b.answerCallback(cb, "Список материалов не загружен", true)
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"name", "article_number", "category", "unit", "remains", "min_count", "stock_status",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = b.answerCallback(cb, "Ошибка формирования файла", true)
		return
	}

	for i, it := range m.Items() {
		row := []interface{}{
			it.Name, it.ArticleNumber, b.matCategoryName(m, it.CategoryID),
			it.Unit.Label(), it.Remains, it.MinCount, string(it.StockStatus()),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			_ = b.answerCallback(cb, "Ошибка формирования файла", true)
			return
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		_ = b.answerCallback(cb, "Ошибка формирования файла", true)
		return
	}
	name := fmt.Sprintf("materials_%s.xlsx", time.Now().Format("20060102"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: buf.Bytes()})
	b.send(doc)
	_ = b.answerCallback(cb, "Остатки выгружены", false)
}
