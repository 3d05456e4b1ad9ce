package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mkazantsev/workshop-bot/internal/dialog"
	"github.com/mkazantsev/workshop-bot/internal/domain/catalog"
	"github.com/mkazantsev/workshop-bot/internal/screen"
)

func (b *Bot) matScreen(ctx context.Context, chatID int64) *screen.Manager[catalog.Material, catalog.Category] {
	if m := b.scr(chatID).materials; m != nil {
		return m
	}
	return b.openMaterialsScreen(ctx, chatID)
}

func stockBadge(s catalog.StockStatus) string {
	switch s {
	case catalog.StockOut:
		return "❌"
	case catalog.StockLow:
		return "⚠️"
	default:
		return "✅"
	}
}

func (b *Bot) matCategoryName(m *screen.Manager[catalog.Material, catalog.Category], id int64) string {
	for _, c := range m.CrossItems() {
		if c.ID == id {
			return c.Name
		}
	}
	return fmt.Sprintf("Категория #%d", id)
}

func (b *Bot) findMaterial(m *screen.Manager[catalog.Material, catalog.Category], id int64) *catalog.Material {
	for i, it := range m.Items() {
		if it.ID == id {
			return &m.Items()[i]
		}
	}
	return nil
}

func (b *Bot) showMaterialList(ctx context.Context, chatID int64, editMsgID *int) {
	m := b.matScreen(ctx, chatID)

	text := fmt.Sprintf("📦 Материалы (%d)", len(m.Items()))
	if !m.Loaded() {
		text = "📦 Материалы\n⚠️ Список не загрузился — нажмите «Обновить»"
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, it := range m.Items() {
		label := fmt.Sprintf("%s %s — %s %s", stockBadge(it.StockStatus()), it.Name, formatQty(it.Remains), it.Unit.Label())
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("mat:item:%d", it.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Создать", "mat:add"),
		tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", "mat:reload"),
		tgbotapi.NewInlineKeyboardButtonData("📤 Экспорт", "mat:export"),
	))
	b.sendOrEdit(chatID, editMsgID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showMaterialCard(chatID int64, editMsgID int, m *screen.Manager[catalog.Material, catalog.Category], id int64) {
	it := b.findMaterial(m, id)
	if it == nil {
		b.editTextAndClear(chatID, editMsgID, "Материал не найден")
		return
	}
	article := it.ArticleNumber
	if article == "" {
		article = "—"
	}
	desc := it.Description
	if desc == "" {
		desc = "—"
	}
	text := fmt.Sprintf(
		"📦 %s\nАртикул: %s\nОписание: %s\nКатегория: %s\nОстаток: %s %s (мин: %s)\nСтатус: %s",
		it.Name, article, desc, b.matCategoryName(m, it.CategoryID),
		formatQty(it.Remains), it.Unit.Label(), formatQty(it.MinCount),
		it.StockStatus().Label(),
	)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Название", fmt.Sprintf("mat:rn:%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("🔢 Остаток", fmt.Sprintf("mat:rem:%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("📉 Минимум", fmt.Sprintf("mat:min:%d", id)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Ед. изм.", fmt.Sprintf("mat:unitpick:%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("📁 Категория", fmt.Sprintf("mat:catpick:%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", fmt.Sprintf("mat:del:%d", id)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ К списку", "mat:back"),
		),
	)
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID, text, kb))
}

// showMaterialPickCategory — выбор категории: при создании (edit_id == 0)
// или смене категории в карточке.
func (b *Bot) showMaterialPickCategory(chatID int64, editMsgID int, m *screen.Manager[catalog.Material, catalog.Category], editID int64) {
	if !m.CrossLoaded() || len(m.CrossItems()) == 0 {
		b.editTextAndClear(chatID, editMsgID, "Сначала создайте хотя бы одну категорию")
		return
	}
	action := "pickcat"
	if editID != 0 {
		action = "setcat"
	}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, c := range m.CrossItems() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Name, fmt.Sprintf("mat:%s:%d", action, c.ID)),
		))
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID, "Выберите категорию:", tgbotapi.NewInlineKeyboardMarkup(rows...)))
}

func (b *Bot) onMaterialCallback(ctx context.Context, chatID int64, msgID int, cb *tgbotapi.CallbackQuery, action string, id int64, arg string) {
	m := b.matScreen(ctx, chatID)

	switch action {
	case "item":
		b.showMaterialCard(chatID, msgID, m, id)

	case "add":
		m.OpenCreate()
		_ = b.states.Set(ctx, chatID, dialog.StateMatPickCat, dialog.Payload{})
		b.showMaterialPickCategory(chatID, msgID, m, 0)

	case "pickcat":
		st, _ := b.states.Get(ctx, chatID)
		st.Payload["cat_id"] = id
		_ = b.states.Set(ctx, chatID, dialog.StateMatName, st.Payload)
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Введите название материала:", navKeyboard(false, true)))

	case "unit":
		b.onMaterialUnitChosen(ctx, chatID, msgID, m, catalog.Unit(arg))

	case "rn":
		m.OpenEdit(id)
		_ = b.states.Set(ctx, chatID, dialog.StateMatRename, dialog.Payload{"id": id})
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Введите новое название:", navKeyboard(false, true)))

	case "rem":
		m.OpenEdit(id)
		_ = b.states.Set(ctx, chatID, dialog.StateMatEditRemains, dialog.Payload{"id": id})
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Введите новый остаток:", navKeyboard(false, true)))

	case "min":
		m.OpenEdit(id)
		_ = b.states.Set(ctx, chatID, dialog.StateMatEditMin, dialog.Payload{"id": id})
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Введите новый минимальный остаток:", navKeyboard(false, true)))

	case "unitpick":
		m.OpenEdit(id)
		_ = b.states.Set(ctx, chatID, dialog.StateMatUnit, dialog.Payload{"edit_id": id})
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Выберите единицу измерения:", unitKeyboard()))

	case "catpick":
		m.OpenEdit(id)
		_ = b.states.Set(ctx, chatID, dialog.StateMatPickCat, dialog.Payload{"edit_id": id})
		b.showMaterialPickCategory(chatID, msgID, m, id)

	case "setcat":
		b.onMaterialFieldEdit(ctx, chatID, msgID, m, func(it *catalog.Material) { it.CategoryID = id })

	case "del":
		m.RequestDelete(id)
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Удалить этот материал?", confirmDeleteKeyboard("mat")))

	case "delyes":
		delID := m.PendingDelete()
		err := m.ConfirmDelete(ctx, func(ctx context.Context) error {
			return b.materials.Delete(ctx, delID)
		})
		if err != nil {
			_ = b.answerCallback(cb, "Не удалось удалить материал", true)
		}
		b.showMaterialList(ctx, chatID, &msgID)

	case "delno":
		m.CancelDelete()
		b.showMaterialList(ctx, chatID, &msgID)

	case "reload":
		m.Reload(ctx)
		b.showMaterialList(ctx, chatID, &msgID)

	case "back":
		b.showMaterialList(ctx, chatID, &msgID)

	case "export":
		b.exportMaterials(ctx, chatID, cb, m)
	}
}

// onMaterialUnitChosen — единица выбрана либо в мастере создания,
// либо при правке карточки.
func (b *Bot) onMaterialUnitChosen(ctx context.Context, chatID int64, msgID int, m *screen.Manager[catalog.Material, catalog.Category], unit catalog.Unit) {
	if !unit.Valid() {
		b.send(tgbotapi.NewMessage(chatID, "Неизвестная единица измерения"))
		return
	}
	st, _ := b.states.Get(ctx, chatID)

	if _, ok := dialog.GetInt64(st.Payload, "edit_id"); ok {
		b.onMaterialFieldEdit(ctx, chatID, msgID, m, func(it *catalog.Material) { it.Unit = unit })
		return
	}

	// мастер создания: единица выбрана, дальше остаток
	st.Payload["unit"] = string(unit)
	_ = b.states.Set(ctx, chatID, dialog.StateMatRemains, st.Payload)
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Введите остаток на складе:", navKeyboard(false, true)))
}

// onMaterialFieldEdit собирает payload из текущей сущности (форма
// предзаполнена её значениями), меняет одно поле и шлёт PUT целиком.
func (b *Bot) onMaterialFieldEdit(ctx context.Context, chatID int64, msgID int, m *screen.Manager[catalog.Material, catalog.Category], change func(*catalog.Material)) {
	st, _ := b.states.Get(ctx, chatID)
	id, ok := dialog.GetInt64(st.Payload, "edit_id")
	if !ok {
		id = m.EditingID()
	}
	cur := b.findMaterial(m, id)
	if cur == nil {
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "Материал не найден")
		return
	}
	upd := *cur
	change(&upd)
	if err := catalog.ValidateMaterial(upd); err != nil {
		b.send(tgbotapi.NewMessage(chatID, err.Error()))
		return
	}
	err := m.Mutate(ctx, func(ctx context.Context) error {
		_, err := b.materials.Update(ctx, id, upd)
		return err
	})
	_ = b.states.Reset(ctx, chatID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось обновить материал"))
		return
	}
	b.showMaterialList(ctx, chatID, &msgID)
}

// onMaterialInput — текстовые шаги мастера создания и правок карточки.
func (b *Bot) onMaterialInput(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	_ = b.matScreen(ctx, chatID)

	switch st.State {
	case dialog.StateMatName:
		st.Payload["name"] = text
		_ = b.states.Set(ctx, chatID, dialog.StateMatArticle, st.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Артикул (или «-», чтобы пропустить):"))

	case dialog.StateMatArticle:
		st.Payload["article"] = skipDash(text)
		_ = b.states.Set(ctx, chatID, dialog.StateMatDescription, st.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Описание (или «-», чтобы пропустить):"))

	case dialog.StateMatDescription:
		st.Payload["description"] = skipDash(text)
		_ = b.states.Set(ctx, chatID, dialog.StateMatUnit, st.Payload)
		msg := tgbotapi.NewMessage(chatID, "Выберите единицу измерения:")
		msg.ReplyMarkup = unitKeyboard()
		b.send(msg)

	case dialog.StateMatRemains:
		v, err := parseNonNegativeFloat(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		st.Payload["remains"] = v
		_ = b.states.Set(ctx, chatID, dialog.StateMatMin, st.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Введите минимальный остаток:"))

	case dialog.StateMatMin:
		v, err := parseNonNegativeFloat(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		b.finishMaterialCreate(ctx, chatID, st, v)

	case dialog.StateMatRename:
		b.materialCardEditFromInput(ctx, chatID, st, func(it *catalog.Material) { it.Name = text })

	case dialog.StateMatEditRemains:
		v, err := parseNonNegativeFloat(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		b.materialCardEditFromInput(ctx, chatID, st, func(it *catalog.Material) { it.Remains = v })

	case dialog.StateMatEditMin:
		v, err := parseNonNegativeFloat(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		b.materialCardEditFromInput(ctx, chatID, st, func(it *catalog.Material) { it.MinCount = v })
	}
}

func (b *Bot) finishMaterialCreate(ctx context.Context, chatID int64, st *dialog.Item, minCount float64) {
	m := b.matScreen(ctx, chatID)

	catID, _ := dialog.GetInt64(st.Payload, "cat_id")
	name, _ := dialog.GetString(st.Payload, "name")
	article, _ := dialog.GetString(st.Payload, "article")
	desc, _ := dialog.GetString(st.Payload, "description")
	unit, _ := dialog.GetString(st.Payload, "unit")
	remains, _ := dialog.GetFloat(st.Payload, "remains")

	mat := catalog.Material{
		Name:          name,
		Description:   desc,
		ArticleNumber: article,
		Unit:          catalog.Unit(unit),
		Remains:       remains,
		MinCount:      minCount,
		CategoryID:    catID,
	}
	if err := catalog.ValidateMaterial(mat); err != nil {
		b.send(tgbotapi.NewMessage(chatID, err.Error()))
		return
	}
	err := m.Mutate(ctx, func(ctx context.Context) error {
		_, err := b.materials.Create(ctx, mat)
		return err
	})
	_ = b.states.Reset(ctx, chatID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось создать материал"))
		return
	}
	b.showMaterialList(ctx, chatID, nil)
}

func (b *Bot) materialCardEditFromInput(ctx context.Context, chatID int64, st *dialog.Item, change func(*catalog.Material)) {
	m := b.matScreen(ctx, chatID)
	id, _ := dialog.GetInt64(st.Payload, "id")
	cur := b.findMaterial(m, id)
	if cur == nil {
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Материал не найден"))
		return
	}
	upd := *cur
	change(&upd)
	if err := catalog.ValidateMaterial(upd); err != nil {
		b.send(tgbotapi.NewMessage(chatID, err.Error()))
		return
	}
	err := m.Mutate(ctx, func(ctx context.Context) error {
		_, err := b.materials.Update(ctx, id, upd)
		return err
	})
	_ = b.states.Reset(ctx, chatID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось обновить материал"))
		return
	}
	b.showMaterialList(ctx, chatID, nil)
}
