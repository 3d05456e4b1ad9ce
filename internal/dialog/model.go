package dialog

type State string

const (
	StateIdle State = "idle"

	// Категории
	StateCatName   State = "cat_name"   // ввод названия при создании
	StateCatRename State = "cat_rename" // ввод нового имени выбранной категории

	// Материалы
	StateMatPickCat     State = "mat_pick_cat" // выбор категории при создании
	StateMatName        State = "mat_name"
	StateMatArticle     State = "mat_article" // артикул, «-» чтобы пропустить
	StateMatDescription State = "mat_desc"    // описание, «-» чтобы пропустить
	StateMatUnit        State = "mat_unit"    // выбор единицы измерения
	StateMatRemains     State = "mat_remains"
	StateMatMin         State = "mat_min"
	StateMatRename      State = "mat_rename"       // новое название в карточке
	StateMatEditRemains State = "mat_edit_remains" // новый остаток в карточке
	StateMatEditMin     State = "mat_edit_min"     // новый минимум в карточке

	// Закупки
	StatePurPickMat State = "pur_pick_mat"
	StatePurCount   State = "pur_count"
	StatePurPrice   State = "pur_price"
	StatePurDate    State = "pur_date"  // YYYY-MM-DD, «-» — сегодня
	StatePurNotes   State = "pur_notes" // «-» чтобы пропустить

	// Заказы
	StateOrdPickMat State = "ord_pick_mat"
	StateOrdClient  State = "ord_client"
	StateOrdPrice   State = "ord_price"
	StateOrdQty     State = "ord_qty"
	StateOrdPlanned State = "ord_planned" // YYYY-MM-DD, «-» чтобы пропустить
	StateOrdNotes   State = "ord_notes"   // «-» чтобы пропустить

	// Редактирование карточки заказа: в payload лежит поле и id
	StateOrdEditClient  State = "ord_edit_client"
	StateOrdEditPrice   State = "ord_edit_price"
	StateOrdEditQty     State = "ord_edit_qty"
	StateOrdEditPlanned State = "ord_edit_planned" // «-» очищает дату
	StateOrdEditNotes   State = "ord_edit_notes"   // «-» очищает примечание
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}

// GetString — безопасное чтение строки из payload.
func GetString(p Payload, key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt64 читает число из payload. После JSON-сериализации
// все числа приходят как float64.
func GetInt64(p Payload, key string) (int64, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// GetFloat — безопасное чтение float из payload.
func GetFloat(p Payload, key string) (float64, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}
