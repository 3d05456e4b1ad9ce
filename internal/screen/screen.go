// Package screen — машина состояний экрана админки: загрузка списков,
// форма создания/редактирования, подтверждение удаления.
// Экран владеет своей копией данных; копия никогда не авторитетна,
// при уходе с экрана она выбрасывается и при возврате загружается заново.
package screen

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

var ErrNotReady = errors.New("screen: not ready")

// Phase — фаза экрана.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

// FormState — подсостояние формы, ортогонально фазе списка.
type FormState int

const (
	FormHidden FormState = iota
	FormCreating
	FormEditing
)

// LoadFunc грузит весь список ресурса.
type LoadFunc[T any] func(ctx context.Context) ([]T, error)

// MutateFunc — одна мутация (create/update/delete) против бэкенда.
type MutateFunc func(ctx context.Context) error

// Slot — ресурс на экране. Различаем «ещё не загружен» и «загружен пустым»:
// неудачное чтение оставляет слот незагруженным, а не пустым.
type Slot[T any] struct {
	loaded bool
	items  []T
}

func (s Slot[T]) Loaded() bool { return s.loaded }
func (s Slot[T]) Items() []T   { return s.items }

// Manager — экран одного ресурса P с опциональным кросс-ресурсом C
// (например, заказы + материалы для имён и остатков).
type Manager[P, C any] struct {
	log     *slog.Logger
	primary LoadFunc[P]
	cross   LoadFunc[C] // nil, если кросс-ресурс экрану не нужен

	phase   Phase
	failMsg string

	primarySlot Slot[P]
	crossSlot   Slot[C]

	form      FormState
	editingID int64

	pendingDelete int64 // 0 — подтверждение не запрошено
}

func New[P, C any](log *slog.Logger, primary LoadFunc[P], cross LoadFunc[C]) *Manager[P, C] {
	return &Manager[P, C]{log: log, primary: primary, cross: cross}
}

func (m *Manager[P, C]) Phase() Phase        { return m.phase }
func (m *Manager[P, C]) FailMessage() string { return m.failMsg }

func (m *Manager[P, C]) Items() []P        { return m.primarySlot.items }
func (m *Manager[P, C]) Loaded() bool      { return m.primarySlot.loaded }
func (m *Manager[P, C]) CrossItems() []C   { return m.crossSlot.items }
func (m *Manager[P, C]) CrossLoaded() bool { return m.crossSlot.loaded }

// Load переводит экран в Loading, грузит основной и кросс-ресурс
// параллельно и ждёт оба. Неудачное чтение не валит экран:
// слот остаётся незагруженным, экран становится Ready.
// Failed остаётся только за отменой контекста.
func (m *Manager[P, C]) Load(ctx context.Context) {
	m.phase = PhaseLoading
	m.failMsg = ""
	m.primarySlot = Slot[P]{}
	m.crossSlot = Slot[C]{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := m.primary(gctx)
		if err != nil {
			m.log.Warn("primary list load failed", "err", err)
			return nil
		}
		m.primarySlot = Slot[P]{loaded: true, items: items}
		return nil
	})
	if m.cross != nil {
		g.Go(func() error {
			items, err := m.cross(gctx)
			if err != nil {
				m.log.Warn("cross list load failed", "err", err)
				return nil
			}
			m.crossSlot = Slot[C]{loaded: true, items: items}
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		m.phase = PhaseFailed
		m.failMsg = "Не удалось загрузить данные"
		return
	}
	m.phase = PhaseReady
}

// Reload — то же, что Load; вызывается из Ready или Failed.
func (m *Manager[P, C]) Reload(ctx context.Context) { m.Load(ctx) }

/* Форма */

func (m *Manager[P, C]) Form() FormState  { return m.form }
func (m *Manager[P, C]) EditingID() int64 { return m.editingID }

func (m *Manager[P, C]) OpenCreate() {
	m.form = FormCreating
	m.editingID = 0
}

func (m *Manager[P, C]) OpenEdit(id int64) {
	m.form = FormEditing
	m.editingID = id
}

func (m *Manager[P, C]) CloseForm() {
	m.form = FormHidden
	m.editingID = 0
}

/* Мутации */

// Mutate выполняет create/update. Допустима только из Ready; при успехе
// список перезагружается целиком, при ошибке экран остаётся Ready,
// ошибка уходит наверх для показа пользователю.
func (m *Manager[P, C]) Mutate(ctx context.Context, op MutateFunc) error {
	if m.phase != PhaseReady {
		return ErrNotReady
	}
	if err := op(ctx); err != nil {
		return err
	}
	m.CloseForm()
	m.Reload(ctx)
	return nil
}

// Patch локально правит загруженный список без перезагрузки
// (оптимистичное обновление; расхождение с бэкендом живёт до
// следующего Reload).
func (m *Manager[P, C]) Patch(apply func(items []P)) {
	if !m.primarySlot.loaded {
		return
	}
	apply(m.primarySlot.items)
}

/* Удаление с подтверждением */

// RequestDelete запоминает кандидата на удаление. Сетевых вызовов нет,
// пока пользователь не подтвердит.
func (m *Manager[P, C]) RequestDelete(id int64) {
	m.pendingDelete = id
}

// CancelDelete — отказ от удаления: состояние списка не меняется,
// сетевых вызовов ноль.
func (m *Manager[P, C]) CancelDelete() {
	m.pendingDelete = 0
}

func (m *Manager[P, C]) PendingDelete() int64 { return m.pendingDelete }

// ConfirmDelete выполняет удаление подтверждённого кандидата.
func (m *Manager[P, C]) ConfirmDelete(ctx context.Context, op MutateFunc) error {
	if m.pendingDelete == 0 {
		return errors.New("screen: no delete pending")
	}
	m.pendingDelete = 0
	return m.Mutate(ctx, op)
}
