package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mkazantsev/workshop-bot/internal/backend"
	"github.com/mkazantsev/workshop-bot/internal/dialog"
	"github.com/mkazantsev/workshop-bot/internal/domain/catalog"
	"github.com/mkazantsev/workshop-bot/internal/domain/purchases"
	"github.com/mkazantsev/workshop-bot/internal/screen"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	states    *dialog.Repo
	adminChat int64

	categories *backend.Categories
	materials  *backend.Materials
	purchases  *backend.Purchases
	orders     *backend.Orders

	// Экраны по чатам. Цикл обновлений однопоточный, поэтому
	// доступ к карте не синхронизируется.
	screens map[int64]*chatScreens
}

// chatScreens — активные экраны одного чата. При входе на экран
// менеджер создаётся заново: локальная копия с прошлого визита
// выбрасывается и список грузится свежим.
type chatScreens struct {
	categories *screen.Manager[catalog.Category, struct{}]
	materials  *screen.Manager[catalog.Material, catalog.Category]
	purchases  *screen.Manager[purchases.Purchase, catalog.Material]
	orders     *screen.OrderBoard
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, statesRepo *dialog.Repo, adminChatID int64,
	categoriesSvc *backend.Categories, materialsSvc *backend.Materials,
	purchasesSvc *backend.Purchases, ordersSvc *backend.Orders) *Bot {

	return &Bot{
		api: api, log: log, states: statesRepo, adminChat: adminChatID,
		categories: categoriesSvc, materials: materialsSvc,
		purchases: purchasesSvc, orders: ordersSvc,
		screens: map[int64]*chatScreens{},
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) scr(chatID int64) *chatScreens {
	s, ok := b.screens[chatID]
	if !ok {
		s = &chatScreens{}
		b.screens[chatID] = s
	}
	return s
}

/* Открытие экранов: свежий менеджер, остальные экраны чата сбрасываются */

func (b *Bot) openCategoriesScreen(ctx context.Context, chatID int64) *screen.Manager[catalog.Category, struct{}] {
	m := screen.New[catalog.Category, struct{}](b.log, b.categories.List, nil)
	m.Load(ctx)
	s := b.scr(chatID)
	*s = chatScreens{categories: m}
	return m
}

func (b *Bot) openMaterialsScreen(ctx context.Context, chatID int64) *screen.Manager[catalog.Material, catalog.Category] {
	m := screen.New(b.log, b.materials.List, b.categories.List)
	m.Load(ctx)
	s := b.scr(chatID)
	*s = chatScreens{materials: m}
	return m
}

func (b *Bot) openPurchasesScreen(ctx context.Context, chatID int64) *screen.Manager[purchases.Purchase, catalog.Material] {
	m := screen.New(b.log, b.purchases.List, b.materials.List)
	m.Load(ctx)
	s := b.scr(chatID)
	*s = chatScreens{purchases: m}
	return m
}

func (b *Bot) openOrdersScreen(ctx context.Context, chatID int64) *screen.OrderBoard {
	board := screen.NewOrderBoard(b.log, b.orders.List, b.materials.List, b.orders)
	board.Load(ctx)
	s := b.scr(chatID)
	*s = chatScreens{orders: board}
	return board
}
