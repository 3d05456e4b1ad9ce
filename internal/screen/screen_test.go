package screen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mkazantsev/workshop-bot/internal/domain/catalog"
	"github.com/mkazantsev/workshop-bot/internal/domain/orders"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadJoinsBothResources(t *testing.T) {
	m := New(testLogger(),
		func(ctx context.Context) ([]orders.Order, error) {
			return []orders.Order{{ID: 1, Number: "ORD-20240307-001"}}, nil
		},
		func(ctx context.Context) ([]catalog.Material, error) {
			return []catalog.Material{{ID: 2, Name: "Фанера"}}, nil
		},
	)
	m.Load(context.Background())

	if m.Phase() != PhaseReady {
		t.Fatalf("phase = %v, want Ready", m.Phase())
	}
	if !m.Loaded() || len(m.Items()) != 1 {
		t.Errorf("primary slot: loaded=%v items=%d", m.Loaded(), len(m.Items()))
	}
	if !m.CrossLoaded() || len(m.CrossItems()) != 1 {
		t.Errorf("cross slot: loaded=%v items=%d", m.CrossLoaded(), len(m.CrossItems()))
	}
}

func TestLoadFailureLeavesSlotUnloaded(t *testing.T) {
	m := New[orders.Order, catalog.Material](testLogger(),
		func(ctx context.Context) ([]orders.Order, error) {
			return nil, errors.New("boom")
		},
		func(ctx context.Context) ([]catalog.Material, error) {
			return []catalog.Material{}, nil
		},
	)
	m.Load(context.Background())

	// чтение не валит экран: Ready, но слот отличим от «загружен пустым»
	if m.Phase() != PhaseReady {
		t.Fatalf("phase = %v, want Ready", m.Phase())
	}
	if m.Loaded() {
		t.Error("failed load must leave primary slot unloaded")
	}
	if len(m.Items()) != 0 {
		t.Errorf("unloaded slot must read as empty, got %d items", len(m.Items()))
	}
	if !m.CrossLoaded() {
		t.Error("cross slot loaded empty, must be distinguishable from unloaded")
	}
}

func TestLoadCancelledContextFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := New[catalog.Category, struct{}](testLogger(),
		func(ctx context.Context) ([]catalog.Category, error) {
			return nil, ctx.Err()
		},
		nil,
	)
	m.Load(ctx)
	if m.Phase() != PhaseFailed {
		t.Fatalf("phase = %v, want Failed", m.Phase())
	}
	if m.FailMessage() == "" {
		t.Error("Failed phase must carry a user-facing message")
	}
}

func TestMutateOnlyFromReady(t *testing.T) {
	m := New[catalog.Category, struct{}](testLogger(),
		func(ctx context.Context) ([]catalog.Category, error) { return nil, nil },
		nil,
	)
	// до Load экран в Loading
	err := m.Mutate(context.Background(), func(ctx context.Context) error { return nil })
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("Mutate before Ready = %v, want ErrNotReady", err)
	}
}

func TestMutateSuccessReloads(t *testing.T) {
	loads := 0
	m := New[catalog.Category, struct{}](testLogger(),
		func(ctx context.Context) ([]catalog.Category, error) {
			loads++
			return []catalog.Category{{ID: 1}}, nil
		},
		nil,
	)
	m.Load(context.Background())
	m.OpenCreate()

	err := m.Mutate(context.Background(), func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if loads != 2 {
		t.Errorf("loads = %d, want 2 (mount + reload after mutation)", loads)
	}
	if m.Form() != FormHidden {
		t.Error("form must close after a successful mutation")
	}
}

func TestMutateFailureStaysReady(t *testing.T) {
	loads := 0
	m := New[catalog.Category, struct{}](testLogger(),
		func(ctx context.Context) ([]catalog.Category, error) {
			loads++
			return nil, nil
		},
		nil,
	)
	m.Load(context.Background())

	boom := errors.New("server says no")
	err := m.Mutate(context.Background(), func(ctx context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("Mutate = %v, want propagated error", err)
	}
	if m.Phase() != PhaseReady {
		t.Errorf("phase = %v, want Ready after failed mutation", m.Phase())
	}
	if loads != 1 {
		t.Errorf("loads = %d, failed mutation must not reload", loads)
	}
}

func TestFormSubState(t *testing.T) {
	m := New[catalog.Category, struct{}](testLogger(),
		func(ctx context.Context) ([]catalog.Category, error) { return nil, nil },
		nil,
	)
	if m.Form() != FormHidden {
		t.Fatal("form must start hidden")
	}
	m.OpenEdit(7)
	if m.Form() != FormEditing || m.EditingID() != 7 {
		t.Errorf("form = %v id = %d, want Editing(7)", m.Form(), m.EditingID())
	}
	m.CloseForm()
	if m.Form() != FormHidden || m.EditingID() != 0 {
		t.Error("CloseForm must reset the sub-state")
	}
}

func TestDeclinedDeleteIssuesNoCalls(t *testing.T) {
	loads, deletes := 0, 0
	m := New[catalog.Category, struct{}](testLogger(),
		func(ctx context.Context) ([]catalog.Category, error) {
			loads++
			return []catalog.Category{{ID: 5, Name: "Крепёж"}}, nil
		},
		nil,
	)
	m.Load(context.Background())

	m.RequestDelete(5)
	m.CancelDelete()
	if m.PendingDelete() != 0 {
		t.Error("CancelDelete must clear the pending id")
	}
	if deletes != 0 || loads != 1 {
		t.Errorf("declined confirmation: deletes=%d loads=%d, want 0/1", deletes, loads)
	}
	if len(m.Items()) != 1 {
		t.Error("list state must be unchanged after declined delete")
	}

	// подтверждённое удаление выполняет вызов и перезагружает
	m.RequestDelete(5)
	err := m.ConfirmDelete(context.Background(), func(ctx context.Context) error {
		deletes++
		return nil
	})
	if err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	if deletes != 1 || loads != 2 {
		t.Errorf("confirmed delete: deletes=%d loads=%d, want 1/2", deletes, loads)
	}
}

/* Экран заказов */

type fakeOrdersAPI struct {
	calls int
	err   error
	last  orders.Status
}

func (f *fakeOrdersAPI) UpdateStatus(ctx context.Context, id int64, st orders.Status) error {
	f.calls++
	f.last = st
	return f.err
}

func newTestBoard(api *fakeOrdersAPI, initial []orders.Order) *OrderBoard {
	b := NewOrderBoard(testLogger(),
		func(ctx context.Context) ([]orders.Order, error) { return initial, nil },
		func(ctx context.Context) ([]catalog.Material, error) {
			return []catalog.Material{{ID: 2, Name: "Фанера 10мм"}}, nil
		},
		api,
	)
	b.Load(context.Background())
	return b
}

func TestChangeStatusOptimisticStamp(t *testing.T) {
	api := &fakeOrdersAPI{}
	b := newTestBoard(api, []orders.Order{{ID: 1, Status: orders.StatusInProgress}})

	fixed := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }

	if err := b.ChangeStatus(context.Background(), 1, orders.StatusReady); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if api.calls != 1 || api.last != orders.StatusReady {
		t.Errorf("api calls=%d last=%v", api.calls, api.last)
	}

	got := b.Get(1)
	if got.Status != orders.StatusReady {
		t.Errorf("status = %v, want ready", got.Status)
	}
	want := fixed.Format(time.RFC3339)
	if got.ActualCompletionDate != want {
		t.Errorf("completion date = %q, want %q", got.ActualCompletionDate, want)
	}

	// вторая смена статуса не перетирает дату
	b.now = func() time.Time { return fixed.Add(48 * time.Hour) }
	if err := b.ChangeStatus(context.Background(), 1, orders.StatusDelivered); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if got := b.Get(1); got.ActualCompletionDate != want {
		t.Errorf("completion date overwritten: %q", got.ActualCompletionDate)
	}
}

func TestChangeStatusFailureKeepsLocalState(t *testing.T) {
	api := &fakeOrdersAPI{err: errors.New("503")}
	b := newTestBoard(api, []orders.Order{{ID: 1, Status: orders.StatusNew}})

	err := b.ChangeStatus(context.Background(), 1, orders.StatusReady)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := b.Get(1); got.Status != orders.StatusNew || got.ActualCompletionDate != "" {
		t.Errorf("local state changed on failure: %+v", *got)
	}
}

func TestChangeStatusNoReloadForAnyStatus(t *testing.T) {
	loads := 0
	api := &fakeOrdersAPI{}
	b := NewOrderBoard(testLogger(),
		func(ctx context.Context) ([]orders.Order, error) {
			loads++
			return []orders.Order{{ID: 1, Status: orders.StatusNew}}, nil
		},
		func(ctx context.Context) ([]catalog.Material, error) { return nil, nil },
		api,
	)
	b.Load(context.Background())

	// одна дисциплина на все статусы: оптимистичный патч, без перезагрузки
	for _, st := range []orders.Status{orders.StatusInProgress, orders.StatusCancelled, orders.StatusReady} {
		if err := b.ChangeStatus(context.Background(), 1, st); err != nil {
			t.Fatalf("ChangeStatus(%v): %v", st, err)
		}
	}
	if loads != 1 {
		t.Errorf("loads = %d, status change must not trigger reload", loads)
	}
	if got := b.Get(1); got.Status != orders.StatusReady {
		t.Errorf("status = %v, want ready", got.Status)
	}
}

func TestOrderBoardHelpers(t *testing.T) {
	b := newTestBoard(&fakeOrdersAPI{}, []orders.Order{{ID: 1}, {ID: 2}})

	if name := b.MaterialName(2); name != "Фанера 10мм" {
		t.Errorf("MaterialName(2) = %q", name)
	}
	if name := b.MaterialName(99); name != "?" {
		t.Errorf("MaterialName(99) = %q, want fallback", name)
	}

	fixed := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }
	if num := b.NextNumber(); num != "ORD-20240307-003" {
		t.Errorf("NextNumber = %q, want ORD-20240307-003", num)
	}
}
