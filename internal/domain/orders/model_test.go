package orders

import (
	"testing"
	"time"
)

func TestTotalAmount(t *testing.T) {
	if got := TotalAmount(150.00, 3); got != 450.00 {
		t.Errorf("TotalAmount(150, 3) = %v, want 450", got)
	}
	if got := TotalAmount(0, 10); got != 0 {
		t.Errorf("TotalAmount(0, 10) = %v, want 0", got)
	}
	// дробные количества (метры, килограммы)
	if got := TotalAmount(100, 2.5); got != 250 {
		t.Errorf("TotalAmount(100, 2.5) = %v, want 250", got)
	}
}

func TestNextNumber(t *testing.T) {
	date := time.Date(2024, 3, 7, 15, 30, 0, 0, time.UTC)
	if got := NextNumber(4, date); got != "ORD-20240307-005" {
		t.Errorf("NextNumber(4) = %q, want ORD-20240307-005", got)
	}
	if got := NextNumber(0, date); got != "ORD-20240307-001" {
		t.Errorf("NextNumber(0) = %q, want ORD-20240307-001", got)
	}
	// генерация детерминирована
	if NextNumber(4, date) != NextNumber(4, date) {
		t.Error("NextNumber is not deterministic")
	}
}

func TestStampSetsCompletionDateOnce(t *testing.T) {
	now := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)
	o := Order{ID: 1, Status: StatusInProgress}

	o.Stamp(StatusReady, now)
	if o.Status != StatusReady {
		t.Fatalf("status = %v, want ready", o.Status)
	}
	first := o.ActualCompletionDate
	if first == "" {
		t.Fatal("actual_completion_date not set on transition to ready")
	}

	later := now.Add(48 * time.Hour)
	o.Stamp(StatusDelivered, later)
	if o.Status != StatusDelivered {
		t.Fatalf("status = %v, want delivered", o.Status)
	}
	if o.ActualCompletionDate != first {
		t.Errorf("completion date overwritten: %q -> %q", first, o.ActualCompletionDate)
	}
}

func TestStampNonCompletedLeavesDateEmpty(t *testing.T) {
	o := Order{Status: StatusNew}
	o.Stamp(StatusInProgress, time.Now())
	if o.ActualCompletionDate != "" {
		t.Errorf("completion date set on in_progress: %q", o.ActualCompletionDate)
	}
	o.Stamp(StatusCancelled, time.Now())
	if o.ActualCompletionDate != "" {
		t.Errorf("completion date set on cancelled: %q", o.ActualCompletionDate)
	}
}

func TestApplyEditRecomputesTotal(t *testing.T) {
	cur := Order{
		ID: 1, MaterialID: 2, ClientName: "Иванов",
		Price: 150, Quantity: 3, TotalAmount: 450, Status: StatusInProgress,
	}

	upd := ApplyEdit(cur, func(o *Order) { o.Quantity = 5 })
	if upd.TotalAmount != 750 {
		t.Errorf("total = %v, want 750", upd.TotalAmount)
	}

	upd = ApplyEdit(cur, func(o *Order) { o.Price = 200 })
	if upd.TotalAmount != 600 {
		t.Errorf("total = %v, want 600", upd.TotalAmount)
	}

	// исходная сущность не меняется
	if cur.Quantity != 3 || cur.Price != 150 || cur.TotalAmount != 450 {
		t.Errorf("source order mutated: %+v", cur)
	}
}

func TestApplyEditKeepsCompletionDate(t *testing.T) {
	cur := Order{
		ID: 1, MaterialID: 2, ClientName: "Иванов",
		Price: 150, Quantity: 3, TotalAmount: 450,
		Status:               StatusReady,
		ActualCompletionDate: "2024-03-07T12:00:00Z",
	}

	upd := ApplyEdit(cur, func(o *Order) { o.Price = 200 })
	if upd.ActualCompletionDate != "2024-03-07T12:00:00Z" {
		t.Errorf("completion date lost on edit: %q", upd.ActualCompletionDate)
	}
	if upd.TotalAmount != 600 {
		t.Errorf("total = %v, want 600", upd.TotalAmount)
	}

	// даже если change трогает дату, побеждает до-правочная копия
	upd = ApplyEdit(cur, func(o *Order) { o.ActualCompletionDate = "" })
	if upd.ActualCompletionDate != "2024-03-07T12:00:00Z" {
		t.Errorf("completion date dropped by change func: %q", upd.ActualCompletionDate)
	}
}

func TestCanTransitionIsPermissive(t *testing.T) {
	// явных бизнес-ограничений нет: любой статус за любым
	for _, from := range Statuses {
		for _, to := range Statuses {
			if !CanTransition(from, to) {
				t.Errorf("transition %s -> %s unexpectedly forbidden", from, to)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	ok := Order{MaterialID: 2, ClientName: "Иванов", Price: 150, Quantity: 3, Status: StatusNew}
	if err := Validate(ok); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}

	cases := []struct {
		name string
		o    Order
	}{
		{"no material", Order{ClientName: "Иванов", Quantity: 1, Status: StatusNew}},
		{"blank client", Order{MaterialID: 1, ClientName: " ", Quantity: 1, Status: StatusNew}},
		{"zero quantity", Order{MaterialID: 1, ClientName: "Иванов", Quantity: 0, Status: StatusNew}},
		{"negative price", Order{MaterialID: 1, ClientName: "Иванов", Quantity: 1, Price: -5, Status: StatusNew}},
		{"bad status", Order{MaterialID: 1, ClientName: "Иванов", Quantity: 1, Status: "done"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Validate(tc.o); err == nil {
				t.Errorf("expected validation error for %+v", tc.o)
			}
		})
	}
}
