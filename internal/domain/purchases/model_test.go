package purchases

import "testing"

func TestTotalPrice(t *testing.T) {
	if got := TotalPrice(4, 250.50); got != 1002.0 {
		t.Errorf("TotalPrice(4, 250.50) = %v, want 1002", got)
	}
}

func TestValidate(t *testing.T) {
	ok := Purchase{MaterialID: 1, Count: 2, UnitPrice: 99.90, PurchaseDate: "2024-03-07"}
	if err := Validate(ok); err != nil {
		t.Fatalf("valid purchase rejected: %v", err)
	}

	cases := []struct {
		name string
		p    Purchase
	}{
		{"no material", Purchase{Count: 1, UnitPrice: 1}},
		{"zero count", Purchase{MaterialID: 1, UnitPrice: 1}},
		{"negative count", Purchase{MaterialID: 1, Count: -2, UnitPrice: 1}},
		{"zero unit price", Purchase{MaterialID: 1, Count: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Validate(tc.p); err == nil {
				t.Errorf("expected validation error for %+v", tc.p)
			}
		})
	}
}
