package catalog

import "testing"

func TestMaterialStockStatus(t *testing.T) {
	cases := []struct {
		name     string
		remains  float64
		minCount float64
		want     StockStatus
	}{
		{"zero remains", 0, 5, StockOut},
		{"zero remains zero min", 0, 0, StockOut},
		{"below min", 3, 5, StockLow},
		{"exactly min", 5, 5, StockLow},
		{"above min", 10, 5, StockIn},
		{"positive with zero min", 1, 0, StockIn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MaterialStockStatus(tc.remains, tc.minCount)
			if got != tc.want {
				t.Errorf("MaterialStockStatus(%v, %v) = %v, want %v", tc.remains, tc.minCount, got, tc.want)
			}
		})
	}
}

func TestValidateMaterial(t *testing.T) {
	ok := Material{Name: "Фанера 10мм", Unit: UnitPiece, CategoryID: 1, Remains: 3, MinCount: 1}
	if err := ValidateMaterial(ok); err != nil {
		t.Fatalf("valid material rejected: %v", err)
	}

	cases := []struct {
		name string
		m    Material
	}{
		{"empty name", Material{Name: "  ", Unit: UnitPiece, CategoryID: 1}},
		{"no category", Material{Name: "Фанера", Unit: UnitPiece}},
		{"bad unit", Material{Name: "Фанера", Unit: "barrel", CategoryID: 1}},
		{"negative remains", Material{Name: "Фанера", Unit: UnitPiece, CategoryID: 1, Remains: -1}},
		{"negative min", Material{Name: "Фанера", Unit: UnitPiece, CategoryID: 1, MinCount: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateMaterial(tc.m); err == nil {
				t.Errorf("expected validation error for %+v", tc.m)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	if err := ValidateCategory(Category{Name: "Крепёж"}); err != nil {
		t.Fatalf("valid category rejected: %v", err)
	}
	if err := ValidateCategory(Category{Name: "   "}); err == nil {
		t.Fatal("blank name accepted")
	}
}

func TestUnitValid(t *testing.T) {
	for _, u := range Units {
		if !u.Valid() {
			t.Errorf("unit %q should be valid", u)
		}
	}
	if Unit("barrel").Valid() {
		t.Error("unknown unit accepted")
	}
}
