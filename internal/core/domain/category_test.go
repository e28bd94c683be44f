package domain

import (
	"testing"
)

func testTaxonomy() Taxonomy {
	return Taxonomy{
		{Name: "Energy and Heat", Subcategories: []string{"Solar", "Biomass", "Storage"}},
		{Name: "Water", Subcategories: []string{"Filtration", "Harvesting"}},
		{Name: "Food", Subcategories: []string{"Hydroponics"}},
		{Name: "Shelter", Subcategories: []string{"Modular"}},
		{Name: "Mobility", Subcategories: []string{}},
	}
}

func TestSelection_TogglePrimaryRespectsMax(t *testing.T) {
	s := NewSelection(1, 4, nil)

	for _, name := range []string{"Energy and Heat", "Water", "Food", "Shelter"} {
		if err := s.TogglePrimary(name); err != nil {
			t.Fatalf("TogglePrimary(%q) unexpected error: %v", name, err)
		}
	}

	if err := s.TogglePrimary("Mobility"); err == nil {
		t.Error("expected error when exceeding max categories")
	}

	if s.Count() != 4 {
		t.Errorf("expected 4 categories, got %d", s.Count())
	}
}

func TestSelection_RemovingPrimaryDropsSubcategories(t *testing.T) {
	s := NewSelection(1, 4, nil)
	_ = s.TogglePrimary("Energy and Heat")
	_ = s.ToggleSubcategory("Energy and Heat", "Solar")
	_ = s.ToggleSubcategory("Energy and Heat", "Storage")

	if err := s.TogglePrimary("Energy and Heat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.IsSelected("Energy and Heat") {
		t.Fatal("primary should be removed")
	}

	// Re-adding must start with an empty subcategory list
	_ = s.TogglePrimary("Energy and Heat")
	if got := s.Entries[0].Subcategories; len(got) != 0 {
		t.Errorf("expected no subcategories after re-adding, got %v", got)
	}
}

func TestSelection_RemovalKeepsOrder(t *testing.T) {
	s := NewSelection(1, 4, nil)
	_ = s.TogglePrimary("Water")
	_ = s.TogglePrimary("Food")
	_ = s.TogglePrimary("Shelter")

	_ = s.TogglePrimary("Food")

	values := s.Values()
	if len(values) != 2 || values[0].Primary != "Water" || values[1].Primary != "Shelter" {
		t.Errorf("unexpected order after removal: %+v", values)
	}
}

func TestSelection_ToggleSubcategory(t *testing.T) {
	s := NewSelection(1, 4, nil)

	if err := s.ToggleSubcategory("Water", "Filtration"); err == nil {
		t.Error("expected error toggling subcategory of unselected primary")
	}

	_ = s.TogglePrimary("Water")
	_ = s.ToggleSubcategory("Water", "Filtration")
	if got := s.Entries[0].Subcategories; len(got) != 1 || got[0] != "Filtration" {
		t.Fatalf("expected [Filtration], got %v", got)
	}

	_ = s.ToggleSubcategory("Water", "filtration")
	if got := s.Entries[0].Subcategories; len(got) != 0 {
		t.Errorf("expected subcategory toggled off, got %v", got)
	}
}

func TestSelection_Warning(t *testing.T) {
	tests := []struct {
		name    string
		min     int
		entries []string
		warn    bool
	}{
		{"empty with min 1", 1, nil, true},
		{"one with min 1", 1, []string{"Water"}, false},
		{"one with min 2", 2, []string{"Water"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(tt.min, 4, nil)
			for _, e := range tt.entries {
				_ = s.TogglePrimary(e)
			}
			if got := s.Warning() != ""; got != tt.warn {
				t.Errorf("Warning() present = %v, want %v", got, tt.warn)
			}
		})
	}
}

func TestNewSelection_TruncatesInitialToMax(t *testing.T) {
	initial := []CategorySelection{
		{Primary: "Water"}, {Primary: "Food"}, {Primary: "Shelter"},
	}
	s := NewSelection(1, 2, initial)
	if s.Count() != 2 {
		t.Errorf("expected 2 entries, got %d", s.Count())
	}
}

func TestSelection_Validate(t *testing.T) {
	tax := testTaxonomy()

	s := NewSelection(1, 4, []CategorySelection{{Primary: "Energy and Heat", Subcategories: []string{"Solar"}}})
	if err := s.Validate(tax); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	s = NewSelection(1, 4, []CategorySelection{{Primary: "Space"}})
	if err := s.Validate(tax); err == nil {
		t.Error("expected error for unknown primary")
	}

	s = NewSelection(1, 4, []CategorySelection{{Primary: "Water", Subcategories: []string{"Solar"}}})
	if err := s.Validate(tax); err == nil {
		t.Error("expected error for subcategory of another primary")
	}
}

func TestParseCategoryFlag(t *testing.T) {
	tests := []struct {
		input   string
		primary string
		subs    int
		wantErr bool
	}{
		{"Energy and Heat", "Energy and Heat", 0, false},
		{"Energy and Heat:Solar,Storage", "Energy and Heat", 2, false},
		{"Water: Filtration , ", "Water", 1, false},
		{"", "", 0, true},
		{":Solar", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sel, err := ParseCategoryFlag(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategoryFlag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if sel.Primary != tt.primary {
				t.Errorf("primary = %q, want %q", sel.Primary, tt.primary)
			}
			if len(sel.Subcategories) != tt.subs {
				t.Errorf("subcategories = %v, want %d entries", sel.Subcategories, tt.subs)
			}
		})
	}
}
