package models

import "testing"

func TestPreferencesNormalize(t *testing.T) {
	prefs := UserPreferences{}
	prefs.Normalize()

	if prefs.SafetyLevel != SafetyMedium {
		t.Errorf("expected medium safety level, got %s", prefs.SafetyLevel)
	}
	if prefs.Budget != BudgetMedium {
		t.Errorf("expected medium budget, got %s", prefs.Budget)
	}
	if prefs.Language != "en" {
		t.Errorf("expected en language, got %s", prefs.Language)
	}
	if prefs.Regions == nil || prefs.Interests == nil {
		t.Error("expected empty slices, got nil")
	}
}

func TestPreferencesNormalizeKeepsSetValues(t *testing.T) {
	prefs := UserPreferences{
		Regions:     []string{"north"},
		SafetyLevel: SafetyHigh,
		Budget:      BudgetLow,
		Language:    "hi",
	}
	prefs.Normalize()

	if prefs.SafetyLevel != SafetyHigh || prefs.Budget != BudgetLow || prefs.Language != "hi" {
		t.Error("normalize overwrote explicit preference values")
	}
	if len(prefs.Regions) != 1 || prefs.Regions[0] != "north" {
		t.Errorf("normalize changed regions: %v", prefs.Regions)
	}
}
