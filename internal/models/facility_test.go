package models

import (
	"testing"
)

func TestAverageRating(t *testing.T) {
	reviews := []Review{
		{Rating: 4},
		{Rating: 5},
		{Rating: 3},
	}
	if got := AverageRating(reviews); got != 4.0 {
		t.Errorf("expected 4.0, got %v", got)
	}

	// 13/3 rounds to one decimal
	reviews = []Review{{Rating: 4}, {Rating: 4}, {Rating: 5}}
	if got := AverageRating(reviews); got != 4.3 {
		t.Errorf("expected 4.3, got %v", got)
	}

	if got := AverageRating(nil); got != 0 {
		t.Errorf("expected 0 for no reviews, got %v", got)
	}
}

func TestReviewValidate(t *testing.T) {
	valid := Review{UserID: "user-1", Rating: 5}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid review, got %v", err)
	}

	tooHigh := Review{UserID: "user-1", Rating: 6}
	if err := tooHigh.Validate(); err == nil {
		t.Error("expected error for rating above 5")
	}

	tooLow := Review{UserID: "user-1", Rating: 0}
	if err := tooLow.Validate(); err == nil {
		t.Error("expected error for rating below 1")
	}

	noUser := Review{UserID: "  ", Rating: 3}
	if err := noUser.Validate(); err == nil {
		t.Error("expected error for blank userId")
	}
}

func TestFacilityTypeIsValid(t *testing.T) {
	for _, ft := range []FacilityType{FacilityHospital, FacilityATM, FacilityTouristInfo} {
		if !ft.IsValid() {
			t.Errorf("expected %s to be valid", ft)
		}
	}
	if FacilityType("casino").IsValid() {
		t.Error("expected unknown facility type to be invalid")
	}
}
