package validator

import (
	"math"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsFinite(t *testing.T) {
	valid := []float64{0, -90, 90, 180.0, 1e10}
	invalid := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, f := range valid {
		if !IsFinite(f) {
			t.Errorf("IsFinite(%v) = false, want true", f)
		}
	}
	for _, f := range invalid {
		if IsFinite(f) {
			t.Errorf("IsFinite(%v) = true, want false", f)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidOfficeCode(t *testing.T) {
	valid := []string{"HQ", "BKD-01", "DISDUK2"}
	invalid := []string{"h", "hq-01", "A", "CODE WITH SPACE", ""}
	for _, code := range valid {
		if !IsValidOfficeCode(code) {
			t.Errorf("IsValidOfficeCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidOfficeCode(code) {
			t.Errorf("IsValidOfficeCode(%q) = true, want false", code)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "invalid"},
		{Field: "user_id", Message: "required"},
	}
	got := errs.Error()
	want := "latitude: invalid; user_id: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "invalid"},
		{Field: "user_id", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"latitude": "invalid", "user_id": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
