package utils

import (
	"strings"
	"testing"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"+15550100123", "15550100", "+44 20 7946 0958", "(555) 010-0123"}
	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}

	invalid := []string{"", "abc", "+0123456", "555.010.0123"}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestGenerateSlug(t *testing.T) {
	slug := GenerateSlug("Harbor Wellness & Spa")
	if !strings.HasPrefix(slug, "harbor-wellness-spa-") {
		t.Errorf("unexpected slug %q", slug)
	}
	if GenerateSlug("Harbor") == GenerateSlug("Harbor") {
		t.Error("expected random suffix to differ between calls")
	}
	if GenerateSlug("***") == "" {
		t.Error("expected a fallback slug for all-invalid names")
	}
}
