package validator

import "testing"

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("valid_user1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "ab", "has space", "way-too!strange"} {
		if err := ValidateUsername(bad); err != ErrInvalidUsername {
			t.Fatalf("expected ErrInvalidUsername for %q, got %v", bad, err)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("longenough"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidatePassword("short"); err != ErrInvalidPassword {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestValidateCategoryName(t *testing.T) {
	if err := ValidateCategoryName("Food"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateCategoryName("   "); err != ErrInvalidCategoryName {
		t.Fatalf("expected ErrInvalidCategoryName, got %v", err)
	}
}

func TestValidatePeriod(t *testing.T) {
	for _, p := range []string{"Monthly", "Weekly"} {
		if err := ValidatePeriod(p); err != nil {
			t.Fatalf("unexpected error for %s: %v", p, err)
		}
	}
	if err := ValidatePeriod("Yearly"); err != ErrInvalidPeriod {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}
