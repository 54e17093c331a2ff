package validator

import (
	"testing"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"new@x.com", "a.b+tag@example.co", "UPPER@EXAMPLE.COM"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("Expected %q to be valid", email)
		}
	}

	invalid := []string{"", "not-an-email", "missing@tld", "@x.com", "a b@x.com"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("Expected %q to be invalid", email)
		}
	}
}

func TestValidateRequired(t *testing.T) {
	if ValidateRequired("   ") {
		t.Error("Whitespace-only value should not satisfy required")
	}
	if !ValidateRequired("pw123456") {
		t.Error("Non-empty value should satisfy required")
	}
}
