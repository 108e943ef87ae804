package validator

import "testing"

func TestCheckCollectsFailures(t *testing.T) {
	v := New()
	v.Check(true, "name", "must be provided")
	if !v.Valid() {
		t.Fatal("passing check must not record an error")
	}

	v.Check(false, "email", "must be provided")
	v.Check(false, "email", "must be valid")
	if v.Valid() {
		t.Fatal("failing check must record an error")
	}
	if got := v.Errors["email"]; got != "must be provided" {
		t.Fatalf("first failure must win, got %q", got)
	}
}

func TestMessageIsDeterministic(t *testing.T) {
	v := New()
	v.AddError("seats", "must be positive")
	v.AddError("email", "must be provided")

	want := "email: must be provided; seats: must be positive"
	if got := v.Message(); got != want {
		t.Fatalf("Message() = %q, want %q", got, want)
	}
}

func TestEmailRX(t *testing.T) {
	valid := []string{"user@example.com", "first.last@sub.example.co.tz"}
	invalid := []string{"", "user", "user@", "@example.com", "user@.com"}

	for _, s := range valid {
		if !Matches(s, EmailRX) {
			t.Errorf("%q must match", s)
		}
	}
	for _, s := range invalid {
		if Matches(s, EmailRX) {
			t.Errorf("%q must not match", s)
		}
	}
}

func TestPermittedValue(t *testing.T) {
	if !PermittedValue("SEDAN", "HATCHBACK", "SEDAN", "SUV", "VAN") {
		t.Fatal("listed value must be permitted")
	}
	if PermittedValue("TRUCK", "HATCHBACK", "SEDAN", "SUV", "VAN") {
		t.Fatal("unlisted value must be rejected")
	}
	if !PermittedValue(4, 2, 4, 6) {
		t.Fatal("generic int case must work")
	}
}
