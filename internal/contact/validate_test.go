package contact

import "testing"

func TestValidateNames(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		input string
		want  Result
	}{
		{name: "plain", kind: KindName, input: "Jonas", want: Result{Valid: true}},
		{name: "accented", kind: KindName, input: "Žydrūnė", want: Result{Valid: true}},
		{name: "decomposed accent", kind: KindName, input: "Rene\u0301", want: Result{Valid: true}},
		{name: "hyphen apostrophe space", kind: KindSurname, input: "O'Neil-Smith Jr", want: Result{Valid: true}},
		{name: "padded", kind: KindName, input: "  Ona  ", want: Result{Valid: true}},
		{name: "empty name", kind: KindName, input: "   ", want: Result{Message: "Name cannot be empty"}},
		{name: "empty surname", kind: KindSurname, input: "", want: Result{Message: "Surname cannot be empty"}},
		{name: "digit", kind: KindName, input: "Jonas2", want: Result{Message: "Only letters allowed"}},
		{name: "symbol", kind: KindSurname, input: "Kaz@s", want: Result{Message: "Only letters allowed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.kind, tt.input); got != tt.want {
				t.Fatalf("Validate(%q, %q) = %+v, want %+v", tt.kind, tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateNameRejectsAnyDigit(t *testing.T) {
	for _, base := range []string{"Ana", "Žemyna", "Mary-Jane"} {
		for d := '0'; d <= '9'; d++ {
			v := base + string(d)
			if got := Validate(KindName, v); got.Valid || got.Message != msgOnlyLetters {
				t.Fatalf("Validate(name, %q) = %+v, want letters-only failure", v, got)
			}
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input string
		want  Result
	}{
		{"a@b.lt", Result{Valid: true}},
		{" user.name@mail.example.com ", Result{Valid: true}},
		{"", Result{Message: "Email required"}},
		{"user@", Result{Message: "Invalid email format"}},
		{"user@domain", Result{Message: "Invalid email format"}},
		{"us er@domain.lt", Result{Message: "Invalid email format"}},
	}
	for _, tt := range tests {
		if got := Validate(KindEmail, tt.input); got != tt.want {
			t.Fatalf("Validate(email, %q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		input string
		want  Result
	}{
		{"Gedimino pr. 1", Result{Valid: true}},
		{"Ąžuol", Result{Valid: true}},
		{"  ", Result{Message: "Address required"}},
		{"Abcd", Result{Message: "Address too short"}},
	}
	for _, tt := range tests {
		if got := Validate(KindAddress, tt.input); got != tt.want {
			t.Fatalf("Validate(address, %q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestValidateMessageAlwaysValid(t *testing.T) {
	if got := Validate(KindMessage, ""); !got.Valid {
		t.Fatalf("message should always be valid, got %+v", got)
	}
}

func TestParseKind(t *testing.T) {
	if k, ok := ParseKind(" Email "); !ok || k != KindEmail {
		t.Fatalf("ParseKind(Email) = %q, %v", k, ok)
	}
	if _, ok := ParseKind("fax"); ok {
		t.Fatalf("ParseKind(fax) should fail")
	}
}
