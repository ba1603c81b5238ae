package normalize

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"USER@EXAMPLE.COM", "user@example.com"},
		{"  User@Example.Com  ", "user@example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Email(tt.input)
			if got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Asha Rao", "Asha Rao"},
		{"  Asha Rao  ", "Asha Rao"},
		{"Asha    Rao", "Asha Rao"},
		{"", ""},
		{"   ", ""},
		{"UPPERCASE NAME", "UPPERCASE NAME"}, // case preserved
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Name(tt.input)
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+91 98765 43210", "+919876543210"},
		{"(080) 2345-6789", "08023456789"},
		{"9876543210", "9876543210"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Phone(tt.input)
			if got != tt.want {
				t.Errorf("Phone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestText_StripsMarkup(t *testing.T) {
	got := Text(`12 MG Road <script>alert('x')</script>`)
	if got != "12 MG Road" {
		t.Errorf("Text() = %q, want markup stripped", got)
	}
}

func TestText_PlainTextUnchanged(t *testing.T) {
	got := Text("  12 MG Road, Bengaluru  ")
	if got != "12 MG Road, Bengaluru" {
		t.Errorf("Text() = %q", got)
	}
}

func TestShift(t *testing.T) {
	if got := Shift("  Morning "); got != "morning" {
		t.Errorf("Shift() = %q, want %q", got, "morning")
	}
}
