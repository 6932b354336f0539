package security

import "testing"

func TestContentSanitizer_PassesPlainText(t *testing.T) {
	s := NewContentSanitizer()

	tests := []string{
		"Standup",
		"数学 第3講",
		"Weekly sync with the team",
		"",
	}

	for _, input := range tests {
		if got := s.Sanitize(input); got != input {
			t.Errorf("Sanitize(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestContentSanitizer_StripsAllHTML(t *testing.T) {
	s := NewContentSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"script tag", "<script>alert(1)</script>Standup", "Standup"},
		{"bold tag", "<b>Standup</b>", "Standup"},
		{"anchor tag", `<a href="https://evil.example">meeting</a>`, "meeting"},
		{"img tag", `before<img src="x" onerror="alert(1)">after`, "beforeafter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// 同一入力に対して常に同一出力を返すこと（冪等性）を検証
func TestContentSanitizer_Idempotent(t *testing.T) {
	s := NewContentSanitizer()

	input := "<div><p>Standup</p></div>"
	once := s.Sanitize(input)
	twice := s.Sanitize(once)

	if once != twice {
		t.Errorf("Sanitize is not idempotent: first = %q, second = %q", once, twice)
	}
}
