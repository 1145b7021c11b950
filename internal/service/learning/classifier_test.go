package learning

import (
	"testing"

	"github.com/franvarela/lorobot/internal/language"
)

func TestIsQuestion(t *testing.T) {
	c := NewClassifier(language.Spanish())

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"trailing question mark", "me lo mandás hoy?", true},
		{"inverted opening mark only", "¿me lo mandás hoy", true},
		{"both marks", "¿Cuál es el precio?", true},
		{"mark mid-text", "precio? del grande", true},
		{"interrogative first word, no marks", "cuánto cuesta el envío", true},
		{"unaccented interrogative", "cuanto cuesta el envío", true},
		{"accented interrogative", "dónde queda el local", true},
		{"uppercase interrogative", "QUÉ HORA ES", true},
		{"interrogative not first", "no sé cuánto cuesta", false},
		{"plain statement", "te mando la dirección mañana", false},
		{"greeting", "hola buenas tardes", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsQuestion(tt.text); got != tt.want {
				t.Errorf("IsQuestion(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
