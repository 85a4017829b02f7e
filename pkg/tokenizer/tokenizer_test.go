package tokenizer

import (
	"testing"
)

func TestApproxCounter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"short word still costs a token", "hi", 1},
		{"four chars per token", "abcdefgh", 2},
		{"rounds down but never to zero", "abcdefghij", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ApproxCounter{}
			if got := c.Count(tt.text); got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestNewTiktokenCounterNeverNil(t *testing.T) {
	c := NewTiktokenCounter()
	if c == nil {
		t.Fatal("counter must always be usable")
	}
	if got := c.Count(""); got != 0 {
		t.Errorf("Count(empty) = %d, want 0", got)
	}
	if got := c.Count("hello world"); got <= 0 {
		t.Errorf("Count(hello world) = %d, want > 0", got)
	}
}
