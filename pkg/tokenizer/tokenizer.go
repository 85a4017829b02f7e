package tokenizer

import (
	"github.com/pkoukk/tiktoken-go"
)

// Counter measures text in model tokens. All budget decisions in the
// retrieval pipeline go through one Counter so they agree with each other.
type Counter interface {
	Count(text string) int
}

type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenCounter builds a counter on the cl100k_base encoding used by
// the gpt-4 family. Falls back to approximate counting if the encoding
// cannot be loaded (e.g. no network for the BPE download).
func NewTiktokenCounter() Counter {
	enc, err := tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
	if err != nil {
		return ApproxCounter{}
	}
	return &TiktokenCounter{encoding: enc}
}

func (c *TiktokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.encoding.Encode(text, nil, nil))
}

// ApproxCounter estimates a token per 4 characters, the usual rule of
// thumb for English prose.
type ApproxCounter struct{}

func (ApproxCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	n := len(text) / 4
	if n == 0 {
		n = 1
	}
	return n
}
