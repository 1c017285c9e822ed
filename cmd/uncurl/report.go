package main

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// buildTokenReport summarizes a conversion for LLM-budget purposes: line and
// token counts of the text before and after.
func buildTokenReport(original, converted string, model string) (string, error) {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return "", fmt.Errorf("failed to get tokenizer for model %q: %w", model, err)
	}

	before := len(tkm.Encode(original, nil, nil))
	after := len(tkm.Encode(converted, nil, nil))

	var b strings.Builder
	fmt.Fprintf(&b, "model: %s\n", model)
	fmt.Fprintf(&b, "lines: %d -> %d\n", countLines(original), countLines(converted))
	fmt.Fprintf(&b, "tokens: %d -> %d\n", before, after)
	return b.String(), nil
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
