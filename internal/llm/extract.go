package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractContent pulls the content object out of the model's reply. Models
// frequently wrap the JSON in prose or markdown fences, so parsing falls
// back from a direct unmarshal to the outermost brace window, then to the
// window with code fences stripped.
func extractContent(text string) (map[string]string, error) {
	var fields map[string]string
	if err := json.Unmarshal([]byte(text), &fields); err == nil {
		return fields, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("could not extract valid JSON from model response")
	}

	window := text[start : end+1]
	if err := json.Unmarshal([]byte(window), &fields); err == nil {
		return fields, nil
	}

	cleaned := strings.ReplaceAll(window, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	if err := json.Unmarshal([]byte(cleaned), &fields); err == nil {
		return fields, nil
	}

	return nil, fmt.Errorf("could not extract valid JSON from model response")
}
