package services

import (
	"encoding/json"
	"strings"
)

// ParseModelJSON extracts and unmarshals a JSON payload from a model
// response. Models routinely wrap JSON in markdown code fences or surround
// it with prose, so the payload is sliced out before unmarshaling. A failure
// is always a *ParseError tagged with the calling stage.
func ParseModelJSON(stage, response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return &ParseError{Stage: stage, Reason: err.Error()}
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	// Determine if we have an object or array
	if startObj != -1 && endObj != -1 && endObj > startObj {
		// We have a JSON object
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		// We have a JSON array
		return text[startArr : endArr+1]
	}

	return text
}
