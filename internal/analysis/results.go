package analysis

import (
	"encoding/json"
	"strings"

	"dteai/internal/constants"
)

// parseResults turns raw generation text into a structured payload. Models
// are asked for JSON but frequently wrap it in prose, so an embedded object
// is accepted; as a last resort the raw content is wrapped verbatim.
func parseResults(content string) map[string]interface{} {
	var results map[string]interface{}
	if err := json.Unmarshal([]byte(content), &results); err == nil {
		return results
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(content[start:end+1]), &results); err == nil {
			return results
		}
	}

	return map[string]interface{}{"analysis": content}
}

// serializeDocument renders the document for prompt embedding, truncating at
// the configured bound with an explicit marker.
func serializeDocument(documentData map[string]interface{}, maxChars int) string {
	docJSON, err := json.MarshalIndent(documentData, "", "  ")
	if err != nil {
		docJSON = []byte("{}")
	}

	serialized := string(docJSON)
	if len(serialized) > maxChars {
		serialized = serialized[:maxChars] + constants.TruncationMarker
	}
	return serialized
}
