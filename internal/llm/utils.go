package llm

import "strings"

// stripCodeFence removes a single surrounding markdown fence from a model
// response; models occasionally wrap JSON output in ```json blocks even when
// asked for bare JSON
func stripCodeFence(response string) string {
	response = strings.TrimSpace(response)

	if !strings.HasPrefix(response, "```") {
		return response
	}

	startIdx := strings.Index(response, "\n")
	if startIdx == -1 {
		return response
	}

	body := response[startIdx+1:]

	endIdx := strings.LastIndex(body, "```")
	if endIdx == -1 {
		return response
	}

	return strings.TrimSpace(body[:endIdx])
}
