package copygen

import (
	"encoding/json"
	"fmt"
	"strings"

	"lariskan-server/internal/domain"
)

// ParseCopySet extracts the three-field copy object from a raw model
// completion. Models occasionally wrap the JSON in a fenced code block even
// when told not to, so fences are stripped first. The decode fails closed:
// a missing, non-string, or empty field rejects the whole response.
func ParseCopySet(raw string) (domain.CopySet, error) {
	cleaned := trimCodeFence(raw)
	if cleaned == "" {
		return domain.CopySet{}, fmt.Errorf("%w: empty response", domain.ErrParseFailed)
	}

	var set domain.CopySet
	if err := json.Unmarshal([]byte(cleaned), &set); err != nil {
		return domain.CopySet{}, fmt.Errorf("%w: %v", domain.ErrParseFailed, err)
	}
	for _, p := range domain.Platforms {
		if strings.TrimSpace(set.ForPlatform(p)) == "" {
			return domain.CopySet{}, fmt.Errorf("%w: missing %s field", domain.ErrParseFailed, p)
		}
	}
	return set, nil
}

// trimCodeFence removes a leading/trailing triple-backtick fence, with or
// without a language tag. Unfenced input passes through unchanged, so the
// operation is idempotent.
func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
