package copygen

import (
	"errors"
	"testing"

	"lariskan-server/internal/domain"
)

const validPayload = `{"marketplace":"toko","instagram":"caption","website":"landing"}`

func TestParseCopySet_Plain(t *testing.T) {
	set, err := ParseCopySet(validPayload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Marketplace != "toko" || set.Instagram != "caption" || set.Website != "landing" {
		t.Fatalf("unexpected copy set: %+v", set)
	}
}

func TestParseCopySet_FencedJSON(t *testing.T) {
	for name, raw := range map[string]string{
		"json tag":  "```json\n" + validPayload + "\n```",
		"upper tag": "```JSON\n" + validPayload + "\n```",
		"bare":      "```\n" + validPayload + "\n```",
		"padded":    "\n\n```json\n" + validPayload + "\n```\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			set, err := ParseCopySet(raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if set.Marketplace != "toko" {
				t.Fatalf("unexpected marketplace: %q", set.Marketplace)
			}
		})
	}
}

func TestParseCopySet_Failures(t *testing.T) {
	for name, raw := range map[string]string{
		"empty":            "",
		"whitespace":       "   \n ",
		"not json":         "maaf, saya tidak bisa membantu",
		"missing website":  `{"marketplace":"a","instagram":"b"}`,
		"empty field":      `{"marketplace":"a","instagram":"b","website":"  "}`,
		"non-string field": `{"marketplace":1,"instagram":"b","website":"c"}`,
		"array":            `[{"marketplace":"a"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCopySet(raw); !errors.Is(err, domain.ErrParseFailed) {
				t.Fatalf("want ErrParseFailed, got %v", err)
			}
		})
	}
}

func TestTrimCodeFence_Idempotent(t *testing.T) {
	once := trimCodeFence("```json\n" + validPayload + "\n```")
	twice := trimCodeFence(once)
	if once != twice {
		t.Fatalf("trim is not idempotent: %q vs %q", once, twice)
	}
	if once != validPayload {
		t.Fatalf("unexpected trimmed payload: %q", once)
	}
}
