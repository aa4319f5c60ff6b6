package copygen

import (
	"strings"
	"testing"

	"lariskan-server/internal/domain"
)

func sampleRequest() domain.GenerationRequest {
	return domain.GenerationRequest{
		ImageURL:    "https://cdn.example.com/batik.jpg",
		ProductName: "Kemeja Batik Premium",
		Category:    domain.CategoryFashion,
		KeyFeatures: "katun halus, jahitan rapi",
		Tone:        domain.ToneProfessional,
	}
}

func TestBuildPrompt_ContainsCategoryAndToneDescriptions(t *testing.T) {
	prompt := BuildPrompt(sampleRequest())

	for _, want := range []string{
		"produk fashion/pakaian",
		"formal, terpercaya, dan informatif",
		"Kemeja Batik Premium",
		"katun halus, jahitan rapi",
		"MARKETPLACE",
		"INSTAGRAM",
		"WEBSITE",
		`"marketplace"`,
		`"instagram"`,
		`"website"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := sampleRequest()
	if BuildPrompt(req) != BuildPrompt(req) {
		t.Fatal("same request produced different prompts")
	}
}

func TestBuildPrompt_UnknownCodesFallBack(t *testing.T) {
	req := sampleRequest()
	req.Category = domain.Category("gardening")
	req.Tone = domain.Tone("shouty")

	prompt := BuildPrompt(req)

	if !strings.Contains(prompt, "- Kategori: produk\n") {
		t.Error("unknown category should fall back to generic phrase")
	}
	if !strings.Contains(prompt, "santai, friendly, dan mudah dipahami") {
		t.Error("unknown tone should fall back to casual phrase")
	}
}

func TestToneDescription_AllKnownTones(t *testing.T) {
	for _, tone := range []domain.Tone{domain.ToneCasual, domain.ToneProfessional, domain.TonePersuasive, domain.ToneGenZ} {
		if ToneDescription(tone) == "" {
			t.Errorf("empty description for tone %s", tone)
		}
	}
}
