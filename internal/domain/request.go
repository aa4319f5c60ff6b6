package domain

import (
	"fmt"
	"strings"
)

// GenerationRequest is the caller-supplied input of one generation run.
// All five fields must be present and non-empty; validation happens before
// any external call is made.
type GenerationRequest struct {
	ImageURL    string
	ProductName string
	Category    Category
	KeyFeatures string
	Tone        Tone
}

// Validate checks field presence. It deliberately does not reject unknown
// category or tone codes: the prompt builder has explicit fallbacks for both.
func (r GenerationRequest) Validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"image_url", r.ImageURL},
		{"product_name", r.ProductName},
		{"category", string(r.Category)},
		{"key_features", r.KeyFeatures},
		{"tone_of_voice", string(r.Tone)},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: missing %s", ErrInvalidRequest, f.name)
		}
	}
	return nil
}

// CopySet is the parsed model output: one copy variant per platform.
type CopySet struct {
	Marketplace string `json:"marketplace"`
	Instagram   string `json:"instagram"`
	Website     string `json:"website"`
}

// ForPlatform returns the variant belonging to the given platform tag.
func (c CopySet) ForPlatform(p Platform) string {
	switch p {
	case PlatformMarketplace:
		return c.Marketplace
	case PlatformInstagram:
		return c.Instagram
	case PlatformWebsite:
		return c.Website
	default:
		return ""
	}
}

// Generations expands the copy set into the three generation rows for the
// given product, all sharing one tone. Row IDs are assigned at insert time.
func (c CopySet) Generations(productID string, tone Tone) []Generation {
	out := make([]Generation, 0, len(Platforms))
	for _, p := range Platforms {
		out = append(out, Generation{
			ProductID:  productID,
			Platform:   p,
			Tone:       tone,
			ResultText: c.ForPlatform(p),
		})
	}
	return out
}
