package domain

import (
	"strings"
	"time"
)

// ModelID identifies one of the vision-language backends.
type ModelID string

const (
	ModelGemini  ModelID = "gemini"
	ModelMistral ModelID = "mistral"
)

// DefaultModel is used whenever a profile has no stored preference or the
// stored value is not a known backend.
const DefaultModel = ModelMistral

// KnownModel reports whether the given identifier names a registered backend.
func KnownModel(m ModelID) bool {
	switch m {
	case ModelGemini, ModelMistral:
		return true
	default:
		return false
	}
}

// NormalizeModel maps free-form input onto a known ModelID, falling back to
// the default for anything unrecognized.
func NormalizeModel(s string) ModelID {
	m := ModelID(strings.ToLower(strings.TrimSpace(s)))
	if KnownModel(m) {
		return m
	}
	return DefaultModel
}

// Profile is the caller's account record, owned by the identity-sync
// collaborator. The generation core reads it once per request and never
// writes it.
type Profile struct {
	ID         string
	ExternalID string
	Email      string
	FullName   string
	AvatarURL  string
	Model      ModelID
	LocalePref string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
