package copygen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"lariskan-server/internal/domain"
	"lariskan-server/internal/providers/vlm"
)

// Output is the result of one successful generation run.
type Output struct {
	Copy      domain.CopySet
	ProductID string
	Model     domain.ModelID
}

// Service orchestrates one generation request: validate, load the caller's
// profile, build the prompt, call the chosen backend, parse, persist. The
// pipeline is strictly sequential, attempted at most once per invocation,
// and holds no state between requests.
type Service struct {
	profiles domain.ProfileRepository
	products domain.ProductRepository
	backends vlm.Selector
	logger   zerolog.Logger
}

func NewService(profiles domain.ProfileRepository, products domain.ProductRepository, backends vlm.Selector, logger zerolog.Logger) *Service {
	return &Service{
		profiles: profiles,
		products: products,
		backends: backends,
		logger:   logger,
	}
}

// Generate runs the full pipeline on behalf of the authenticated caller.
// Validation happens before any external call; parsing happens strictly
// before persistence, so a malformed model response never creates a product.
func (s *Service) Generate(ctx context.Context, callerID string, req domain.GenerationRequest) (*Output, error) {
	if strings.TrimSpace(callerID) == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByExternalID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: caller %s has not been synced", domain.ErrProfileNotFound, callerID)
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	generator, model := s.backends.Select(profile.Model)
	if generator == nil {
		return nil, fmt.Errorf("%w: no backend registered for %s", domain.ErrProviderFailure, model)
	}

	prompt := BuildPrompt(req)
	raw, err := generator.Generate(ctx, req.ImageURL, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("model", string(model)).Msg("backend generation failed")
		return nil, err
	}

	copySet, err := ParseCopySet(raw)
	if err != nil {
		s.logger.Error().Err(err).Str("model", string(model)).Str("raw", raw).Msg("failed to parse model response")
		return nil, err
	}

	product := &domain.Product{
		UserID:      profile.ID,
		ImageURL:    req.ImageURL,
		ProductName: req.ProductName,
		Category:    req.Category,
		KeyFeatures: req.KeyFeatures,
	}
	productID, err := s.products.CreateWithGenerations(ctx, product, copySet.Generations("", req.Tone))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to persist product with generations")
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}

	s.logger.Info().
		Str("product_id", productID).
		Str("model", string(model)).
		Str("tone", string(req.Tone)).
		Msg("generation complete")

	return &Output{Copy: copySet, ProductID: productID, Model: model}, nil
}
