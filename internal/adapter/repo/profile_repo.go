package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lariskan-server/internal/domain"
)

// ProfileRepositoryPG implements domain.ProfileRepository backed by PostgreSQL.
type ProfileRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepositoryPG.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepositoryPG {
	return &ProfileRepositoryPG{pool: pool}
}

// GetByExternalID fetches a profile by the identity provider's user id.
func (r *ProfileRepositoryPG) GetByExternalID(ctx context.Context, externalID string) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, external_id, email, full_name, avatar_url, ai_model, locale_pref, created_at, updated_at
FROM profiles
WHERE external_id = $1;
`, externalID)
	return scanProfile(row)
}

// Upsert inserts or updates a profile keyed by external id. The stored model
// preference is kept on update; only the settings endpoint changes it.
func (r *ProfileRepositoryPG) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	model := profile.Model
	if !domain.KnownModel(model) {
		model = domain.DefaultModel
	}
	row := r.pool.QueryRow(ctx, `
INSERT INTO profiles (id, external_id, email, full_name, avatar_url, ai_model, locale_pref)
VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
ON CONFLICT (external_id) DO UPDATE
SET email = EXCLUDED.email,
    full_name = EXCLUDED.full_name,
    avatar_url = EXCLUDED.avatar_url,
    locale_pref = EXCLUDED.locale_pref,
    updated_at = NOW()
RETURNING id, external_id, email, full_name, avatar_url, ai_model, locale_pref, created_at, updated_at;
`,
		profile.ExternalID,
		profile.Email,
		profile.FullName,
		profile.AvatarURL,
		model,
		profile.LocalePref,
	)
	return scanProfile(row)
}

// DeleteByExternalID removes the profile; products and generations cascade.
func (r *ProfileRepositoryPG) DeleteByExternalID(ctx context.Context, externalID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE external_id = $1;`, externalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateModel stores the caller's backend preference.
func (r *ProfileRepositoryPG) UpdateModel(ctx context.Context, externalID string, model domain.ModelID) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE profiles
SET ai_model = $2,
    updated_at = NOW()
WHERE external_id = $1;
`, externalID, model)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	if err := row.Scan(&p.ID, &p.ExternalID, &p.Email, &p.FullName, &p.AvatarURL, &p.Model, &p.LocalePref, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ domain.ProfileRepository = (*ProfileRepositoryPG)(nil)
