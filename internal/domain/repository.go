package domain

import "context"

// ProfileRepository defines access to caller profiles. Profiles are written
// only by the identity-sync webhook and the settings endpoint; the generation
// pipeline reads them.
type ProfileRepository interface {
	GetByExternalID(ctx context.Context, externalID string) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) (*Profile, error)
	DeleteByExternalID(ctx context.Context, externalID string) error
	UpdateModel(ctx context.Context, externalID string, model ModelID) error
}

// ProductRepository persists products and their generations.
type ProductRepository interface {
	// CreateWithGenerations inserts the product and its generation rows in
	// one transaction and returns the new product id.
	CreateWithGenerations(ctx context.Context, product *Product, generations []Generation) (string, error)
	GetByID(ctx context.Context, productID, userID string) (*ProductHistory, error)
	ListByUser(ctx context.Context, userID string) ([]ProductHistory, error)
	// Delete removes the product; generations go with it via cascade.
	Delete(ctx context.Context, productID, userID string) error
}
