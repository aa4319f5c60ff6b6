package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lariskan-server/internal/domain"
)

// ProductRepositoryPG implements domain.ProductRepository backed by PostgreSQL.
type ProductRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepositoryPG.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepositoryPG {
	return &ProductRepositoryPG{pool: pool}
}

// CreateWithGenerations inserts the product and its generation rows in one
// transaction and returns the new product id.
func (r *ProductRepositoryPG) CreateWithGenerations(ctx context.Context, product *domain.Product, generations []domain.Generation) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var productID string
	err = tx.QueryRow(ctx, `
INSERT INTO products (id, user_id, image_url, product_name, category, key_features)
VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
RETURNING id;
`,
		product.UserID,
		product.ImageURL,
		product.ProductName,
		product.Category,
		product.KeyFeatures,
	).Scan(&productID)
	if err != nil {
		return "", err
	}

	batch := &pgx.Batch{}
	for _, g := range generations {
		batch.Queue(`
INSERT INTO generations (id, product_id, platform, tone_of_voice, result_text)
VALUES (gen_random_uuid(), $1, $2, $3, $4);
`, productID, g.Platform, g.Tone, g.ResultText)
	}
	br := tx.SendBatch(ctx, batch)
	for range generations {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return "", err
		}
	}
	if err := br.Close(); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return productID, nil
}

// GetByID fetches one product with its generations, scoped to the owner.
func (r *ProductRepositoryPG) GetByID(ctx context.Context, productID, userID string) (*domain.ProductHistory, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, image_url, product_name, category, key_features, created_at
FROM products
WHERE id = $1 AND user_id = $2;
`, productID, userID)

	var p domain.Product
	if err := row.Scan(&p.ID, &p.UserID, &p.ImageURL, &p.ProductName, &p.Category, &p.KeyFeatures, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, product_id, platform, tone_of_voice, result_text, created_at
FROM generations
WHERE product_id = $1
ORDER BY created_at ASC, platform ASC;
`, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := &domain.ProductHistory{Product: p}
	for rows.Next() {
		var g domain.Generation
		if err := rows.Scan(&g.ID, &g.ProductID, &g.Platform, &g.Tone, &g.ResultText, &g.CreatedAt); err != nil {
			return nil, err
		}
		history.Generations = append(history.Generations, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

// ListByUser returns the caller's products, newest first, each with its
// generations attached.
func (r *ProductRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.ProductHistory, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, image_url, product_name, category, key_features, created_at
FROM products
WHERE user_id = $1
ORDER BY created_at DESC;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		items []domain.ProductHistory
		index = map[string]int{}
	)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.UserID, &p.ImageURL, &p.ProductName, &p.Category, &p.KeyFeatures, &p.CreatedAt); err != nil {
			return nil, err
		}
		index[p.ID] = len(items)
		items = append(items, domain.ProductHistory{Product: p})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []domain.ProductHistory{}, nil
	}

	genRows, err := r.pool.Query(ctx, `
SELECT g.id, g.product_id, g.platform, g.tone_of_voice, g.result_text, g.created_at
FROM generations g
JOIN products p ON p.id = g.product_id
WHERE p.user_id = $1
ORDER BY g.created_at ASC, g.platform ASC;
`, userID)
	if err != nil {
		return nil, err
	}
	defer genRows.Close()

	for genRows.Next() {
		var g domain.Generation
		if err := genRows.Scan(&g.ID, &g.ProductID, &g.Platform, &g.Tone, &g.ResultText, &g.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[g.ProductID]; ok {
			items[i].Generations = append(items[i].Generations, g)
		}
	}
	if err := genRows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a product owned by the caller; generations cascade.
func (r *ProductRepositoryPG) Delete(ctx context.Context, productID, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND user_id = $2;`, productID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.ProductRepository = (*ProductRepositoryPG)(nil)
