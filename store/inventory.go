package store

import (
	"context"

	"libreria-pos/model"

	"github.com/google/uuid"
)

// UpdateStock sets the absolute stock for a product and returns the row as written.
func (s *PostgresStore) UpdateStock(ctx context.Context, productID uuid.UUID, newStock int) (model.Product, error) {
	if newStock < 0 {
		return model.Product{}, model.ErrNegativeStock
	}
	row := s.DB.QueryRowContext(ctx,
		`UPDATE products SET stock=$1, updated_at = now() WHERE id=$2 RETURNING `+productCols,
		newStock, productID,
	)
	p, err := scanProduct(row)
	return p, classify(err)
}
