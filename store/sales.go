package store

import (
	"context"
	"errors"

	"libreria-pos/model"

	"github.com/google/uuid"
)

const saleCols = `id, date, client_id, total, status, created_at`

func scanSale(row scanner) (model.Sale, error) {
	var sale model.Sale
	var client uuid.NullUUID
	var status string
	if err := row.Scan(&sale.ID, &sale.Date, &client, &sale.Total, &status, &sale.CreatedAt); err != nil {
		return model.Sale{}, err
	}
	if client.Valid {
		id := client.UUID
		sale.ClientID = &id
	}
	st, err := model.ParseSaleStatus(status)
	if err != nil {
		return model.Sale{}, err
	}
	sale.Status = st
	return sale, nil
}

func (s *PostgresStore) ListSales(ctx context.Context) ([]model.Sale, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+saleCols+` FROM sales ORDER BY date, id`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := []model.Sale{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sale.Items = []model.SaleItem{}
		index[sale.ID] = len(out)
		out = append(out, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := s.DB.QueryContext(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_items
		ORDER BY sale_id, position`)
	if err != nil {
		return nil, classify(err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it model.SaleItem
		if err := itemRows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, err
		}
		if i, ok := index[it.SaleID]; ok {
			out[i].Items = append(out[i].Items, it)
		}
	}
	return out, itemRows.Err()
}

func (s *PostgresStore) InsertSale(ctx context.Context, sale model.Sale) (model.Sale, error) {
	row := s.DB.QueryRowContext(ctx,
		`INSERT INTO sales (date, client_id, total, status) VALUES ($1, $2, $3, $4) RETURNING `+saleCols,
		sale.Date, sale.ClientID, sale.Total, string(sale.Status),
	)
	out, err := scanSale(row)
	if err != nil {
		return model.Sale{}, classify(err)
	}
	out.Items = []model.SaleItem{}
	return out, nil
}

// InsertSaleItems writes all items of a sale in one transaction, keeping their order.
func (s *PostgresStore) InsertSaleItems(ctx context.Context, saleID uuid.UUID, items []model.SaleItem) ([]model.SaleItem, error) {
	if len(items) == 0 {
		return nil, errors.New("no sale items")
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	// no-op after Commit
	defer func() { _ = tx.Rollback() }()

	out := make([]model.SaleItem, 0, len(items))
	for i, it := range items {
		it.SaleID = saleID
		err := tx.QueryRowContext(ctx,
			`INSERT INTO sale_items (sale_id, position, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			saleID, i, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal,
		).Scan(&it.ID)
		if err != nil {
			return nil, classify(err)
		}
		out = append(out, it)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteSale removes a sale header; its items go with it (ON DELETE CASCADE).
func (s *PostgresStore) DeleteSale(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM sales WHERE id=$1`, id)
	if err != nil {
		return classify(err)
	}
	return mustAffect(res)
}
