package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"libreria-pos/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = model.ErrNotFound

// PostgresStore is a Store backed by Postgres. It holds no locks: every
// method is a single statement or a single transaction.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	DB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := DB.Ping(); err != nil {
		_ = DB.Close()
		return nil, err
	}
	return &PostgresStore{DB: DB}, nil
}

func (s *PostgresStore) Close() error { return s.DB.Close() }

// classify maps driver errors onto the model sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("%w: %s", model.ErrConstraint, pqErr.Message)
	}
	return err
}

func mustAffect(res sql.Result) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if ra == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// --- categories ---

const categoryCols = `id, name, description, created_at, updated_at`

func scanCategory(row scanner) (model.Category, error) {
	var c model.Category
	var desc sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &desc, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return model.Category{}, err
	}
	c.Description = desc.String
	return c, nil
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+categoryCols+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) InsertCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	row := s.DB.QueryRowContext(ctx,
		`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING `+categoryCols,
		in.Name, nullString(in.Description),
	)
	c, err := scanCategory(row)
	return c, classify(err)
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, id uuid.UUID, patch model.CategoryPatch) (model.Category, error) {
	row := s.DB.QueryRowContext(ctx,
		`UPDATE categories SET name = COALESCE($2, name), description = COALESCE($3, description), updated_at = now()
		WHERE id = $1 RETURNING `+categoryCols,
		id, patch.Name, patch.Description,
	)
	c, err := scanCategory(row)
	return c, classify(err)
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return classify(err)
	}
	return mustAffect(res)
}

// --- products ---

const productCols = `id, name, brand, price, stock, category_id, created_at, updated_at`

func scanProduct(row scanner) (model.Product, error) {
	var p model.Product
	var cat uuid.NullUUID
	if err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Stock, &cat, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return model.Product{}, err
	}
	if cat.Valid {
		id := cat.UUID
		p.CategoryID = &id
	}
	return p, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+productCols+` FROM products ORDER BY name`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) InsertProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	row := s.DB.QueryRowContext(ctx,
		`INSERT INTO products (name, brand, price, stock, category_id) VALUES ($1, $2, $3, $4, $5) RETURNING `+productCols,
		in.Name, in.Brand, in.Price, in.Stock, in.CategoryID,
	)
	p, err := scanProduct(row)
	return p, classify(err)
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, id uuid.UUID, patch model.ProductPatch) (model.Product, error) {
	row := s.DB.QueryRowContext(ctx,
		`UPDATE products SET name = COALESCE($2, name), brand = COALESCE($3, brand), price = COALESCE($4, price),
		category_id = CASE WHEN $6 THEN NULL ELSE COALESCE($5, category_id) END, updated_at = now()
		WHERE id = $1 RETURNING `+productCols,
		id, patch.Name, patch.Brand, patch.Price, patch.CategoryID, patch.ClearCategory,
	)
	p, err := scanProduct(row)
	return p, classify(err)
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return classify(err)
	}
	return mustAffect(res)
}

// --- clients ---

const clientCols = `id, name, document, document_type, phone, email, created_at, updated_at`

func scanClient(row scanner) (model.Client, error) {
	var c model.Client
	var docType string
	var phone, email sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.Document, &docType, &phone, &email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return model.Client{}, err
	}
	c.DocumentType = model.DocumentType(docType)
	c.Phone = phone.String
	c.Email = email.String
	return c, nil
}

func (s *PostgresStore) ListClients(ctx context.Context) ([]model.Client, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+clientCols+` FROM clients ORDER BY name`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := []model.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) InsertClient(ctx context.Context, in model.ClientInput) (model.Client, error) {
	row := s.DB.QueryRowContext(ctx,
		`INSERT INTO clients (name, document, document_type, phone, email) VALUES ($1, $2, $3, $4, $5) RETURNING `+clientCols,
		in.Name, in.Document, string(in.DocumentType), nullString(in.Phone), nullString(in.Email),
	)
	c, err := scanClient(row)
	return c, classify(err)
}

func (s *PostgresStore) DeleteClient(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return classify(err)
	}
	return mustAffect(res)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
