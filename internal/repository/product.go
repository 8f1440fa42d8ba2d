package repository

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/kahvecikaan/salona-bot/internal/config"
	"github.com/kahvecikaan/salona-bot/internal/domain"
	"strings"
)

// DefaultLimit is used when a caller passes a non-positive limit
const DefaultLimit = 5

type ProductRepository interface {
	Search(ctx context.Context, keywords []string, limit int) ([]*domain.RetrievedProduct, error)
	Sample(ctx context.Context, limit int) ([]*domain.ProductSummary, error)
}

// DBProvider hands out the catalog connection pool
type DBProvider interface {
	DB(ctx context.Context) (*sql.DB, error)
}

// StaticDB is a DBProvider for an already opened pool
type StaticDB struct {
	Pool *sql.DB
}

func (s StaticDB) DB(ctx context.Context) (*sql.DB, error) {
	return s.Pool, nil
}

type sqlProductRepository struct {
	provider DBProvider
	driver   string
}

// NewSQLProductRepository creates a read-only repository. driver selects the
// placeholder style: config.DriverPostgres uses $n, everything else uses ?.
func NewSQLProductRepository(provider DBProvider, driver string) ProductRepository {
	return &sqlProductRepository{provider: provider, driver: driver}
}

// Search matches every keyword as a substring of name or description.
// Rows come back in the store's own order.
func (r *sqlProductRepository) Search(ctx context.Context, keywords []string, limit int) ([]*domain.RetrievedProduct, error) {
	if len(keywords) == 0 {
		return []*domain.RetrievedProduct{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	query, args := r.searchQuery(keywords, limit)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.RetrievedProduct, 0, limit)
	for rows.Next() {
		var (
			name        string
			description sql.NullString
			price       sql.NullInt64
		)
		if err := rows.Scan(&name, &description, &price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &domain.RetrievedProduct{
			Name:        name,
			Description: description.String,
			Price:       price.Int64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	return products, nil
}

func (r *sqlProductRepository) Sample(ctx context.Context, limit int) ([]*domain.ProductSummary, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT name, price FROM products LIMIT "+r.placeholder(1), limit)
	if err != nil {
		return nil, fmt.Errorf("sample products: %w", err)
	}
	defer rows.Close()

	var products []*domain.ProductSummary
	for rows.Next() {
		var (
			name  string
			price sql.NullInt64
		)
		if err := rows.Scan(&name, &price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &domain.ProductSummary{Name: name, Price: price.Int64})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sample products: %w", err)
	}

	return products, nil
}

// searchQuery builds the OR of name/description LIKE conditions with every
// value bound as an argument
func (r *sqlProductRepository) searchQuery(keywords []string, limit int) (string, []any) {
	conditions := make([]string, 0, 2*len(keywords))
	args := make([]any, 0, 2*len(keywords)+1)

	for _, k := range keywords {
		like := "%" + k + "%"
		conditions = append(conditions,
			"name LIKE "+r.placeholder(len(args)+1),
			"description LIKE "+r.placeholder(len(args)+2),
		)
		args = append(args, like, like)
	}
	args = append(args, limit)

	query := "SELECT name, description, price FROM products WHERE " +
		strings.Join(conditions, " OR ") +
		" LIMIT " + r.placeholder(len(args))
	return query, args
}

func (r *sqlProductRepository) placeholder(n int) string {
	if r.driver == config.DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
