package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ljovanovic/movie-booking-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	categoriesCacheKey = "catalog:categories"
	hallsCacheKey      = "catalog:halls"
	catalogCacheTTL    = 5 * time.Minute
)

// PostgresCatalogRepository reads the category and hall reference data,
// with a short-lived Redis cache in front. The data is externally managed
// and rarely changes, so a stale snapshot within the TTL is acceptable and
// cache failures fall back to the database.
type PostgresCatalogRepository struct {
	db    *pgxpool.Pool
	cache redis.UniversalClient
}

func NewPostgresCatalogRepository(db *pgxpool.Pool, cache redis.UniversalClient) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		db:    db,
		cache: cache,
	}
}

func (p *PostgresCatalogRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category

	if cacheHit(ctx, p.cache, categoriesCacheKey, &categories) {
		return categories, nil
	}

	query := `SELECT id, name FROM categories ORDER BY id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories = make([]domain.Category, 0)

	for rows.Next() {
		var category domain.Category

		err := rows.Scan(&category.ID, &category.Name)
		if err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	cachePut(ctx, p.cache, categoriesCacheKey, categories)

	return categories, nil
}

func (p *PostgresCatalogRepository) GetHalls(ctx context.Context) ([]domain.Hall, error) {
	var halls []domain.Hall

	if cacheHit(ctx, p.cache, hallsCacheKey, &halls) {
		return halls, nil
	}

	query := `SELECT id, name FROM halls ORDER BY id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls = make([]domain.Hall, 0)

	for rows.Next() {
		var hall domain.Hall

		err := rows.Scan(&hall.ID, &hall.Name)
		if err != nil {
			return nil, err
		}

		halls = append(halls, hall)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	cachePut(ctx, p.cache, hallsCacheKey, halls)

	return halls, nil
}

func cacheHit(ctx context.Context, cache redis.UniversalClient, key string, dest any) bool {
	if cache == nil {
		return false
	}

	payload, err := cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(payload, dest) == nil
}

func cachePut(ctx context.Context, cache redis.UniversalClient, key string, value any) {
	if cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	// A failed cache write only costs the next reader a database round trip.
	cache.Set(ctx, key, payload, catalogCacheTTL)
}
