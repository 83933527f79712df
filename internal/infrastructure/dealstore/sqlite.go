// Package dealstore persists cached deals in SQLite so price snapshots
// survive restarts. It implements the same DealCache contract as the
// in-memory cache.
package dealstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shelfscan/backend/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cached_deals (
	product_id   TEXT NOT NULL,
	retailer     TEXT NOT NULL,
	deal_url     TEXT NOT NULL,
	title        TEXT NOT NULL,
	price        REAL NOT NULL,
	currency     TEXT NOT NULL,
	availability TEXT NOT NULL,
	search_query TEXT NOT NULL,
	expires_at   INTEGER NOT NULL,
	PRIMARY KEY (product_id, retailer, deal_url)
);
CREATE INDEX IF NOT EXISTS idx_cached_deals_expires ON cached_deals (expires_at);
`

// Store is a SQLite-backed deal cache.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open deal store: %w", err)
	}
	// modernc.org/sqlite serializes writes itself; a single connection
	// avoids SQLITE_BUSY under concurrent cache writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init deal store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the unexpired deals for a product, cheapest first.
func (s *Store) Get(ctx context.Context, productID string) ([]domain.CachedDeal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, retailer, deal_url, title, price, currency, availability, search_query, expires_at
		FROM cached_deals
		WHERE product_id = ? AND expires_at > ?
		ORDER BY price ASC`,
		productID, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	defer rows.Close()

	var deals []domain.CachedDeal
	for rows.Next() {
		var d domain.CachedDeal
		var expires int64
		if err := rows.Scan(&d.ProductID, &d.Retailer, &d.DealURL, &d.Title,
			&d.Price, &d.Currency, &d.Availability, &d.SearchQuery, &expires); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
		}
		d.ExpiresAt = time.Unix(expires, 0)
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	if len(deals) == 0 {
		return nil, domain.ErrCacheMiss
	}
	return deals, nil
}

// Put upserts deals keyed on (product_id, retailer, deal_url).
func (s *Store) Put(ctx context.Context, deals []domain.CachedDeal) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cached_deals (product_id, retailer, deal_url, title, price, currency, availability, search_query, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (product_id, retailer, deal_url) DO UPDATE SET
			title        = excluded.title,
			price        = excluded.price,
			currency     = excluded.currency,
			availability = excluded.availability,
			search_query = excluded.search_query,
			expires_at   = excluded.expires_at`)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	defer stmt.Close()

	for _, d := range deals {
		if _, err := stmt.ExecContext(ctx,
			d.ProductID, d.Retailer, d.DealURL, d.Title,
			d.Price, d.Currency, d.Availability, d.SearchQuery,
			d.ExpiresAt.Unix()); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Prune deletes expired rows. Callers run it periodically; reads already
// filter on expiry, so pruning only reclaims space.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cached_deals WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
