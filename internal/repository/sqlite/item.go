package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/review-hub/internal/apperror"
	"github.com/sakif/review-hub/internal/model"
	"github.com/sakif/review-hub/internal/repository"
)

// ItemDB implements repository.ItemRepository; obtain one via DB.Items().
type ItemDB struct {
	conn *sql.DB
}

var _ repository.ItemRepository = (*ItemDB)(nil)

// Create inserts an item. The HTTP surface never calls this — items are
// immutable once seeded. It exists for the seeding path and for tests.
func (db *ItemDB) Create(ctx context.Context, item *model.Item) error {
	item.CreatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO items (name, description, category, image_url, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		item.Name,
		item.Description,
		item.Category,
		item.ImageURL,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating item %q: %w", item.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new item id: %w", err)
	}
	item.ID = id

	return nil
}

// GetByID retrieves a single item.
func (db *ItemDB) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, description, category, image_url, created_at
		 FROM items WHERE id = ?`,
		id,
	).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.ImageURL,
		&item.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Item not found")
		}
		return nil, fmt.Errorf("sqlite: getting item %d: %w", id, err)
	}

	return &item, nil
}

// List retrieves items, optionally narrowed by a case-insensitive name
// search and/or an exact category match, ordered by name.
//
// The WHERE clause is assembled from fixed fragments with ? placeholders —
// user input only ever travels as bound parameters, never spliced into the
// SQL text.
func (db *ItemDB) List(ctx context.Context, filter repository.ItemFilter) ([]model.Item, error) {
	query := `SELECT id, name, description, category, image_url, created_at FROM items`
	var conds []string
	var args []any

	if filter.Search != "" {
		conds = append(conds, `name LIKE ? COLLATE NOCASE`)
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		conds = append(conds, `category = ?`)
		args = append(args, filter.Category)
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY name ASC"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description,
			&item.Category, &item.ImageURL, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating items: %w", err)
	}

	return items, nil
}
