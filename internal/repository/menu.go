package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forkpoint/forkpoint-service/internal/database"
	"github.com/forkpoint/forkpoint-service/internal/model"
	"github.com/forkpoint/forkpoint-service/internal/sqlerr"
)

// MenuRepository persists the shared menu catalog.
type MenuRepository struct {
	db *pgxpool.Pool
}

func NewMenuRepository(db *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{db: db}
}

// List returns the full menu in insertion order. An empty menu is a
// valid result, not an error.
func (r *MenuRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := r.db.Query(ctx,
		`select id, title, description, image, price from menu_items order by id`)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	items := []model.MenuItem{}
	for rows.Next() {
		var item model.MenuItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Image, &item.Price); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return items, nil
}

// Add inserts a new menu item and returns it with its assigned id.
// Duplicate titles surface as conflicts.
func (r *MenuRepository) Add(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	err := r.db.QueryRow(ctx,
		`insert into menu_items (title, description, image, price)
		 values ($1, $2, $3, $4)
		 returning id`,
		item.Title, item.Description, item.Image, item.Price,
	).Scan(&item.ID)
	if err != nil {
		return model.MenuItem{}, sqlerr.HandleError(err)
	}
	return item, nil
}

// getMenuItemByTitle resolves a menu item by its title. Used during
// order creation where request lines reference items by key.
func getMenuItemByTitle(ctx context.Context, q database.Querier, title string) (model.MenuItem, error) {
	var item model.MenuItem
	err := q.QueryRow(ctx,
		`select id, title, description, image, price from menu_items where title = $1`,
		title,
	).Scan(&item.ID, &item.Title, &item.Description, &item.Image, &item.Price)
	if err != nil {
		return model.MenuItem{}, sqlerr.HandleError(err)
	}
	return item, nil
}
