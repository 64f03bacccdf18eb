package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
	"github.com/forkpoint/forkpoint-service/internal/sqlerr"
)

// OrderRepository persists diner orders. Order items carry the
// caller's description and price snapshots taken at purchase time, so
// later menu edits never rewrite history.
type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create writes an order header and one item row per line, all in a
// single transaction. Each line's menu key (the item title) must
// resolve to an existing menu item; an unknown key rolls back the
// whole order. The persisted description and price come from the line,
// not the menu row.
func (r *OrderRepository) Create(ctx context.Context, dinerID, franchiseID, storeID int64, lines []model.OrderLine) (model.Order, error) {
	if len(lines) == 0 {
		return model.Order{}, errs.Validation("an order needs at least one item")
	}

	var order model.Order
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`insert into diner_orders (diner_id, franchise_id, store_id)
			 values ($1, $2, $3)
			 returning id, created_at`,
			dinerID, franchiseID, storeID,
		).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return err
		}

		order.Items = make([]model.OrderItem, 0, len(lines))
		for _, line := range lines {
			menuItem, err := getMenuItemByTitle(ctx, tx, line.MenuKey)
			if err != nil {
				if errs.KindOf(err) == errs.KindNotFound {
					return errs.NotFoundf("unknown menu item: %s", line.MenuKey)
				}
				return err
			}

			item := model.OrderItem{
				MenuID:      menuItem.ID,
				Description: line.Description,
				Price:       line.Price,
			}
			err = tx.QueryRow(ctx,
				`insert into order_items (order_id, menu_id, description, price)
				 values ($1, $2, $3, $4)
				 returning id`,
				order.ID, item.MenuID, item.Description, item.Price,
			).Scan(&item.ID)
			if err != nil {
				return err
			}
			order.Items = append(order.Items, item)
		}
		return nil
	})
	if err != nil {
		return model.Order{}, sqlerr.HandleError(err)
	}

	order.DinerID = dinerID
	order.FranchiseID = franchiseID
	order.StoreID = storeID
	return order, nil
}

// ListForDiner returns one page of a diner's orders, oldest first,
// each with its items.
func (r *OrderRepository) ListForDiner(ctx context.Context, dinerID int64, page, perPage int) ([]model.Order, error) {
	rows, err := r.db.Query(ctx,
		`select id, diner_id, franchise_id, store_id, created_at
		 from diner_orders
		 where diner_id = $1
		 order by id
		 limit $2 offset $3`,
		dinerID, perPage, offsetFor(page, perPage))
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	orders := []model.Order{}
	for rows.Next() {
		var order model.Order
		if err := rows.Scan(&order.ID, &order.DinerID, &order.FranchiseID, &order.StoreID, &order.CreatedAt); err != nil {
			rows.Close()
			return nil, sqlerr.HandleError(err)
		}
		orders = append(orders, order)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	for i := range orders {
		items, err := r.getItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *OrderRepository) getItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	rows, err := r.db.Query(ctx,
		`select id, menu_id, description, price
		 from order_items
		 where order_id = $1
		 order by id`,
		orderID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.MenuID, &item.Description, &item.Price); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return items, nil
}
