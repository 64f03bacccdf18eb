package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forkpoint/forkpoint-service/internal/database"
	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
	"github.com/forkpoint/forkpoint-service/internal/sqlerr"
)

// FranchiseRepository persists franchises, their stores, and the
// franchisee role assignments that tie users to a franchise.
type FranchiseRepository struct {
	db *pgxpool.Pool
}

func NewFranchiseRepository(db *pgxpool.Pool) *FranchiseRepository {
	return &FranchiseRepository{db: db}
}

func getStoresForFranchise(ctx context.Context, q database.Querier, franchiseID int64) ([]model.Store, error) {
	rows, err := q.Query(ctx,
		`select id, name from stores where franchise_id = $1 order by id`,
		franchiseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := []model.Store{}
	for rows.Next() {
		var store model.Store
		if err := rows.Scan(&store.ID, &store.Name); err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, rows.Err()
}

func getAdminsForFranchise(ctx context.Context, q database.Querier, franchiseID int64) ([]model.User, error) {
	rows, err := q.Query(ctx,
		`select u.id, u.name, u.email
		 from users u
		 join user_roles ur on ur.user_id = u.id
		 where ur.role = 'franchisee' and ur.object_id = $1
		 order by u.id`,
		franchiseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := []model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			return nil, err
		}
		admins = append(admins, user)
	}
	return admins, rows.Err()
}

// List returns one page of franchises with their stores, plus a flag
// indicating whether more pages exist. The name filter accepts '*' as
// a wildcard. Admin details are only attached when includeAdmins is
// set; the public listing stays free of user data.
func (r *FranchiseRepository) List(ctx context.Context, page, perPage int, name string, includeAdmins bool) ([]model.Franchise, bool, error) {
	if name == "" {
		name = "*"
	}
	pattern := strings.ReplaceAll(name, "*", "%")

	// One extra row decides the "more" flag without a second count
	// query.
	rows, err := r.db.Query(ctx,
		`select id, name from franchises
		 where name ilike $1
		 order by id
		 limit $2 offset $3`,
		pattern, perPage+1, offsetFor(page, perPage))
	if err != nil {
		return nil, false, sqlerr.HandleError(err)
	}

	franchises := []model.Franchise{}
	for rows.Next() {
		var fr model.Franchise
		if err := rows.Scan(&fr.ID, &fr.Name); err != nil {
			rows.Close()
			return nil, false, sqlerr.HandleError(err)
		}
		franchises = append(franchises, fr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, false, sqlerr.HandleError(err)
	}

	more := len(franchises) > perPage
	if more {
		franchises = franchises[:perPage]
	}

	for i := range franchises {
		franchises[i].Stores, err = getStoresForFranchise(ctx, r.db, franchises[i].ID)
		if err != nil {
			return nil, false, sqlerr.HandleError(err)
		}
		if includeAdmins {
			franchises[i].Admins, err = getAdminsForFranchise(ctx, r.db, franchises[i].ID)
			if err != nil {
				return nil, false, sqlerr.HandleError(err)
			}
		}
	}

	return franchises, more, nil
}

// ListForUser returns the franchises a user administers, with full
// detail.
func (r *FranchiseRepository) ListForUser(ctx context.Context, userID int64) ([]model.Franchise, error) {
	rows, err := r.db.Query(ctx,
		`select f.id, f.name
		 from franchises f
		 join user_roles ur on ur.object_id = f.id
		 where ur.role = 'franchisee' and ur.user_id = $1
		 order by f.id`,
		userID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	franchises := []model.Franchise{}
	for rows.Next() {
		var fr model.Franchise
		if err := rows.Scan(&fr.ID, &fr.Name); err != nil {
			rows.Close()
			return nil, sqlerr.HandleError(err)
		}
		franchises = append(franchises, fr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	for i := range franchises {
		if err := r.hydrate(ctx, &franchises[i]); err != nil {
			return nil, err
		}
	}
	return franchises, nil
}

// GetByID returns a franchise with its admins and stores.
func (r *FranchiseRepository) GetByID(ctx context.Context, id int64) (model.Franchise, error) {
	var fr model.Franchise
	err := r.db.QueryRow(ctx,
		`select id, name from franchises where id = $1`, id,
	).Scan(&fr.ID, &fr.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Franchise{}, errs.NotFound("franchise not found")
		}
		return model.Franchise{}, sqlerr.HandleError(err)
	}

	if err := r.hydrate(ctx, &fr); err != nil {
		return model.Franchise{}, err
	}
	return fr, nil
}

func (r *FranchiseRepository) hydrate(ctx context.Context, fr *model.Franchise) error {
	var err error
	fr.Admins, err = getAdminsForFranchise(ctx, r.db, fr.ID)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	fr.Stores, err = getStoresForFranchise(ctx, r.db, fr.ID)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

// Create inserts a franchise and grants the franchisee role to every
// admin, identified by email. An unknown email fails the whole
// operation before anything is written.
func (r *FranchiseRepository) Create(ctx context.Context, name string, adminEmails []string) (model.Franchise, error) {
	fr := model.Franchise{Name: name}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		admins := make([]model.User, 0, len(adminEmails))
		for _, email := range adminEmails {
			var user model.User
			err := tx.QueryRow(ctx,
				`select id, name, email from users where email = $1`, email,
			).Scan(&user.ID, &user.Name, &user.Email)
			if err != nil {
				if err == pgx.ErrNoRows {
					return errs.NotFoundf("unknown user for franchise admin: %s", email)
				}
				return err
			}
			admins = append(admins, user)
		}

		err := tx.QueryRow(ctx,
			`insert into franchises (name) values ($1) returning id`, name,
		).Scan(&fr.ID)
		if err != nil {
			return err
		}

		for _, admin := range admins {
			if _, err := tx.Exec(ctx,
				`insert into user_roles (user_id, role, object_id) values ($1, 'franchisee', $2)`,
				admin.ID, fr.ID,
			); err != nil {
				return err
			}
		}

		fr.Admins = admins
		fr.Stores = []model.Store{}
		return nil
	})
	if err != nil {
		return model.Franchise{}, sqlerr.HandleError(err)
	}
	return fr, nil
}

// Delete removes a franchise, its stores, and the franchisee role
// assignments scoped to it, in one transaction.
func (r *FranchiseRepository) Delete(ctx context.Context, id int64) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		// object_id is not a foreign key, so scoped roles need an
		// explicit delete.
		if _, err := tx.Exec(ctx,
			`delete from user_roles where role = 'franchisee' and object_id = $1`, id,
		); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `delete from franchises where id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errs.NotFound("franchise not found")
		}
		return nil
	})
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

// CreateStore adds a store to a franchise. A missing franchise
// surfaces as a not-found via the foreign key.
func (r *FranchiseRepository) CreateStore(ctx context.Context, franchiseID int64, name string) (model.Store, error) {
	store := model.Store{FranchiseID: franchiseID, Name: name}
	err := r.db.QueryRow(ctx,
		`insert into stores (franchise_id, name) values ($1, $2) returning id`,
		franchiseID, name,
	).Scan(&store.ID)
	if err != nil {
		return model.Store{}, sqlerr.HandleError(err)
	}
	return store, nil
}

// DeleteStore removes a store. Deleting a store that does not exist is
// not an error.
func (r *FranchiseRepository) DeleteStore(ctx context.Context, franchiseID, storeID int64) error {
	_, err := r.db.Exec(ctx,
		`delete from stores where id = $1 and franchise_id = $2`,
		storeID, franchiseID)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}
