package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forkpoint/forkpoint-service/internal/auth"
	"github.com/forkpoint/forkpoint-service/internal/database"
	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
	"github.com/forkpoint/forkpoint-service/internal/sqlerr"
)

// UserRepository persists user accounts and their role assignments.
// Password hashes never leave this package; every returned model.User
// is hash-free.
type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func getRolesForUser(ctx context.Context, q database.Querier, userID int64) ([]model.RoleAssignment, error) {
	rows, err := q.Query(ctx,
		`select role, object_id from user_roles where user_id = $1 order by id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []model.RoleAssignment{}
	for rows.Next() {
		var ra model.RoleAssignment
		if err := rows.Scan(&ra.Role, &ra.ObjectID); err != nil {
			return nil, err
		}
		roles = append(roles, ra)
	}
	return roles, rows.Err()
}

func insertRoles(ctx context.Context, q database.Querier, userID int64, roles []model.RoleAssignment) error {
	for _, ra := range roles {
		if _, err := q.Exec(ctx,
			`insert into user_roles (user_id, role, object_id) values ($1, $2, $3)`,
			userID, ra.Role, ra.ObjectID,
		); err != nil {
			return err
		}
	}
	return nil
}

func getUserByID(ctx context.Context, q database.Querier, id int64) (model.User, error) {
	var user model.User
	err := q.QueryRow(ctx,
		`select id, name, email from users where id = $1`, id,
	).Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		return model.User{}, err
	}

	user.Roles, err = getRolesForUser(ctx, q, id)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// GetByID fetches a user and their roles.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	user, err := getUserByID(ctx, r.db, id)
	if err != nil {
		return model.User{}, sqlerr.HandleError(err)
	}
	return user, nil
}

// GetByCredentials fetches a user by email and verifies the password.
// Unknown email and wrong password return the same auth error so a
// caller cannot tell which emails exist.
func (r *UserRepository) GetByCredentials(ctx context.Context, email, password string) (model.User, error) {
	var (
		user model.User
		hash string
	)
	err := r.db.QueryRow(ctx,
		`select id, name, email, password_hash from users where email = $1`, email,
	).Scan(&user.ID, &user.Name, &user.Email, &hash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.User{}, errs.Auth("invalid email or password")
		}
		return model.User{}, sqlerr.HandleError(err)
	}

	if !auth.VerifyPassword(password, hash) {
		return model.User{}, errs.Auth("invalid email or password")
	}

	user.Roles, err = getRolesForUser(ctx, r.db, user.ID)
	if err != nil {
		return model.User{}, sqlerr.HandleError(err)
	}
	return user, nil
}

// Add creates a user with the given roles in a single transaction. The
// plaintext password is hashed here and only the hash is stored. Role
// assignments are checked up front: the role set is closed, and a
// scoped role must name the object it is scoped to.
func (r *UserRepository) Add(ctx context.Context, name, email, password string, roles []model.RoleAssignment) (model.User, error) {
	for _, ra := range roles {
		if !ra.Role.Valid() {
			return model.User{}, errs.Validation(fmt.Sprintf("unknown role: %s", ra.Role))
		}
		if ra.Role.Scoped() && ra.ObjectID == 0 {
			return model.User{}, errs.Validation(fmt.Sprintf("the %s role requires an object id", ra.Role))
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`insert into users (name, email, password_hash) values ($1, $2, $3) returning id`,
			name, email, hash,
		).Scan(&user.ID)
		if err != nil {
			return err
		}
		return insertRoles(ctx, tx, user.ID, roles)
	})
	if err != nil {
		return model.User{}, sqlerr.HandleError(err)
	}

	user.Name = name
	user.Email = email
	user.Roles = roles
	return user, nil
}

// List returns one page of users filtered by name, plus a flag for
// whether more pages exist. The name filter accepts '*' as a wildcard.
func (r *UserRepository) List(ctx context.Context, page, perPage int, name string) ([]model.User, bool, error) {
	if name == "" {
		name = "*"
	}
	pattern := strings.ReplaceAll(name, "*", "%")

	rows, err := r.db.Query(ctx,
		`select id, name, email from users
		 where name ilike $1
		 order by id
		 limit $2 offset $3`,
		pattern, perPage+1, offsetFor(page, perPage))
	if err != nil {
		return nil, false, sqlerr.HandleError(err)
	}

	users := []model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			rows.Close()
			return nil, false, sqlerr.HandleError(err)
		}
		users = append(users, user)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, false, sqlerr.HandleError(err)
	}

	more := len(users) > perPage
	if more {
		users = users[:perPage]
	}

	for i := range users {
		users[i].Roles, err = getRolesForUser(ctx, r.db, users[i].ID)
		if err != nil {
			return nil, false, sqlerr.HandleError(err)
		}
	}

	return users, more, nil
}

// Update changes a user's name, email, or password. Empty fields keep
// their current value. Returns the updated user with roles.
func (r *UserRepository) Update(ctx context.Context, id int64, name, email, password string) (model.User, error) {
	var hash string
	if password != "" {
		var err error
		hash, err = auth.HashPassword(password)
		if err != nil {
			return model.User{}, err
		}
	}

	var user model.User
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`update users set
			   name = coalesce(nullif($2, ''), name),
			   email = coalesce(nullif($3, ''), email),
			   password_hash = coalesce(nullif($4, ''), password_hash)
			 where id = $1`,
			id, name, email, hash)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errs.NotFound("user not found")
		}

		user, err = getUserByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return model.User{}, sqlerr.HandleError(err)
	}
	return user, nil
}

// Delete removes a user. Role assignments and auth tokens go with it
// via cascading foreign keys.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `delete from users where id = $1`, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("user not found")
	}
	return nil
}
