package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forkpoint/forkpoint-service/internal/sqlerr"
)

// AuthRepository stores the server-side record of issued tokens. A
// token is only valid while its row exists; logout deletes the row.
// Rows are keyed by a digest of the token signature, never the token
// itself.
type AuthRepository struct {
	db *pgxpool.Pool
}

func NewAuthRepository(db *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{db: db}
}

// InsertToken records a newly issued token for the user.
func (r *AuthRepository) InsertToken(ctx context.Context, signature string, userID int64) error {
	_, err := r.db.Exec(ctx,
		`insert into auth_tokens (signature, user_id) values ($1, $2)
		 on conflict (signature) do nothing`,
		signature, userID)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

// DeleteToken revokes a token. Deleting a token that was already
// revoked is not an error.
func (r *AuthRepository) DeleteToken(ctx context.Context, signature string) error {
	_, err := r.db.Exec(ctx, `delete from auth_tokens where signature = $1`, signature)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

// TokenExists reports whether the token is still registered.
func (r *AuthRepository) TokenExists(ctx context.Context, signature string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`select exists (select 1 from auth_tokens where signature = $1)`,
		signature,
	).Scan(&exists)
	if err != nil {
		return false, sqlerr.HandleError(err)
	}
	return exists, nil
}
