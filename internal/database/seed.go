package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/forkpoint/forkpoint-service/internal/auth"
	"github.com/forkpoint/forkpoint-service/internal/config"
)

// starterMenu is inserted on first run so a fresh install serves a
// non-empty menu.
var starterMenu = []struct {
	title       string
	description string
	image       string
	price       decimal.Decimal
}{
	{"veggie", "A garden of delight", "pizza1.png", decimal.RequireFromString("0.05")},
	{"pepperoni", "Spicy treat", "pizza2.png", decimal.RequireFromString("0.04")},
	{"margarita", "Essential classic", "pizza3.png", decimal.RequireFromString("0.04")},
}

// Seed provisions first-run data: the default admin account and the
// starter menu. It only acts when the users table is empty, so restarts
// against an existing database are no-ops.
func Seed(ctx context.Context, logger *zerolog.Logger, db *Database, cfg *config.Config) error {
	var userCount int
	if err := db.Pool.QueryRow(ctx, `select count(*) from users`).Scan(&userCount); err != nil {
		return fmt.Errorf("checking for existing users: %w", err)
	}
	if userCount > 0 {
		return nil
	}

	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		logger.Warn().Msg("no seed admin configured, skipping first-run seed")
		return nil
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing seed admin password: %w", err)
	}

	err = pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		var adminID int64
		err := tx.QueryRow(ctx,
			`insert into users (name, email, password_hash) values ($1, $2, $3) returning id`,
			cfg.Seed.AdminName, cfg.Seed.AdminEmail, hash,
		).Scan(&adminID)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`insert into user_roles (user_id, role, object_id) values ($1, 'admin', 0)`,
			adminID,
		); err != nil {
			return err
		}

		for _, item := range starterMenu {
			if _, err := tx.Exec(ctx,
				`insert into menu_items (title, description, image, price) values ($1, $2, $3, $4)`,
				item.title, item.description, item.image, item.price,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seeding first-run data: %w", err)
	}

	logger.Info().Str("email", cfg.Seed.AdminEmail).Msg("seeded default admin and starter menu")
	return nil
}
