package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

// UniqueUsername returns a wiki-style username that does not collide with
// other tests sharing the container.
func UniqueUsername(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedUser inserts a user holding sessionToken and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool, sessionToken string) domain.User {
	t.Helper()

	u := domain.User{
		Username:     UniqueUsername("Tester"),
		PrefLangs:    domain.DefaultPreferredLanguages,
		SessionToken: sessionToken,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (username, pref_langs, temp_token) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		u.Username, u.PrefLangs, u.SessionToken,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed user: %v", err)
	}
	return u
}
