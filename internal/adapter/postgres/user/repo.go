// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/agpb-backend/internal/adapter/postgres"
	"github.com/heartmarshall/agpb-backend/internal/domain"
)

const table = "users"

var columns = []string{"id", "username", "pref_langs", "temp_token", "created_at", "updated_at"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	PrefLangs string    `db:"pref_langs"`
	TempToken string    `db:"temp_token"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PrefLangs:    r.PrefLangs,
		SessionToken: r.TempToken,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns a user by local ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, id)
}

// GetByUsername returns a user by wiki username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"username": username}, username)
}

// GetBySessionToken returns the user currently holding token. An empty
// token never matches.
func (r *Repo) GetBySessionToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, fmt.Errorf("user session: %w", domain.ErrNotFound)
	}
	return r.getOne(ctx, sq.Eq{"temp_token": token}, "session")
}

func (r *Repo) getOne(ctx context.Context, where sq.Eq, key any) (*domain.User, error) {
	query, args, err := psql.Select(columns...).From(table).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("user build select: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "user", key)
	}
	return out.toDomain(), nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Upsert returns the user named username, creating it with the default
// preferred languages on first sight.
func (r *Repo) Upsert(ctx context.Context, username string) (*domain.User, error) {
	query, args, err := psql.Insert(table).
		Columns("username", "pref_langs").
		Values(username, domain.DefaultPreferredLanguages).
		Suffix("ON CONFLICT (username) DO UPDATE SET updated_at = now() RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("user build upsert: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "user", username)
	}
	return out.toDomain(), nil
}

// SetSessionToken replaces the user's session token. An empty token logs
// the user out.
func (r *Repo) SetSessionToken(ctx context.Context, id int64, token string) error {
	return r.update(ctx, id, "temp_token", token)
}

// UpdatePreferredLanguages stores the comma-separated language codes.
func (r *Repo) UpdatePreferredLanguages(ctx context.Context, id int64, prefLangs string) error {
	return r.update(ctx, id, "pref_langs", prefLangs)
}

func (r *Repo) update(ctx context.Context, id int64, column, value string) error {
	query, args, err := psql.Update(table).
		Set(column, value).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("user build update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ClearStaleSessions logs out every user whose row has not changed since
// before. It returns the number of sessions cleared.
func (r *Repo) ClearStaleSessions(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := psql.Update(table).
		Set("temp_token", "").
		Where(sq.NotEq{"temp_token": ""}).
		Where(sq.Lt{"updated_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("user build clear sessions: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "user", "stale sessions")
	}
	return tag.RowsAffected(), nil
}
