// Package contribution implements the append-only contribution ledger on
// PostgreSQL.
package contribution

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

const (
	table        = "contributions"
	defaultLimit = 50
	maxLimit     = 500
)

var columns = []string{"id", "wd_item", "username", "lang_code", "edit_type", "data", "date", "created_at"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides ledger persistence. Rows are inserted and read, never
// updated or deleted.
type Repo struct {
	db postgres.Querier
}

// New creates a new contribution repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        int64     `db:"id"`
	WDItem    string    `db:"wd_item"`
	Username  string    `db:"username"`
	LangCode  string    `db:"lang_code"`
	EditType  string    `db:"edit_type"`
	Data      string    `db:"data"`
	Date      time.Time `db:"date"`
	CreatedAt time.Time `db:"created_at"`
}

func (r row) toDomain() domain.Contribution {
	return domain.Contribution{
		ID:        r.ID,
		WDItem:    r.WDItem,
		Username:  r.Username,
		LangCode:  r.LangCode,
		EditType:  domain.EditType(r.EditType),
		Data:      r.Data,
		Date:      r.Date,
		CreatedAt: r.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts c and returns the stored row. A zero Date means now.
func (r *Repo) Create(ctx context.Context, c domain.Contribution) (domain.Contribution, error) {
	date := c.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	query, args, err := psql.Insert(table).
		Columns("wd_item", "username", "lang_code", "edit_type", "data", "date").
		Values(c.WDItem, c.Username, c.LangCode, string(c.EditType), c.Data, date).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("contribution build insert: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return domain.Contribution{}, postgres.MapError(err, "contribution", c.WDItem)
	}
	return out.toDomain(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns one ledger row.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.Contribution, error) {
	query, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("contribution build select: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return domain.Contribution{}, postgres.MapError(err, "contribution", id)
	}
	return out.toDomain(), nil
}

// List returns rows matching f, newest first.
func (r *Repo) List(ctx context.Context, f domain.ContributionFilter) ([]domain.Contribution, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)

	b := applyFilter(psql.Select(columns...).From(table), f).
		OrderBy("date DESC", "id DESC").
		Limit(uint64(limit))
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("contribution build list: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "contribution", "list")
	}

	out := make([]domain.Contribution, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// Count returns the number of rows matching f, ignoring paging.
func (r *Repo) Count(ctx context.Context, f domain.ContributionFilter) (int, error) {
	query, args, err := applyFilter(psql.Select("count(*)").From(table), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("contribution build count: %w", err)
	}

	var n int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "contribution", "count")
	}
	return int(n), nil
}

func applyFilter(b sq.SelectBuilder, f domain.ContributionFilter) sq.SelectBuilder {
	if f.Username != "" {
		b = b.Where(sq.Eq{"username": f.Username})
	}
	if f.LangCode != "" {
		b = b.Where(sq.Eq{"lang_code": f.LangCode})
	}
	if f.EditType != "" {
		b = b.Where(sq.Eq{"edit_type": string(f.EditType)})
	}
	return b
}
