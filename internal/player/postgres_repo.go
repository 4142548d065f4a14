package player

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const playerColumns = "id::text, name, team, runs, salary, created_at, updated_at"

// sortColumns maps each SortableFields entry to its column.
var sortColumns = map[SortField]string{
	SortByRuns:   "runs",
	SortBySalary: "salary",
}

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Count(ctx context.Context, f Filter) (int, error) {
	where, args := whereClause(f)
	sql := "SELECT COUNT(*) FROM players " + where

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var total int
	if err := r.db.QueryRow(timeoutCtx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return total, nil
}

func (r *PostgresRepo) Find(ctx context.Context, q Query) ([]Player, error) {
	where, args := whereClause(q.Filter)
	order, err := orderBy(q.Sort)
	if err != nil {
		return nil, err
	}
	argn := len(args) + 1
	sql := fmt.Sprintf("SELECT %s FROM players %s ORDER BY %s LIMIT $%d OFFSET $%d",
		playerColumns, where, order, argn, argn+1)
	args = append(args, q.Limit, q.Offset)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find players: %w", err)
	}
	defer rows.Close()

	out := []Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Player, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Player{}, ErrNotFound
	}
	sql := "SELECT " + playerColumns + " FROM players WHERE id = $1"

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	p, err := scanPlayer(r.db.QueryRow(timeoutCtx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Player{}, ErrNotFound
		}
		return Player{}, err
	}
	return p, nil
}

func (r *PostgresRepo) Create(ctx context.Context, in Input) (Player, error) {
	sql := `
		INSERT INTO players (name, team, runs, salary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING ` + playerColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	p, err := scanPlayer(r.db.QueryRow(timeoutCtx, sql, in.Name, in.Team, in.Runs, in.Salary))
	if err != nil {
		return Player{}, fmt.Errorf("insert player: %w", err)
	}
	return p, nil
}

func (r *PostgresRepo) UpdateByID(ctx context.Context, id string, patch Patch) (Player, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Player{}, ErrNotFound
	}
	sql := `
		UPDATE players SET
			name = COALESCE($2, name),
			team = COALESCE($3, team),
			runs = COALESCE($4, runs),
			salary = COALESCE($5, salary),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + playerColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	p, err := scanPlayer(r.db.QueryRow(timeoutCtx, sql, id, patch.Name, patch.Team, patch.Runs, patch.Salary))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Player{}, ErrNotFound
		}
		return Player{}, fmt.Errorf("update player: %w", err)
	}
	return p, nil
}

func (r *PostgresRepo) DeleteByID(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, "DELETE FROM players WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPlayer(row pgx.Row) (Player, error) {
	var p Player
	err := row.Scan(&p.ID, &p.Name, &p.Team, &p.Runs, &p.Salary, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// whereClause renders f as a WHERE clause with positional arguments.
func whereClause(f Filter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if f.Team != "" {
		clauses = append(clauses, fmt.Sprintf("team = $%d", argn))
		args = append(args, f.Team)
		argn++
	}
	if f.NameContains != "" {
		clauses = append(clauses, fmt.Sprintf(`name ILIKE '%%' || $%d || '%%' ESCAPE '\'`, argn))
		args = append(args, escapeLike(f.NameContains))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

// orderBy renders s as an ORDER BY list. id breaks ties so pages are stable.
func orderBy(s Sort) (string, error) {
	if s.IsZero() {
		return "created_at, id", nil
	}
	col, ok := sortColumns[s.Field]
	if !ok {
		return "", fmt.Errorf("unsupported sort field %q", s.Field)
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return col + " " + dir + ", id", nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
