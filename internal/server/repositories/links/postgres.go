// Package links provides the PostgreSQL-backed repository for links and the
// vote join between users and links.
package links

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"linkboard/internal/common"
	"linkboard/internal/dbx"
	"linkboard/internal/server/models"
)

// defaultListLimit caps an unbounded feed window at the store level.
const defaultListLimit = 1000

// foreignKeyViolation is the PostgreSQL error code for a missing referenced row.
const foreignKeyViolation = "23503"

var orderColumns = map[models.OrderField]string{
	models.OrderByDescription: "description",
	models.OrderByURL:         "url",
	models.OrderByCreatedAt:   "created_at",
}

var orderDirections = map[models.SortDirection]string{
	models.SortAsc:  "ASC",
	models.SortDesc: "DESC",
}

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	query := `
		INSERT INTO links (description, url, posted_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	postedBy := sql.NullString{String: link.PostedBy, Valid: link.PostedBy != ""}
	err := r.db.QueryRowContext(ctx, query,
		link.Description, link.URL, postedBy).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		return nil, common.StoreError(err)
	}

	return link, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Link, error) {
	query := `
		SELECT id, description, url, posted_by, created_at FROM links
		WHERE id = $1
	`

	return scanLink(r.db.QueryRowContext(ctx, query, id))
}

// List builds the feed SELECT: the filter is a case-sensitive substring
// match on description OR url, the ORDER BY entries apply in sequence over
// whitelisted columns, and the window applies after both.
func (r *PostgresRepository) List(ctx context.Context, q models.FeedQuery) ([]*models.Link, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString(`SELECT id, description, url, posted_by, created_at FROM links`)

	if q.Filter != nil {
		args = append(args, *q.Filter)
		sb.WriteString(` WHERE strpos(description, $1) > 0 OR strpos(url, $1) > 0`)
	}

	if len(q.OrderBy) > 0 {
		clauses := make([]string, 0, len(q.OrderBy))
		for _, o := range q.OrderBy {
			col, okField := orderColumns[o.Field]
			dir, okDir := orderDirections[o.Direction]
			if !okField || !okDir {
				return nil, fmt.Errorf("%w: order by %s %s", common.ErrInvalidArgument, o.Field, o.Direction)
			}
			clauses = append(clauses, col+" "+dir)
		}
		sb.WriteString(" ORDER BY " + strings.Join(clauses, ", "))
	}

	take := defaultListLimit
	if q.Take != nil {
		take = *q.Take
	}
	args = append(args, take)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))

	if q.Skip != nil && *q.Skip > 0 {
		args = append(args, *q.Skip)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, common.StoreError(err)
	}
	defer rows.Close()

	var result []*models.Link
	for rows.Next() {
		link, err := scanLinkRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, link)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StoreError(err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context, filter *string) (int, error) {
	query := `SELECT count(*) FROM links`
	var args []any

	if filter != nil {
		query += ` WHERE strpos(description, $1) > 0 OR strpos(url, $1) > 0`
		args = append(args, *filter)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, common.StoreError(err)
	}

	return count, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, description, url models.OptionalString) (*models.Link, error) {
	var sets []string
	var args []any

	if v, ok := description.Get(); ok {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if v, ok := url.Get(); ok {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("url = $%d", len(args)))
	}

	// Nothing to overwrite; still resolve the id so absence reports NotFound.
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE links SET %s
		WHERE id = $%d
		RETURNING id, description, url, posted_by, created_at
	`, strings.Join(sets, ", "), len(args))

	return scanLink(r.db.QueryRowContext(ctx, query, args...))
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.Link, error) {
	query := `
		DELETE FROM links
		WHERE id = $1
		RETURNING id, description, url, posted_by, created_at
	`

	return scanLink(r.db.QueryRowContext(ctx, query, id))
}

// AddVote is the store-level add-if-absent on the (user, link) pair. The
// votes primary key makes a repeat insert a no-op instead of a duplicate.
func (r *PostgresRepository) AddVote(ctx context.Context, userID string, linkID int64) error {
	query := `
		INSERT INTO votes (user_id, link_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, link_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, userID, linkID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return common.ErrNotFound
		}
		return common.StoreError(err)
	}

	return nil
}

func (r *PostgresRepository) Voters(ctx context.Context, linkID int64) ([]*models.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.created_at FROM users u
		JOIN votes v ON v.user_id = u.id
		WHERE v.link_id = $1
		ORDER BY v.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, linkID)
	if err != nil {
		return nil, common.StoreError(err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			return nil, common.StoreError(err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StoreError(err)
	}

	return result, nil
}

func (r *PostgresRepository) OwnedBy(ctx context.Context, userID string) ([]*models.Link, error) {
	query := `
		SELECT id, description, url, posted_by, created_at FROM links
		WHERE posted_by = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, common.StoreError(err)
	}
	defer rows.Close()

	var result []*models.Link
	for rows.Next() {
		link, err := scanLinkRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, link)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StoreError(err)
	}

	return result, nil
}

func scanLink(row *sql.Row) (*models.Link, error) {
	link := &models.Link{}
	var postedBy sql.NullString

	err := row.Scan(&link.ID, &link.Description, &link.URL, &postedBy, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.StoreError(err)
	}

	link.PostedBy = postedBy.String
	return link, nil
}

func scanLinkRow(rows *sql.Rows) (*models.Link, error) {
	link := &models.Link{}
	var postedBy sql.NullString

	if err := rows.Scan(&link.ID, &link.Description, &link.URL, &postedBy, &link.CreatedAt); err != nil {
		return nil, common.StoreError(err)
	}

	link.PostedBy = postedBy.String
	return link, nil
}
