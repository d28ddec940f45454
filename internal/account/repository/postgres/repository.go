package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/therishabh/chai-backend/internal/account/domain"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const userColumns = `id, username, email, full_name, avatar, cover_image, password_hash, refresh_token, created_at, updated_at`

// updatableColumns whitelists what UpdateFields may touch. password_hash is
// only ever written with an already-hashed value by the service layer.
var updatableColumns = map[string]bool{
	"full_name":     true,
	"email":         true,
	"avatar":        true,
	"cover_image":   true,
	"password_hash": true,
	"refresh_token": true,
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByUsernameOrEmail looks a user up by either identity key. The caller is
// expected to lowercase the identifier; stored usernames and emails are
// always lowercase.
func (r *PostgresRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE username = $1 OR email = $1
		LIMIT 1;
	`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username or email: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE id = $1
		LIMIT 1;
	`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, username, email, full_name, avatar, cover_image, password_hash, refresh_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)
	`, user.ID, user.Username, user.Email, user.FullName, user.Avatar, user.CoverImage,
		user.PasswordHash, user.RefreshToken, user.CreatedAt, user.UpdatedAt)

	return err
}

// UpdateFields applies one atomic UPDATE over a whitelisted set of columns
// and returns the updated record, or (nil, nil) when the row no longer
// exists. A nil value clears the column.
func (r *PostgresRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	cols := make([]string, 0, len(fields))
	for col := range fields {
		if !updatableColumns[col] {
			return nil, fmt.Errorf("column %q is not updatable", col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	assignments := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, fields[col])
	}
	assignments = append(assignments, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING %s;
	`, strings.Join(assignments, ", "), len(cols)+1, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user fields: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var coverImage, refreshToken *string

	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FullName, &user.Avatar,
		&coverImage, &user.PasswordHash, &refreshToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if coverImage != nil {
		user.CoverImage = *coverImage
	}
	if refreshToken != nil {
		user.RefreshToken = *refreshToken
	}

	return &user, nil
}
