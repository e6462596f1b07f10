/*
Package user stores accounts and their favorite recipes and remixes.

Passwords are hashed here, before anything reaches SQL, and the hash is only
read back to check credentials.
*/
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"remix/internal/app/db"
	"remix/internal/app/model"
	"remix/internal/pkg/errs"
	"remix/internal/pkg/sqlpatch"
)

// Hasher hashes and checks passwords.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) (bool, error)
}

// Repository reads and writes users.
type Repository struct {
	db     db.DBTX
	hasher Hasher
}

// NewRepository returns a Repository using conn and hasher.
func NewRepository(conn db.DBTX, hasher Hasher) *Repository {
	return &Repository{db: conn, hasher: hasher}
}

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var (
		u       model.User
		created sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &created); err != nil {
		return model.User{}, err
	}
	u.Timestamp = model.NewTimestamp(created.Time)
	return u, nil
}

// Register creates an account. A taken username or email fails with ErrUserAlreadyExists.
func (r *Repository) Register(ctx context.Context, in model.NewUser) (model.User, error) {
	hashed, err := r.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, err
	}

	query := `INSERT INTO users (username, email, hashed_password)
		 VALUES ($1, $2, $3)
		 RETURNING id, username, email, created_at`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, in.Username, in.Email, hashed))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return model.User{}, errs.NewError(errs.ErrUserAlreadyExists)
		}
		return model.User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// Authenticate returns the user when password matches. An unknown username and a wrong
// password both fail with ErrInvalidCredentials.
func (r *Repository) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	query := `SELECT id, username, email, created_at, hashed_password
		 FROM users
		 WHERE username = $1`

	var (
		u       model.User
		created sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Email, &created, &u.HashedPassword)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.NewError(errs.ErrInvalidCredentials)
		}
		return model.User{}, fmt.Errorf("db error: %w", err)
	}
	u.Timestamp = model.NewTimestamp(created.Time)

	ok, err := r.hasher.Verify(password, u.HashedPassword)
	if err != nil {
		return model.User{}, err
	}
	if !ok {
		return model.User{}, errs.NewError(errs.ErrInvalidCredentials)
	}

	u.HashedPassword = ""
	return u, nil
}

// List returns users ordered by username. A non-empty search keeps only usernames
// containing it, ignoring case.
func (r *Repository) List(ctx context.Context, search string) ([]model.User, error) {
	query := `SELECT id, username, email, created_at
		 FROM users
		 WHERE $1 = '' OR strpos(lower(username), lower($1)) > 0
		 ORDER BY username`

	rows, err := r.db.QueryContext(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

// Get returns a user with the recipes and remixes they created, newest first.
func (r *Repository) Get(ctx context.Context, username string) (model.UserDetails, error) {
	query := `SELECT id, username, email, created_at
		 FROM users
		 WHERE username = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserDetails{}, errs.NewError(errs.ErrUserNotFound, username)
		}
		return model.UserDetails{}, fmt.Errorf("db error: %w", err)
	}

	recipes, err := r.listRecipes(ctx,
		`SELECT r.id, r.name, r.description, r.image_url, r.created_at
		 FROM recipes r
		 WHERE r.user_id = $1
		 ORDER BY r.created_at DESC, r.id DESC`, u.ID)
	if err != nil {
		return model.UserDetails{}, err
	}

	remixes, err := r.listRemixes(ctx,
		`SELECT x.id, x.name, x.description, rec.name, x.image_url, x.created_at
		 FROM remixes x
		 JOIN recipes rec ON rec.id = x.recipe_id
		 WHERE x.user_id = $1
		 ORDER BY x.created_at DESC, x.id DESC`, u.ID)
	if err != nil {
		return model.UserDetails{}, err
	}

	return model.UserDetails{User: u, Recipes: recipes, Remixes: remixes}, nil
}

// Update applies a partial update to an account. A new password is hashed before it is stored.
func (r *Repository) Update(ctx context.Context, username string, p sqlpatch.Payload) (model.User, error) {
	p, err := model.UserFields.Validate(p)
	if err != nil {
		return model.User{}, err
	}

	if v, ok := p.Get("password"); ok {
		hashed, err := r.hasher.Hash(v.(string))
		if err != nil {
			return model.User{}, err
		}
		p.Set("password", hashed)
	}

	set, err := sqlpatch.BuildSetClause(p, model.UserFields.Translation())
	if err != nil {
		return model.User{}, err
	}

	query := fmt.Sprintf(`UPDATE users SET %s
		 WHERE username = $%d
		 RETURNING id, username, email, created_at`, set.Clause, set.Next())

	u, err := scanUser(r.db.QueryRowContext(ctx, query, append(set.Values, username)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.NewError(errs.ErrUserNotFound, username)
		}
		if db.IsUniqueViolation(err) {
			return model.User{}, errs.NewError(errs.ErrUserAlreadyExists)
		}
		return model.User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *Repository) listRecipes(ctx context.Context, query string, args ...any) ([]model.RecipeSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []model.RecipeSummary{}
	for rows.Next() {
		var (
			s       model.RecipeSummary
			created sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.ImageURL, &created); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		s.Timestamp = model.NewTimestamp(created.Time)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *Repository) listRemixes(ctx context.Context, query string, args ...any) ([]model.RemixSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []model.RemixSummary{}
	for rows.Next() {
		var (
			s       model.RemixSummary
			created sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.OriginalRecipe, &s.ImageURL, &created); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		s.Timestamp = model.NewTimestamp(created.Time)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
