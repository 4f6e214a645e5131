package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/msomdec/lamenar/internal/domain"
)

const usersTable = "users"

type userRow struct {
	ID                 string         `db:"id"`
	Email              string         `db:"email"`
	PasswordHash       string         `db:"password_hash"`
	Name               string         `db:"name"`
	CompanyDomain      string         `db:"company_domain"`
	CompanyDisplayName string         `db:"company_display_name"`
	Department         sql.NullString `db:"department"`
	Role               string         `db:"role"`
	WasReferred        string         `db:"was_referred"`
	ReferrerName       sql.NullString `db:"referrer_name"`
	ReferrerEmail      sql.NullString `db:"referrer_email"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func (r *userRow) fromDomain(u *domain.User) {
	*r = userRow{
		ID:                 u.ID.String(),
		Email:              u.Email,
		PasswordHash:       u.PasswordHash,
		Name:               u.Name,
		CompanyDomain:      u.CompanyDomain,
		CompanyDisplayName: u.CompanyDisplayName,
		Department:         nullString(u.Department),
		Role:               u.Role,
		WasReferred:        u.WasReferred,
		ReferrerName:       nullString(u.ReferrerName),
		ReferrerEmail:      nullString(u.ReferrerEmail),
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (r *userRow) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", r.ID, err)
	}

	return &domain.User{
		ID:                 id,
		Email:              r.Email,
		PasswordHash:       r.PasswordHash,
		Name:               r.Name,
		CompanyDomain:      r.CompanyDomain,
		CompanyDisplayName: r.CompanyDisplayName,
		Department:         r.Department.String,
		Role:               r.Role,
		WasReferred:        r.WasReferred,
		ReferrerName:       r.ReferrerName.String,
		ReferrerEmail:      r.ReferrerEmail.String,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	builder *goqu.Database
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{builder: db.builder}
}

// Create inserts user, assigning its ID and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	var row userRow
	row.fromDomain(user)

	_, err := r.builder.Insert(usersTable).
		Prepared(true).
		Rows(row).
		Executor().ExecContext(ctx)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getBy(ctx, goqu.C("id").Eq(id.String()))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, goqu.C("email").Eq(email))
}

func (r *UserRepository) getBy(ctx context.Context, where goqu.Expression) (*domain.User, error) {
	var row userRow
	found, err := r.builder.From(usersTable).
		Prepared(true).
		Where(where).
		ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	if !found {
		return nil, domain.ErrNotFound
	}

	return row.toDomain()
}

// isUniqueConstraintError checks if the error is a SQLite unique or primary key violation.
func isUniqueConstraintError(err error) bool {
	var sqliteErr *sqlitedrv.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	default:
		return false
	}
}
