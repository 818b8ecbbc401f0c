package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workorder-service/internal/domain"
)

// DirectoryRepository supplies users, departments and their processors.
// It backs the identity collaborator and the department directory; it is
// not part of any transition's unit of work.
type DirectoryRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByRealName(ctx context.Context, realName string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	ListDepartments(ctx context.Context) ([]string, error)
	// ListProcessors returns the active non-user members of a department.
	ListProcessors(ctx context.Context, department string) ([]domain.User, error)
}

type directoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository instantiates the repository.
func NewDirectoryRepository(pool *pgxpool.Pool) DirectoryRepository {
	return &directoryRepository{pool: pool}
}

const userColumns = `id, username, real_name, password_hash, role, department, active`

func (r *directoryRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username=$1`
	return r.fetchSingle(ctx, query, username)
}

func (r *directoryRepository) GetByRealName(ctx context.Context, realName string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE real_name=$1`
	return r.fetchSingle(ctx, query, realName)
}

func (r *directoryRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.RealName,
		&user.PasswordHash,
		&user.Role,
		&user.Department,
		&user.Active,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *directoryRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, real_name, password_hash, role, department, active)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		user.Username,
		user.RealName,
		user.PasswordHash,
		user.Role,
		user.Department,
		user.Active,
	).Scan(&user.ID)
}

func (r *directoryRepository) ListDepartments(ctx context.Context) ([]string, error) {
	const query = `SELECT name FROM departments ORDER BY sort_order ASC, name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result = append(result, name)
	}
	return result, rows.Err()
}

func (r *directoryRepository) ListProcessors(ctx context.Context, department string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
        WHERE department=$1 AND active AND role<>$2
        ORDER BY real_name ASC`
	rows, err := r.pool.Query(ctx, query, department, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.RealName,
			&user.PasswordHash,
			&user.Role,
			&user.Department,
			&user.Active,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
