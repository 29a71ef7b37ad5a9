package repository

import (
	"database/sql"
	"fmt"

	"github.com/groupsense/affinity-backend-go/internal/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, email, first_name, last_name, gender, imei, bt_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Gender,
		user.IMEI,
		user.BTName,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = id
	return nil
}

// GetByID retrieves a user by id. Returns nil without error when absent.
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	return r.getOne("id = ?", id)
}

// GetByUsername retrieves a user by username. Returns nil without error
// when absent.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	return r.getOne("username = ?", username)
}

func (r *UserRepository) getOne(where string, arg interface{}) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, email, first_name, last_name,
		       gender, imei, bt_name, created_at
		FROM users
		WHERE ` + where

	user := &models.User{}
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Gender,
		&user.IMEI,
		&user.BTName,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// List retrieves all users ordered by id
func (r *UserRepository) List() ([]*models.User, error) {
	query := `
		SELECT id, username, password_hash, email, first_name, last_name,
		       gender, imei, bt_name, created_at
		FROM users
		ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.Gender,
			&user.IMEI,
			&user.BTName,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, nil
}
