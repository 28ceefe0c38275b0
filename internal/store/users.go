package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// User is a persisted user record.
type User struct {
	ID           string
	Email        string
	Username     string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}

// Users provides access to the users table.
type Users struct {
	db *sql.DB
}

// NewUsers creates a user store backed by the given database.
func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

// CreateUserParams are the fields required to create a user.
type CreateUserParams struct {
	ID           string
	Email        string
	Username     string
	FullName     string
	PasswordHash string
}

const createUser = `
INSERT INTO users (id, email, username, full_name, password_hash)
VALUES (?, ?, ?, ?, ?)
RETURNING id, email, username, full_name, password_hash, created_at
`

// CreateUser inserts a new user and returns the stored record.
func (s *Users) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := s.db.QueryRowContext(ctx, createUser,
		arg.ID, arg.Email, arg.Username, arg.FullName, arg.PasswordHash)
	return scanUser(row)
}

const getUserByID = `
SELECT id, email, username, full_name, password_hash, created_at
FROM users WHERE id = ?
`

// GetUserByID returns the user with the given id. sql.ErrNoRows if absent.
func (s *Users) GetUserByID(ctx context.Context, id string) (User, error) {
	return scanUser(s.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByEmail = `
SELECT id, email, username, full_name, password_hash, created_at
FROM users WHERE email = ?
`

// GetUserByEmail returns the user with the given email. sql.ErrNoRows if absent.
func (s *Users) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(s.db.QueryRowContext(ctx, getUserByEmail, email))
}

const getUserByUsername = `
SELECT id, email, username, full_name, password_hash, created_at
FROM users WHERE username = ?
`

// GetUserByUsername returns the user with the given username. sql.ErrNoRows
// if absent.
func (s *Users) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return scanUser(s.db.QueryRowContext(ctx, getUserByUsername, username))
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return User{}, err
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}
