package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"skillswap/internal/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}
	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO users (name, email, role, is_verified, password_hash, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, string(u.Role), u.IsVerified, u.PasswordHash, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, role, is_verified, password_hash, created, updated FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, role, is_verified, password_hash, created, updated FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.IsVerified, &u.PasswordHash, &u.Created, &u.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	u.Role = models.Role(role)

	return &u, nil
}

func (r *SQLiteRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, email, role, is_verified, password_hash, created, updated FROM users ORDER BY created ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role, &u.IsVerified, &u.PasswordHash, &u.Created, &u.Updated); err != nil {
			return nil, err
		}
		u.Role = models.Role(role)

		out = append(out, u)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountUsersByRole(ctx context.Context, role models.Role) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = ?`, string(role))
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}
