package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"skillswap/internal/models"
	"skillswap/pkg/repository"
)

func (r *SQLiteRepo) CreateNotification(ctx context.Context, n *models.Notification) (int64, error) {
	if n == nil {
		return 0, fmt.Errorf("notification is nil")
	}
	if n.Type == "" {
		n.Type = models.NotificationSystem
	}
	res, err := r.conn.Exec(ctx, `INSERT INTO notifications (user_id, type, message, is_read, link, created) VALUES (?, ?, ?, ?, ?, ?)`,
		n.UserID, string(n.Type), n.Message, n.IsRead, n.Link, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetNotificationByID(ctx context.Context, id int64) (*models.Notification, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, type, message, is_read, link, created FROM notifications WHERE id = ?`, id)
	var n models.Notification
	var typ string
	if err := row.Scan(&n.ID, &n.UserID, &typ, &n.Message, &n.IsRead, &n.Link, &n.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	n.Type = models.NotificationType(typ)

	return &n, nil
}

func (r *SQLiteRepo) ListNotificationsByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, user_id, type, message, is_read, link, created FROM notifications WHERE user_id = ? ORDER BY created DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		var typ string
		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.Message, &n.IsRead, &n.Link, &n.Created); err != nil {
			return nil, err
		}
		n.Type = models.NotificationType(typ)

		out = append(out, n)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) MarkNotificationRead(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
