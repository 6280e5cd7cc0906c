package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"skillswap/internal/models"
	"skillswap/pkg/repository"
)

func (r *SQLiteRepo) CreateMessage(ctx context.Context, m *models.Message) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("message is nil")
	}
	res, err := r.conn.Exec(ctx, `INSERT INTO messages (sender_id, receiver_id, content, read_status, metadata, created) VALUES (?, ?, ?, ?, ?, ?)`,
		m.SenderID, m.ReceiverID, m.Content, m.ReadStatus, m.Metadata, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetMessageByID(ctx context.Context, id int64) (*models.Message, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, sender_id, receiver_id, content, read_status, metadata, created FROM messages WHERE id = ?`, id)
	var m models.Message
	if err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.ReadStatus, &m.Metadata, &m.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &m, nil
}

func (r *SQLiteRepo) listMessages(ctx context.Context, q string, args ...any) ([]models.Message, error) {
	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.ReadStatus, &m.Metadata, &m.Created); err != nil {
			return nil, err
		}

		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) ListConversation(ctx context.Context, userA, userB int64) ([]models.Message, error) {
	return r.listMessages(ctx, `SELECT id, sender_id, receiver_id, content, read_status, metadata, created FROM messages WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?) ORDER BY created ASC`,
		userA, userB, userB, userA)
}

func (r *SQLiteRepo) ListMessagesByUser(ctx context.Context, userID int64) ([]models.Message, error) {
	return r.listMessages(ctx, `SELECT id, sender_id, receiver_id, content, read_status, metadata, created FROM messages WHERE sender_id = ? OR receiver_id = ? ORDER BY created DESC`,
		userID, userID)
}

func (r *SQLiteRepo) MarkMessageRead(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `UPDATE messages SET read_status = 1 WHERE id = ?`, id)
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
