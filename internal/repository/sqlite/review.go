package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"skillswap/internal/models"
)

func (r *SQLiteRepo) CreateReview(ctx context.Context, rv *models.Review) (int64, error) {
	if rv == nil {
		return 0, fmt.Errorf("review is nil")
	}
	res, err := r.conn.Exec(ctx, `INSERT INTO reviews (project_id, client_id, freelancer_id, rating, comment, response, created) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rv.ProjectID, rv.ClientID, rv.FreelancerID, rv.Rating, rv.Comment, rv.Response, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetReviewByProjectAndClient(ctx context.Context, projectID, clientID int64) (*models.Review, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, project_id, client_id, freelancer_id, rating, comment, response, created FROM reviews WHERE project_id = ? AND client_id = ?`, projectID, clientID)
	var rv models.Review
	if err := row.Scan(&rv.ID, &rv.ProjectID, &rv.ClientID, &rv.FreelancerID, &rv.Rating, &rv.Comment, &rv.Response, &rv.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &rv, nil
}

func (r *SQLiteRepo) ListReviewsByFreelancer(ctx context.Context, freelancerID int64) ([]models.Review, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, project_id, client_id, freelancer_id, rating, comment, response, created FROM reviews WHERE freelancer_id = ? ORDER BY created DESC`, freelancerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.ProjectID, &rv.ClientID, &rv.FreelancerID, &rv.Rating, &rv.Comment, &rv.Response, &rv.Created); err != nil {
			return nil, err
		}

		out = append(out, rv)
	}

	return out, rows.Err()
}
