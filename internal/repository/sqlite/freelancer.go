package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"skillswap/internal/models"
	"skillswap/pkg/repository"
)

const profileColumns = `id, user_id, skills, expertise, experience, portfolio, verified, verification_level, average_rating, review_count, updated`

func (r *SQLiteRepo) CreateProfile(ctx context.Context, p *models.FreelancerProfile) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("profile is nil")
	}
	skills, err := marshalSkills(p.Skills)
	if err != nil {
		return 0, err
	}
	level := p.VerificationLevel
	if level == "" {
		level = "Basic"
	}
	res, err := r.conn.Exec(ctx, `INSERT INTO freelancer_profiles (user_id, skills, expertise, experience, portfolio, verified, verification_level, average_rating, review_count, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, skills, p.Expertise, p.Experience, p.Portfolio, p.Verified, level, p.AverageRating, p.ReviewCount, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetProfileByID(ctx context.Context, id int64) (*models.FreelancerProfile, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM freelancer_profiles WHERE id = ?`, id)
	return scanProfileRow(row.Scan)
}

func (r *SQLiteRepo) GetProfileByUserID(ctx context.Context, userID int64) (*models.FreelancerProfile, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM freelancer_profiles WHERE user_id = ?`, userID)
	return scanProfileRow(row.Scan)
}

func scanProfileRow(scan func(dest ...any) error) (*models.FreelancerProfile, error) {
	var p models.FreelancerProfile
	var skills string
	err := scan(&p.ID, &p.UserID, &skills, &p.Expertise, &p.Experience, &p.Portfolio, &p.Verified, &p.VerificationLevel, &p.AverageRating, &p.ReviewCount, &p.Updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	if err := json.Unmarshal([]byte(skills), &p.Skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}

	return &p, nil
}

func (r *SQLiteRepo) ListProfiles(ctx context.Context, onlyUnverified bool) ([]models.FreelancerProfile, error) {
	q := `SELECT ` + profileColumns + ` FROM freelancer_profiles ORDER BY id ASC`
	if onlyUnverified {
		q = `SELECT ` + profileColumns + ` FROM freelancer_profiles WHERE verified = 0 ORDER BY id ASC`
	}
	rows, err := r.conn.QueryRows(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.FreelancerProfile
	for rows.Next() {
		p, err := scanProfileRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateProfile(ctx context.Context, p *models.FreelancerProfile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}
	skills, err := marshalSkills(p.Skills)
	if err != nil {
		return err
	}
	_, err = r.conn.Exec(ctx, `UPDATE freelancer_profiles SET skills = ?, expertise = ?, experience = ?, portfolio = ?, updated = ? WHERE id = ?`,
		skills, p.Expertise, p.Experience, p.Portfolio, now(), p.ID)
	return err
}

func (r *SQLiteRepo) DeleteProfile(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM freelancer_profiles WHERE id = ?`, id)
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

func (r *SQLiteRepo) SetVerification(ctx context.Context, id int64, verified bool, level string) error {
	var res sql.Result
	var err error
	if level != "" {
		res, err = r.conn.Exec(ctx, `UPDATE freelancer_profiles SET verified = ?, verification_level = ?, updated = ? WHERE id = ?`, verified, level, now(), id)
	} else {
		res, err = r.conn.Exec(ctx, `UPDATE freelancer_profiles SET verified = ?, updated = ? WHERE id = ?`, verified, now(), id)
	}
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

func (r *SQLiteRepo) UpdateRating(ctx context.Context, id int64, average float64, count int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE freelancer_profiles SET average_rating = ?, review_count = ?, updated = ? WHERE id = ?`, average, count, now(), id)
	return err
}

func marshalSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return "", fmt.Errorf("encode skills: %w", err)
	}
	return string(b), nil
}
