package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"skillswap/internal/models"
	"skillswap/pkg/repository"
)

const projectColumns = `id, client_id, freelancer_id, title, description, requirements, deadline, status, progress, reminder_sent, is_hourly, hour_logs, milestones, created, updated`

func (r *SQLiteRepo) CreateProject(ctx context.Context, p *models.Project) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("project is nil")
	}
	if p.Status == "" {
		p.Status = models.ProjectOpen
	}
	hourLogs, milestones, err := marshalProjectExtras(p)
	if err != nil {
		return 0, err
	}
	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO projects (client_id, freelancer_id, title, description, requirements, deadline, status, progress, reminder_sent, is_hourly, hour_logs, milestones, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ClientID, p.FreelancerID, p.Title, p.Description, p.Requirements, p.Deadline, string(p.Status), p.Progress, p.ReminderSent, p.IsHourly, hourLogs, milestones, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetProjectByID(ctx context.Context, id int64) (*models.Project, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProjectRow(row.Scan)
}

func scanProjectRow(scan func(dest ...any) error) (*models.Project, error) {
	var p models.Project
	var freelancerID sql.NullInt64
	var status, hourLogs, milestones string
	err := scan(&p.ID, &p.ClientID, &freelancerID, &p.Title, &p.Description, &p.Requirements, &p.Deadline, &status, &p.Progress, &p.ReminderSent, &p.IsHourly, &hourLogs, &milestones, &p.Created, &p.Updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	p.Status = models.ProjectStatus(status)
	if freelancerID.Valid {
		p.FreelancerID = &freelancerID.Int64
	}
	if err := json.Unmarshal([]byte(hourLogs), &p.HourLogs); err != nil {
		return nil, fmt.Errorf("decode hour logs: %w", err)
	}
	if err := json.Unmarshal([]byte(milestones), &p.Milestones); err != nil {
		return nil, fmt.Errorf("decode milestones: %w", err)
	}

	return &p, nil
}

func (r *SQLiteRepo) listProjects(ctx context.Context, q string, args ...any) ([]models.Project, error) {
	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		p, err := scanProjectRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) ListProjects(ctx context.Context) ([]models.Project, error) {
	return r.listProjects(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created DESC`)
}

func (r *SQLiteRepo) ListProjectsByClient(ctx context.Context, clientID int64) ([]models.Project, error) {
	return r.listProjects(ctx, `SELECT `+projectColumns+` FROM projects WHERE client_id = ? ORDER BY created DESC`, clientID)
}

func (r *SQLiteRepo) ListProjectsByFreelancer(ctx context.Context, freelancerID int64) ([]models.Project, error) {
	return r.listProjects(ctx, `SELECT `+projectColumns+` FROM projects WHERE freelancer_id = ? ORDER BY created DESC`, freelancerID)
}

func (r *SQLiteRepo) UpdateProject(ctx context.Context, p *models.Project) error {
	if p == nil {
		return fmt.Errorf("project is nil")
	}
	hourLogs, milestones, err := marshalProjectExtras(p)
	if err != nil {
		return err
	}
	res, err := r.conn.Exec(ctx, `UPDATE projects SET freelancer_id = ?, title = ?, description = ?, requirements = ?, deadline = ?, status = ?, progress = ?, reminder_sent = ?, is_hourly = ?, hour_logs = ?, milestones = ?, updated = ? WHERE id = ?`,
		p.FreelancerID, p.Title, p.Description, p.Requirements, p.Deadline, string(p.Status), p.Progress, p.ReminderSent, p.IsHourly, hourLogs, milestones, now(), p.ID)
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

func (r *SQLiteRepo) DeleteProject(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM projects WHERE id = ?`, id)
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

func (r *SQLiteRepo) CountProjects(ctx context.Context) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM projects`)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) DueForReminder(ctx context.Context, start, end int64) ([]models.Project, error) {
	return r.listProjects(ctx, `SELECT `+projectColumns+` FROM projects WHERE deadline >= ? AND deadline < ? AND reminder_sent = 0 ORDER BY deadline ASC`, start, end)
}

func (r *SQLiteRepo) MarkReminderSent(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE projects SET reminder_sent = 1, updated = ? WHERE id = ?`, now(), id)
	return err
}

func marshalProjectExtras(p *models.Project) (string, string, error) {
	hourLogs := p.HourLogs
	if hourLogs == nil {
		hourLogs = []models.HourLog{}
	}
	hb, err := json.Marshal(hourLogs)
	if err != nil {
		return "", "", fmt.Errorf("encode hour logs: %w", err)
	}
	milestones := p.Milestones
	if milestones == nil {
		milestones = []models.Milestone{}
	}
	mb, err := json.Marshal(milestones)
	if err != nil {
		return "", "", fmt.Errorf("encode milestones: %w", err)
	}
	return string(hb), string(mb), nil
}
