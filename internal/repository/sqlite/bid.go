package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"skillswap/internal/models"
	"skillswap/pkg/repository"
)

const bidColumns = `id, project_id, freelancer_id, amount, message, status, counter_amount, countered, created, updated`

func (r *SQLiteRepo) CreateBid(ctx context.Context, b *models.Bid) (int64, error) {
	if b == nil {
		return 0, fmt.Errorf("bid is nil")
	}
	if b.Status == "" {
		b.Status = models.BidPending
	}
	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO bids (project_id, freelancer_id, amount, message, status, counter_amount, countered, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ProjectID, b.FreelancerID, b.Amount, b.Message, string(b.Status), b.CounterAmount, b.Countered, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetBidByID(ctx context.Context, id int64) (*models.Bid, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+bidColumns+` FROM bids WHERE id = ?`, id)
	return scanBidRow(row.Scan)
}

func scanBidRow(scan func(dest ...any) error) (*models.Bid, error) {
	var b models.Bid
	var status string
	var counter sql.NullFloat64
	err := scan(&b.ID, &b.ProjectID, &b.FreelancerID, &b.Amount, &b.Message, &status, &counter, &b.Countered, &b.Created, &b.Updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	b.Status = models.BidStatus(status)
	if counter.Valid {
		b.CounterAmount = &counter.Float64
	}

	return &b, nil
}

func (r *SQLiteRepo) listBids(ctx context.Context, q string, args ...any) ([]models.Bid, error) {
	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Bid
	for rows.Next() {
		b, err := scanBidRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) ListBidsByProject(ctx context.Context, projectID int64) ([]models.Bid, error) {
	return r.listBids(ctx, `SELECT `+bidColumns+` FROM bids WHERE project_id = ? ORDER BY created ASC`, projectID)
}

func (r *SQLiteRepo) ListBidsByFreelancer(ctx context.Context, freelancerID int64) ([]models.Bid, error) {
	return r.listBids(ctx, `SELECT `+bidColumns+` FROM bids WHERE freelancer_id = ? ORDER BY created DESC`, freelancerID)
}

func (r *SQLiteRepo) ListBids(ctx context.Context) ([]models.Bid, error) {
	return r.listBids(ctx, `SELECT `+bidColumns+` FROM bids ORDER BY created ASC`)
}

func (r *SQLiteRepo) UpdateBid(ctx context.Context, b *models.Bid) error {
	if b == nil {
		return fmt.Errorf("bid is nil")
	}
	res, err := r.conn.Exec(ctx, `UPDATE bids SET amount = ?, message = ?, status = ?, counter_amount = ?, countered = ?, updated = ? WHERE id = ?`,
		b.Amount, b.Message, string(b.Status), b.CounterAmount, b.Countered, now(), b.ID)
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

func (r *SQLiteRepo) CountBids(ctx context.Context) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM bids`)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

// AcceptBid binds one bid and one freelancer to a project and rejects every
// sibling bid, all inside a single transaction. The project update is
// conditional on status = open so two racing accepts cannot both win: the
// loser observes the settled row. A retry that names the already accepted
// bid and freelancer returns the settled state unchanged; anything else
// gets ErrConflict.
func (r *SQLiteRepo) AcceptBid(ctx context.Context, projectID, bidID, freelancerID int64) (*models.Project, *models.Bid, error) {
	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin accept-bid tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, projectID)
	project, err := scanProjectRow(row.Scan)
	if err != nil {
		return nil, nil, fmt.Errorf("load project: %w", err)
	}
	if project == nil {
		return nil, nil, repository.ErrNotFound
	}

	if project.Status != models.ProjectOpen {
		// Already settled. Identical retries are a no-op; everything else
		// lost the race.
		brow := tx.QueryRowContext(ctx, `SELECT `+bidColumns+` FROM bids WHERE id = ?`, bidID)
		bid, err := scanBidRow(brow.Scan)
		if err != nil {
			return nil, nil, err
		}
		settled := project.Status == models.ProjectInProgress &&
			project.FreelancerID != nil && *project.FreelancerID == freelancerID &&
			bid != nil && bid.Status == models.BidAccepted
		if settled {
			return project, bid, nil
		}
		return nil, nil, repository.ErrConflict
	}

	ts := now()
	res, err := tx.ExecContext(ctx, `UPDATE projects SET freelancer_id = ?, status = ?, updated = ? WHERE id = ? AND status = ?`,
		freelancerID, string(models.ProjectInProgress), ts, projectID, string(models.ProjectOpen))
	if err != nil {
		return nil, nil, fmt.Errorf("assign project: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, nil, err
	} else if n == 0 {
		return nil, nil, repository.ErrConflict
	}

	res, err = tx.ExecContext(ctx, `UPDATE bids SET status = ?, updated = ? WHERE id = ?`,
		string(models.BidAccepted), ts, bidID)
	if err != nil {
		return nil, nil, fmt.Errorf("accept bid: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, nil, err
	} else if n == 0 {
		return nil, nil, repository.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `UPDATE bids SET status = ?, updated = ? WHERE project_id = ? AND id != ?`,
		string(models.BidRejected), ts, projectID, bidID); err != nil {
		return nil, nil, fmt.Errorf("reject sibling bids: %w", err)
	}

	row = tx.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, projectID)
	project, err = scanProjectRow(row.Scan)
	if err != nil {
		return nil, nil, err
	}
	brow := tx.QueryRowContext(ctx, `SELECT `+bidColumns+` FROM bids WHERE id = ?`, bidID)
	bid, err := scanBidRow(brow.Scan)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit accept-bid tx: %w", err)
	}

	return project, bid, nil
}
