package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

const tabColumns = `id, name, order_id, created_at, updated_at`

// ListTabs returns every tab in creation order
func (s *Store) ListTabs(ctx context.Context) ([]domain.Tab, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+tabColumns+` FROM tabs ORDER BY id ASC`)
	if err != nil {
		s.log.WithError(err).Error("Failed to fetch tabs")
		return nil, fmt.Errorf("fetch tabs: %w", err)
	}
	defer rows.Close()

	var tabs []domain.Tab
	for rows.Next() {
		t, err := scanTab(rows)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, t)
	}
	return tabs, rows.Err()
}

// CreateTab inserts a tab with no order ID
func (s *Store) CreateTab(ctx context.Context, name string) (*domain.Tab, error) {
	now := s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tabs (name, created_at, updated_at) VALUES (?, ?, ?)`, name, now, now)
	if err != nil {
		s.log.WithError(err).WithField("name", name).Error("Failed to create tab")
		return nil, fmt.Errorf("create tab %s: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	t, err := scanTab(s.db.QueryRowContext(ctx, `SELECT `+tabColumns+` FROM tabs WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("read created tab: %w", err)
	}
	return &t, nil
}

// RenameTab sets a tab's name
func (s *Store) RenameTab(ctx context.Context, id int64, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tabs SET name = ?, updated_at = ? WHERE id = ?`, name, s.now(), id)
	if err != nil {
		s.log.WithError(err).WithField("tab_id", id).Error("Failed to update tab")
		return fmt.Errorf("update tab %d: %w", id, err)
	}
	return affected(res, "tab", id)
}

// DeleteTab removes a tab together with its notes
func (s *Store) DeleteTab(ctx context.Context, id int64) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE tab_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM tabs WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res, "tab", id)
	})
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		s.log.WithError(err).WithField("tab_id", id).Error("Failed to delete tab")
		return fmt.Errorf("delete tab %d: %w", id, err)
	}
	return err
}

// ReorderTabs stores each tab's index in ids as its order ID
func (s *Store) ReorderTabs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `UPDATE tabs SET order_id = ? WHERE id = ?`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, id := range ids {
			if _, err := stmt.ExecContext(ctx, int64(i), id); err != nil {
				return fmt.Errorf("reorder tab %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.WithError(err).WithField("count", len(ids)).Error("Failed to reorder tabs")
		return err
	}
	s.log.WithFields(logrus.Fields{"count": len(ids)}).Debug("Tabs reordered")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTab(r rowScanner) (domain.Tab, error) {
	var (
		t       domain.Tab
		order   sql.NullInt64
		created timestamp
		updated timestamp
	)
	if err := r.Scan(&t.ID, &t.Name, &order, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, ports.ErrNotFound
		}
		return t, err
	}
	t.OrderID = nullInt(order)
	t.CreatedAt = created.Time
	t.UpdatedAt = updated.Time
	return t, nil
}

// affected maps an update or delete that touched nothing to ErrNotFound
func affected(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ports.ErrNotFound)
	}
	return nil
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullable(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
