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

const noteColumns = `id, title, content, tab_id, parent_id, order_id, note_type, created_at, updated_at`

// ListNotes returns the notes of a tab ordered by order ID. Tab 0 selects
// notes that belong to no tab.
func (s *Store) ListNotes(ctx context.Context, tabID int64) ([]domain.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+noteColumns+` FROM notes
		WHERE tab_id IS ?
		ORDER BY order_id ASC, id ASC
	`, tabRef(tabID))
	if err != nil {
		s.log.WithError(err).WithField("tab_id", tabID).Error("Failed to fetch notes")
		return nil, fmt.Errorf("fetch notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// CreateNote inserts a note after the last of its siblings
func (s *Store) CreateNote(ctx context.Context, nn domain.NewNote) (*domain.Note, error) {
	typ := nn.Type
	if typ == "" {
		typ = domain.NoteTypeBasic
	}

	var created domain.Note
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var maxOrder sql.NullInt64
		err := tx.QueryRowContext(ctx, `
			SELECT MAX(order_id) FROM notes WHERE tab_id IS ? AND parent_id IS ?
		`, nullable(nn.TabID), nullable(nn.ParentID)).Scan(&maxOrder)
		if err != nil {
			return err
		}

		now := s.now()
		res, err := tx.ExecContext(ctx, `
			INSERT INTO notes (title, content, tab_id, parent_id, order_id, note_type, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, nn.Title, nn.Content, nullable(nn.TabID), nullable(nn.ParentID), maxOrder.Int64+1, string(typ), now, now)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		created, err = scanNote(tx.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id))
		return err
	})
	if err != nil {
		s.log.WithError(err).WithField("title", nn.Title).Error("Failed to create note")
		return nil, fmt.Errorf("create note %s: %w", nn.Title, err)
	}
	return &created, nil
}

// UpdateNote replaces a note's title and content
func (s *Store) UpdateNote(ctx context.Context, id int64, title, content string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		title, content, s.now(), id)
	if err != nil {
		s.log.WithError(err).WithField("note_id", id).Error("Failed to update note")
		return fmt.Errorf("update note %d: %w", id, err)
	}
	return affected(res, "note", id)
}

// DeleteNote removes a note together with its children
func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE parent_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res, "note", id)
	})
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		s.log.WithError(err).WithField("note_id", id).Error("Failed to delete note")
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	return err
}

// ReorderNotes stores index+1 as each note's order ID in one transaction.
// With a non-zero tabID notes of other tabs are left untouched.
func (s *Store) ReorderNotes(ctx context.Context, tabID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := `UPDATE notes SET order_id = ? WHERE id = ?`
	if tabID != 0 {
		query += ` AND tab_id = ?`
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, id := range ids {
			args := []any{int64(i + 1), id}
			if tabID != 0 {
				args = append(args, tabID)
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("reorder note %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.WithError(err).WithField("tab_id", tabID).Error("Failed to reorder notes")
		return err
	}
	s.log.WithFields(logrus.Fields{"tab_id": tabID, "count": len(ids)}).Debug("Notes reordered")
	return nil
}

func scanNote(r rowScanner) (domain.Note, error) {
	var (
		n       domain.Note
		content sql.NullString
		tabID   sql.NullInt64
		parent  sql.NullInt64
		order   sql.NullInt64
		typ     sql.NullString
		created timestamp
		updated timestamp
	)
	err := r.Scan(&n.ID, &n.Title, &content, &tabID, &parent, &order, &typ, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return n, ports.ErrNotFound
		}
		return n, err
	}
	n.Content = content.String
	n.TabID = nullInt(tabID)
	n.ParentID = nullInt(parent)
	n.OrderID = nullInt(order)
	n.Type = domain.NoteTypeOf(typ.String)
	n.CreatedAt = created.Time
	n.UpdatedAt = updated.Time
	return n, nil
}

func tabRef(tabID int64) sql.NullInt64 {
	if tabID == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: tabID, Valid: true}
}
