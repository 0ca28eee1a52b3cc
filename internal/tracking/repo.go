package tracking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// Repository persists persons and lab records in SQLite.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a repo over an injected database handle.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// CreatePerson inserts a new person and returns the assigned id. A duplicate
// email yields ErrDuplicateEmail; the store keeps the existing person.
func (r *Repository) CreatePerson(ctx context.Context, name, email, phone, department string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO persons (name, email, phone, department)
		VALUES (?, ?, ?, ?)
	`, name, email, phone, department)
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert person: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("person id: %w", err)
	}
	return id, nil
}

// GetPerson returns the person with the given id, or nil when absent.
func (r *Repository) GetPerson(ctx context.Context, id int64) (*Person, error) {
	var p Person
	err := r.db.GetContext(ctx, &p, `
		SELECT id, name, email, phone, department, registration_date
		FROM persons WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	return &p, nil
}

// OpenRecord returns the id of the person's open visit, or false when the
// person is currently out. At most one open record exists per person.
func (r *Repository) OpenRecord(ctx context.Context, personID int64) (int64, bool, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `
		SELECT id FROM lab_records
		WHERE person_id = ? AND exit_time IS NULL
	`, personID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("open record: %w", err)
	}
	return id, true, nil
}

// ToggleVisit flips the person's state at the given timestamp: it closes the
// open visit when one exists, otherwise it opens a new one in labName. The
// read and the write run in a single transaction so concurrent scans for the
// same person serialize instead of both opening a visit.
func (r *Repository) ToggleVisit(ctx context.Context, personID int64, labName, now string) (string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin toggle: %w", err)
	}
	defer tx.Rollback()

	var openID int64
	err = tx.GetContext(ctx, &openID, `
		SELECT id FROM lab_records
		WHERE person_id = ? AND exit_time IS NULL
	`, personID)

	action := ActionExit
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx, `
			UPDATE lab_records SET exit_time = ? WHERE id = ?
		`, now, openID); err != nil {
			return "", fmt.Errorf("close visit: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		action = ActionEntry
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO lab_records (person_id, lab_name, entry_time)
			VALUES (?, ?, ?)
		`, personID, labName, now); err != nil {
			return "", fmt.Errorf("open visit: %w", err)
		}
	default:
		return "", fmt.Errorf("open record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit toggle: %w", err)
	}
	return action, nil
}

// ListRecords returns the full visit history, most recent entry first.
func (r *Repository) ListRecords(ctx context.Context) ([]Record, error) {
	records := []Record{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT lr.id, p.name, p.email, lr.lab_name, lr.entry_time, lr.exit_time
		FROM lab_records lr
		JOIN persons p ON lr.person_id = p.id
		ORDER BY lr.entry_time DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// CurrentOccupants returns everyone with an open visit, most recent first.
func (r *Repository) CurrentOccupants(ctx context.Context) ([]Occupant, error) {
	occupants := []Occupant{}
	err := r.db.SelectContext(ctx, &occupants, `
		SELECT lr.lab_name, p.name, p.email, lr.entry_time
		FROM lab_records lr
		JOIN persons p ON lr.person_id = p.id
		WHERE lr.exit_time IS NULL
		ORDER BY lr.entry_time DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("current occupants: %w", err)
	}
	return occupants, nil
}

// LastExits returns each person's most recent closed visit, newest first.
// lab_name rides along as a bare column under MAX(), which SQLite resolves
// from the row holding the maximum.
func (r *Repository) LastExits(ctx context.Context) ([]LastExit, error) {
	exits := []LastExit{}
	err := r.db.SelectContext(ctx, &exits, `
		SELECT lr.lab_name, p.name, MAX(lr.exit_time) AS last_exit
		FROM lab_records lr
		JOIN persons p ON lr.person_id = p.id
		WHERE lr.exit_time IS NOT NULL
		GROUP BY p.id
		ORDER BY last_exit DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("last exits: %w", err)
	}
	return exits, nil
}

// DeleteRecord removes a single visit. The owning person is untouched.
func (r *Repository) DeleteRecord(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lab_records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// DeleteAllRecords wipes the visit history. Persons are untouched.
func (r *Repository) DeleteAllRecords(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lab_records`); err != nil {
		return fmt.Errorf("delete all records: %w", err)
	}
	return nil
}

// ExportRows returns the full history with person details and a computed
// status column, feed for the records export.
func (r *Repository) ExportRows(ctx context.Context) ([]ExportRow, error) {
	rows := []ExportRow{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			p.id AS person_id,
			p.name,
			p.email,
			p.phone,
			p.department,
			lr.lab_name,
			lr.entry_time,
			lr.exit_time,
			CASE WHEN lr.exit_time IS NULL THEN 'IN LAB' ELSE 'LEFT LAB' END AS status
		FROM lab_records lr
		JOIN persons p ON lr.person_id = p.id
		ORDER BY lr.entry_time DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("export rows: %w", err)
	}
	return rows, nil
}

// StatusRows returns the open visits with person details, feed for the
// current-status export.
func (r *Repository) StatusRows(ctx context.Context) ([]StatusRow, error) {
	rows := []StatusRow{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT p.name, p.email, p.department, p.phone, lr.lab_name, lr.entry_time
		FROM lab_records lr
		JOIN persons p ON lr.person_id = p.id
		WHERE lr.exit_time IS NULL
		ORDER BY lr.entry_time DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("status rows: %w", err)
	}
	return rows, nil
}
