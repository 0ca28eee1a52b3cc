package tracking

import "time"

// TimeLayout is the fixed timestamp format used in the database and on the
// wire. Lexicographic order on this layout equals chronological order, which
// the reporting queries rely on.
const TimeLayout = "2006-01-02 15:04:05"

// Scan actions.
const (
	ActionEntry = "entry"
	ActionExit  = "exit"
)

// Person is a registered lab member.
type Person struct {
	ID               int64   `db:"id" json:"id"`
	Name             string  `db:"name" json:"name"`
	Email            string  `db:"email" json:"email"`
	Phone            *string `db:"phone" json:"phone"`
	Department       *string `db:"department" json:"department"`
	RegistrationDate string  `db:"registration_date" json:"registration_date"`
}

// Record is one lab visit joined with the owning person's identity.
// A nil ExitTime means the visit is still open.
type Record struct {
	ID        int64   `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Email     string  `db:"email" json:"email"`
	LabName   string  `db:"lab_name" json:"lab_name"`
	EntryTime string  `db:"entry_time" json:"entry_time"`
	ExitTime  *string `db:"exit_time" json:"exit_time"`
}

// Occupant is a person currently inside a lab.
type Occupant struct {
	LabName   string `db:"lab_name" json:"lab_name"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	EntryTime string `db:"entry_time" json:"entry_time"`
}

// LastExit is the most recent closed visit per person.
type LastExit struct {
	LabName  string `db:"lab_name" json:"lab_name"`
	Name     string `db:"name" json:"name"`
	LastExit string `db:"last_exit" json:"last_exit"`
}

// ExportRow is one line of the full-history export, status precomputed.
type ExportRow struct {
	PersonID   int64   `db:"person_id"`
	Name       string  `db:"name"`
	Email      string  `db:"email"`
	Phone      *string `db:"phone"`
	Department *string `db:"department"`
	LabName    string  `db:"lab_name"`
	EntryTime  string  `db:"entry_time"`
	ExitTime   *string `db:"exit_time"`
	Status     string  `db:"status"`
}

// StatusRow is one line of the current-status export.
type StatusRow struct {
	Name       string  `db:"name"`
	Email      string  `db:"email"`
	Department *string `db:"department"`
	Phone      *string `db:"phone"`
	LabName    string  `db:"lab_name"`
	EntryTime  string  `db:"entry_time"`
}

// Now formats the current wall-clock time in the storage layout.
func Now() string {
	return time.Now().Format(TimeLayout)
}
