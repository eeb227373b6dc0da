package domain

// Column represents the workflow state of a task.
type Column string

const (
	ColumnTodo       Column = "todo"        // Not started
	ColumnInProgress Column = "in-progress" // Being worked on
	ColumnDone       Column = "done"        // Finished
)

// AllColumns returns the board columns in display order.
func AllColumns() []Column {
	return []Column{ColumnTodo, ColumnInProgress, ColumnDone}
}

// IsValidColumn returns true if c is one of the three board columns.
func IsValidColumn(c Column) bool {
	switch c {
	case ColumnTodo, ColumnInProgress, ColumnDone:
		return true
	default:
		return false
	}
}

// IsValid returns true if the column is a known value.
func (c Column) IsValid() bool {
	return IsValidColumn(c)
}

// CanTransitionTo returns true if a task in c may move to target.
// Every column reaches every other one; moving to the same column is a no-op.
func (c Column) CanTransitionTo(target Column) bool {
	return c.IsValid() && target.IsValid()
}

// Index returns the display position of the column, or -1 if unknown.
func (c Column) Index() int {
	for i, col := range AllColumns() {
		if col == c {
			return i
		}
	}
	return -1
}

// Display returns a human-readable representation of the column.
func (c Column) Display() string {
	switch c {
	case ColumnTodo:
		return "To Do"
	case ColumnInProgress:
		return "In Progress"
	case ColumnDone:
		return "Done"
	default:
		return string(c)
	}
}

// ParseColumn converts user input into a Column.
// Accepts the canonical value as well as "in_progress" and "inprogress".
func ParseColumn(s string) (Column, error) {
	switch s {
	case "todo":
		return ColumnTodo, nil
	case "in-progress", "in_progress", "inprogress":
		return ColumnInProgress, nil
	case "done":
		return ColumnDone, nil
	default:
		return "", NewValidationError("column", "unknown column "+s, ErrInvalidColumn)
	}
}
