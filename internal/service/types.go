// Package service defines the backend-agnostic types and interface for
// session and task operations.
package service

import "fmt"

// Member is a family member as reported by the server.
type Member struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsLeader bool   `json:"isLeader"`
	// IsOnlyLeader is true iff this member is a leader and the family has
	// exactly one. The last leader cannot be demoted or removed.
	IsOnlyLeader bool `json:"isOnlyLeader"`
}

// Subtask is a checklist item owned by its parent task.
type Subtask struct {
	ID         int    `json:"id"`
	TaskID     int    `json:"task_id"`
	Name       string `json:"subtask_name"`
	IsComplete bool   `json:"is_complete"`
}

// Task is a recurring chore. The server reports the assignee by username
// and the due date preformatted as MM/DD/YY.
type Task struct {
	ID       int       `json:"id"`
	Taskname string    `json:"taskname"`
	NextDue  string    `json:"next_due"`
	Assignee string    `json:"assignee"`
	Overdue  bool      `json:"overdue"`
	Subtasks []Subtask `json:"subtasks"`
}

// Profile is a user's profile page data.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Tasks    []Task `json:"tasks"`
}

// Period is a task's recurrence period, in the server's single-letter form.
type Period string

const (
	Daily   Period = "d"
	Weekly  Period = "w"
	Monthly Period = "m"
)

// ParsePeriod accepts either the single-letter or the spelled-out form.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "d", "daily":
		return Daily, nil
	case "w", "weekly":
		return Weekly, nil
	case "m", "monthly":
		return Monthly, nil
	}
	return "", fmt.Errorf("invalid period: %s (want d, w or m)", s)
}

// MinSubtasks and MaxSubtasks bound the checklist size at task creation.
// The server enforces the same limits on later subtask adds and deletes.
const (
	MinSubtasks = 1
	MaxSubtasks = 5
)

// NewTask is the input for creating a task. Assignee is a member ID. The
// backend owns the wire encoding; this is not the request shape.
type NewTask struct {
	Taskname string
	Period   Period
	Assignee int
	Subtasks []string
}

// Session is the authenticated session's derived state.
// Authenticated is true iff a server-accepted token is present.
type Session struct {
	Authenticated bool
	Token         string
	UserID        int
	FamilyName    string
	Members       []Member
	IsLeader      bool
	Leaders       int
}

// LoginResult reports the outcome of a successful (HTTP 200) login.
// An unconfirmed account yields Confirmed == false and an unauthenticated
// session with only the user ID retained.
type LoginResult struct {
	Confirmed bool
	UserID    int
}
