// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"hunnydu/internal/api"
	"hunnydu/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu      sync.RWMutex
	session service.Session
	mine    []service.Task
	family  []service.Task
	profile service.Profile
	nextID  int

	// Login scripting
	LoginConfirmed bool
	LoginUserID    int
	LoginToken     string

	// Error injection for testing
	LoginErr           error
	RegisterErr        error
	ConfirmErr         error
	ConfirmInviteErr   error
	ValidateResetErr   error
	ResetPasswordErr   error
	ChangePasswordErr  error
	ConfirmEmailErr    error
	RefreshFamilyErr   error
	CreateFamilyErr    error
	MembershipErr      error
	RefreshTasksErr    error
	AddTaskErr         error
	DeleteTaskErr      error
	AddSubtaskErr      error
	CompleteSubtaskErr error
	DeleteSubtaskErr   error
	ProfileErr         error

	// Call recording
	RefreshTaskCalls   int
	RefreshFamilyCalls int
	FireAndForgets     []string
}

// NewFakeService creates a FakeService with an authenticated session.
func NewFakeService() *FakeService {
	return &FakeService{
		session: service.Session{
			Authenticated: true,
			Token:         "fake-token",
			UserID:        1,
			FamilyName:    "Testers",
			Members: []service.Member{
				{ID: 1, Name: "alice", IsLeader: true, IsOnlyLeader: true},
				{ID: 2, Name: "bob"},
			},
			IsLeader: true,
			Leaders:  1,
		},
		LoginConfirmed: true,
		LoginUserID:    1,
		LoginToken:     "fake-token",
		nextID:         100,
	}
}

// NewLoggedOutFakeService creates a FakeService with no session.
func NewLoggedOutFakeService() *FakeService {
	fs := NewFakeService()
	fs.session = service.Session{}
	return fs
}

// SetSession overwrites the fake's session state.
func (f *FakeService) SetSession(s service.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = s
}

// SetTasks seeds the cached task collections.
func (f *FakeService) SetTasks(mine, family []service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mine = mine
	f.family = family
}

// SetProfile seeds the profile returned by Profile.
func (f *FakeService) SetProfile(p service.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = p
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (service.LoginResult, error) {
	if f.LoginErr != nil {
		return service.LoginResult{}, f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.LoginConfirmed {
		f.session = service.Session{UserID: f.LoginUserID}
		return service.LoginResult{Confirmed: false, UserID: f.LoginUserID}, nil
	}
	f.session.Authenticated = true
	f.session.Token = f.LoginToken
	f.session.UserID = f.LoginUserID
	return service.LoginResult{Confirmed: true, UserID: f.LoginUserID}, nil
}

// Logout implements service.Service.
func (f *FakeService) Logout() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = service.Session{}
	f.mine = nil
	f.family = nil
	return nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, username, email, password string) error {
	return f.RegisterErr
}

// ConfirmRegistration implements service.Service.
func (f *FakeService) ConfirmRegistration(ctx context.Context, token string) (bool, error) {
	if f.ConfirmErr != nil {
		return false, f.ConfirmErr
	}
	return token == "already", nil
}

// ConfirmInvite implements service.Service.
func (f *FakeService) ConfirmInvite(ctx context.Context, token string) error {
	return f.ConfirmInviteErr
}

// ResendConfirmation implements service.Service.
func (f *FakeService) ResendConfirmation(ctx context.Context, userID int) {
	f.record("resendConfirmation")
}

// RequestPasswordReset implements service.Service.
func (f *FakeService) RequestPasswordReset(ctx context.Context, email string) {
	f.record("requestPasswordReset")
}

// ValidateResetToken implements service.Service.
func (f *FakeService) ValidateResetToken(ctx context.Context, token string) error {
	return f.ValidateResetErr
}

// ResetPassword implements service.Service.
func (f *FakeService) ResetPassword(ctx context.Context, token, password string) error {
	return f.ResetPasswordErr
}

// ChangePassword implements service.Service.
func (f *FakeService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return f.ChangePasswordErr
}

// RequestEmailChange implements service.Service.
func (f *FakeService) RequestEmailChange(ctx context.Context, email string) {
	f.record("requestEmailChange")
}

// ConfirmEmailChange implements service.Service.
func (f *FakeService) ConfirmEmailChange(ctx context.Context, token string) error {
	return f.ConfirmEmailErr
}

// RefreshFamily implements service.Service.
func (f *FakeService) RefreshFamily(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RefreshFamilyCalls++
	return f.RefreshFamilyErr
}

// CreateFamily implements service.Service.
func (f *FakeService) CreateFamily(ctx context.Context, name string) error {
	if f.CreateFamilyErr != nil {
		return f.CreateFamilyErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session.FamilyName = name
	f.session.IsLeader = true
	f.session.Leaders = 1
	return nil
}

// SendFamilyInvite implements service.Service.
func (f *FakeService) SendFamilyInvite(ctx context.Context, email string) {
	f.record("sendFamilyInvite")
}

// RemoveFamilyMember implements service.Service.
func (f *FakeService) RemoveFamilyMember(ctx context.Context, id int) error {
	if f.MembershipErr != nil {
		return f.MembershipErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.session.Members {
		if m.ID == id {
			f.session.Members = append(f.session.Members[:i], f.session.Members[i+1:]...)
			break
		}
	}
	return nil
}

// MakeLeader implements service.Service.
func (f *FakeService) MakeLeader(ctx context.Context, id int) error {
	return f.setLeader(id, true)
}

// UnmakeLeader implements service.Service.
func (f *FakeService) UnmakeLeader(ctx context.Context, id int) error {
	return f.setLeader(id, false)
}

func (f *FakeService) setLeader(id int, leader bool) error {
	if f.MembershipErr != nil {
		return f.MembershipErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.session.Members {
		if m.ID == id {
			f.session.Members[i].IsLeader = leader
		}
	}
	f.session.Leaders = 0
	for _, m := range f.session.Members {
		if m.IsLeader {
			f.session.Leaders++
		}
	}
	return nil
}

// RefreshTasks implements service.Service.
func (f *FakeService) RefreshTasks(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RefreshTaskCalls++
	if f.RefreshTasksErr != nil {
		if _, ok := f.RefreshTasksErr.(*api.AuthError); ok {
			f.session = service.Session{}
			f.mine = nil
			f.family = nil
		}
		return f.RefreshTasksErr
	}
	return nil
}

// AddTask implements service.Service.
func (f *FakeService) AddTask(ctx context.Context, t service.NewTask) error {
	if f.AddTaskErr != nil {
		return f.AddTaskErr
	}
	if len(t.Subtasks) < service.MinSubtasks || len(t.Subtasks) > service.MaxSubtasks {
		return &api.ValidationError{Message: "a task needs 1 to 5 subtasks"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	task := service.Task{ID: f.nextID, Taskname: t.Taskname}
	for _, name := range t.Subtasks {
		f.nextID++
		task.Subtasks = append(task.Subtasks, service.Subtask{
			ID:     f.nextID,
			TaskID: task.ID,
			Name:   name,
		})
	}
	f.nextID++
	if t.Assignee == 0 || t.Assignee == f.session.UserID {
		f.mine = append(f.mine, task)
	}
	f.family = append(f.family, task)
	f.RefreshTaskCalls++
	return nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mine = removeTask(f.mine, id)
	f.family = removeTask(f.family, id)
	f.RefreshTaskCalls++
	return nil
}

func removeTask(tasks []service.Task, id int) []service.Task {
	for i, t := range tasks {
		if t.ID == id {
			return append(tasks[:i], tasks[i+1:]...)
		}
	}
	return tasks
}

// AddSubtask implements service.Service.
func (f *FakeService) AddSubtask(ctx context.Context, taskID int, name string) error {
	if f.AddSubtaskErr != nil {
		return f.AddSubtaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	sub := service.Subtask{ID: f.nextID, TaskID: taskID, Name: name}
	f.eachTask(func(t *service.Task) {
		if t.ID == taskID {
			t.Subtasks = append(t.Subtasks, sub)
		}
	})
	f.RefreshTaskCalls++
	return nil
}

// CompleteSubtask implements service.Service.
func (f *FakeService) CompleteSubtask(ctx context.Context, subtaskID int) error {
	if f.CompleteSubtaskErr != nil {
		return f.CompleteSubtaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eachTask(func(t *service.Task) {
		for i := range t.Subtasks {
			if t.Subtasks[i].ID == subtaskID {
				t.Subtasks[i].IsComplete = !t.Subtasks[i].IsComplete
			}
		}
	})
	f.RefreshTaskCalls++
	return nil
}

// DeleteSubtask implements service.Service.
func (f *FakeService) DeleteSubtask(ctx context.Context, subtaskID int) error {
	if f.DeleteSubtaskErr != nil {
		return f.DeleteSubtaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eachTask(func(t *service.Task) {
		for i := range t.Subtasks {
			if t.Subtasks[i].ID == subtaskID {
				t.Subtasks = append(t.Subtasks[:i], t.Subtasks[i+1:]...)
				return
			}
		}
	})
	f.RefreshTaskCalls++
	return nil
}

// eachTask visits every task in both collections. Caller holds the lock.
func (f *FakeService) eachTask(fn func(*service.Task)) {
	for i := range f.mine {
		fn(&f.mine[i])
	}
	for i := range f.family {
		fn(&f.family[i])
	}
}

// Profile implements service.Service.
func (f *FakeService) Profile(ctx context.Context, userID int) (service.Profile, error) {
	if f.ProfileErr != nil {
		return service.Profile{}, f.ProfileErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.profile, nil
}

// Session implements service.Service.
func (f *FakeService) Session() service.Session {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s := f.session
	s.Members = append([]service.Member(nil), f.session.Members...)
	return s
}

// CachedTasks implements service.Service.
func (f *FakeService) CachedTasks() (mine, family []service.Task) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	mine = append([]service.Task(nil), f.mine...)
	family = append([]service.Task(nil), f.family...)
	return mine, family
}

func (f *FakeService) record(action string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FireAndForgets = append(f.FireAndForgets, action)
}
