package service

import "context"

// Service is the orchestrated action surface over the HunnyDU API.
// All network calls go through this interface; commands never build HTTP
// requests directly.
//
// Actions without a return value are fire-and-forget: the request is
// best-effort, failures are logged rather than propagated, and no local
// state depends on the outcome. Mutating task and membership actions never
// patch cached state locally; each one re-fetches the authoritative
// collection after the call settles, so the returned error reflects that
// follow-up refresh.
type Service interface {
	// Login authenticates with email and password. On HTTP 200 the session
	// is populated (or reduced to just the user ID when the account is
	// unconfirmed); on 401 an AuthError is returned and any stored token
	// is discarded.
	Login(ctx context.Context, email, password string) (LoginResult, error)

	// Logout clears the session and the task cache. Local only; idempotent.
	Logout() error

	// Register creates a new account. A taken username or email returns a
	// ConflictError naming the offending fields.
	Register(ctx context.Context, username, email, password string) error

	// ConfirmRegistration redeems an emailed confirmation token.
	// alreadyConfirmed is true when the server answered 202.
	ConfirmRegistration(ctx context.Context, token string) (alreadyConfirmed bool, err error)

	// ConfirmInvite redeems a family invite token and refreshes the family.
	ConfirmInvite(ctx context.Context, token string) error

	// ResendConfirmation asks for a fresh confirmation email. Fire-and-forget.
	ResendConfirmation(ctx context.Context, userID int)

	// RequestPasswordReset asks for a reset email. Fire-and-forget.
	RequestPasswordReset(ctx context.Context, email string)

	// ValidateResetToken checks a password reset token before showing the
	// reset form.
	ValidateResetToken(ctx context.Context, token string) error

	// ResetPassword sets a new password using a reset token.
	ResetPassword(ctx context.Context, token, password string) error

	// ChangePassword changes the password of the logged-in user.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error

	// RequestEmailChange sends a confirmation link to the new address.
	// Fire-and-forget.
	RequestEmailChange(ctx context.Context, email string)

	// ConfirmEmailChange redeems an email-change token. A taken address
	// returns a ConflictError.
	ConfirmEmailChange(ctx context.Context, token string) error

	// RefreshFamily re-fetches the family roster and overwrites the
	// family-derived session fields, all or nothing.
	RefreshFamily(ctx context.Context) error

	// CreateFamily creates a family and refreshes the roster.
	CreateFamily(ctx context.Context, name string) error

	// SendFamilyInvite emails a family invite. Fire-and-forget.
	SendFamilyInvite(ctx context.Context, email string)

	// RemoveFamilyMember, MakeLeader and UnmakeLeader change membership and
	// then refresh the roster.
	RemoveFamilyMember(ctx context.Context, id int) error
	MakeLeader(ctx context.Context, id int) error
	UnmakeLeader(ctx context.Context, id int) error

	// RefreshTasks re-fetches both task collections and replaces the cache
	// atomically. An auth failure clears the session and the cache (forced
	// logout); any other failure leaves the cache untouched.
	RefreshTasks(ctx context.Context) error

	// AddTask creates a task with 1-5 subtasks, then refreshes the cache.
	AddTask(ctx context.Context, t NewTask) error

	// DeleteTask deletes a task and its subtasks, then refreshes the cache.
	DeleteTask(ctx context.Context, id int) error

	// AddSubtask appends a subtask, then refreshes the cache.
	AddSubtask(ctx context.Context, taskID int, name string) error

	// CompleteSubtask toggles a subtask's completion, then refreshes the
	// cache.
	CompleteSubtask(ctx context.Context, subtaskID int) error

	// DeleteSubtask removes a subtask, then refreshes the cache.
	DeleteSubtask(ctx context.Context, subtaskID int) error

	// Profile returns another user's profile data.
	Profile(ctx context.Context, userID int) (Profile, error)

	// Session returns a snapshot of the current session.
	Session() Session

	// CachedTasks returns snapshots of the cached personal and family-wide
	// task collections, in server order.
	CachedTasks() (mine, family []Task)
}
