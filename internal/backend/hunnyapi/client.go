// Package hunnyapi implements the service.Service interface against the
// HunnyDU REST API, coordinating the transport, the session store and the
// task cache.
package hunnyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"hunnydu/internal/api"
	"hunnydu/internal/cache"
	"hunnydu/internal/config"
	"hunnydu/internal/service"
	"hunnydu/internal/session"
	"hunnydu/internal/store"
)

// Client implements service.Service over the HunnyDU API.
type Client struct {
	api     *api.Transport
	session *session.Store
	cache   *cache.TaskCache
	kv      *store.Store
	logger  *slog.Logger
	timeout time.Duration
}

// New creates a Client from config: it opens the durable session store,
// hydrates the session, and points the transport at the configured API.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	kv, err := store.Open(cfg.SessionDBPath())
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return newClient(cfg.APIURL, kv, logger, cfg.Timeout), nil
}

// NewWithBaseURL creates a Client against an explicit base URL and session
// DB path (for testing).
func NewWithBaseURL(baseURL, dbPath string, logger *slog.Logger) (*Client, error) {
	kv, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return newClient(baseURL, kv, logger, config.DefaultTimeout), nil
}

func newClient(baseURL string, kv *store.Store, logger *slog.Logger, timeout time.Duration) *Client {
	sess := session.New(kv)
	return &Client{
		api:     api.New(baseURL, sess.Token),
		session: sess,
		cache:   cache.New(),
		kv:      kv,
		logger:  logger,
		timeout: timeout,
	}
}

// Close releases the durable store.
func (c *Client) Close() error {
	return c.kv.Close()
}

// withTimeout derives the per-action deadline. A stuck request fails with
// a NetworkError instead of hanging forever.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// decode unmarshals a response body. An empty or falsy body on an
// authenticated endpoint means the server rejected the token without a
// structured answer; a body that fails to decode is indistinguishable from
// a mangled transfer.
func decode(resp *api.Response, v any) error {
	if resp.Empty() {
		return &api.AuthError{}
	}
	if err := resp.Decode(v); err != nil {
		return &api.NetworkError{Err: fmt.Errorf("malformed response: %w", err)}
	}
	return nil
}

// fireAndForget performs a best-effort mutation. Failures are logged and
// swallowed: these endpoints have no user-facing feedback path.
func (c *Client) fireAndForget(ctx context.Context, action, path string, body any) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Request(ctx, http.MethodPost, path, body, true, nil)
	if err != nil {
		c.logger.Warn("request failed", "action", action, "path", path, "err", err)
		return
	}
	if err := api.Classify(resp); err != nil {
		c.logger.Warn("request rejected", "action", action, "path", path, "status", resp.Status, "err", err)
	}
}

type loginResponse struct {
	Token      string           `json:"token"`
	Confirmed  bool             `json:"confirmed"`
	ID         int              `json:"id"`
	FamilyName string           `json:"family_name"`
	Members    []service.Member `json:"members"`
	IsLeader   bool             `json:"isLeader"`
	Leaders    int              `json:"leaders"`
}

// Login authenticates and populates the session. A 200 against an
// unconfirmed account keeps only the user ID; any rejection discards the
// stored token.
func (c *Client) Login(ctx context.Context, email, password string) (service.LoginResult, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	creds := &api.Credentials{EmailOrToken: email, Password: password}
	resp, err := c.api.Request(ctx, http.MethodPost, "/api/auth/login", nil, true, creds)
	if err != nil {
		return service.LoginResult{}, err
	}
	if resp.Status != http.StatusOK {
		if err := c.session.RemoveToken(); err != nil {
			c.logger.Warn("failed to discard token", "err", err)
		}
		return service.LoginResult{}, api.Classify(resp)
	}

	var body loginResponse
	if err := decode(resp, &body); err != nil {
		return service.LoginResult{}, err
	}

	if !body.Confirmed {
		if err := c.session.SetUnconfirmed(body.ID); err != nil {
			c.logger.Warn("failed to persist session", "err", err)
		}
		return service.LoginResult{Confirmed: false, UserID: body.ID}, nil
	}

	if err := c.session.SetLogin(body.Token, body.ID, body.FamilyName, body.Members, body.IsLeader, body.Leaders); err != nil {
		c.logger.Warn("failed to persist session", "err", err)
	}
	return service.LoginResult{Confirmed: true, UserID: body.ID}, nil
}

// Logout clears the session and the task cache. Local only; idempotent.
func (c *Client) Logout() error {
	c.cache.Clear()
	return c.session.Clear()
}

// Register creates a new account. 207 reports the taken fields.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	resp, err := c.api.Request(ctx, http.MethodPost, "/api/auth/registration", body, true, nil)
	if err != nil {
		return err
	}
	return api.Classify(resp)
}

// ConfirmRegistration redeems a confirmation token. 202 means the account
// was already confirmed.
func (c *Client) ConfirmRegistration(ctx context.Context, token string) (bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Request(ctx, http.MethodPost, "/api/auth/confirmUser/"+token, nil, true, nil)
	if err != nil {
		return false, err
	}
	if resp.Status == http.StatusAccepted {
		return true, nil
	}
	return false, api.Classify(resp)
}

// ConfirmInvite redeems a family invite token, then refreshes the family.
// The server answers an unknown user with an empty body, which classifies
// as not found.
func (c *Client) ConfirmInvite(ctx context.Context, token string) error {
	tctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Request(tctx, http.MethodPost, "/api/auth/confirmInviteToken/"+token, nil, true, nil)
	if err != nil {
		return err
	}
	if resp.Status == http.StatusOK && resp.Empty() {
		return &api.NotFoundError{Message: "no account for the invited address"}
	}
	if err := api.Classify(resp); err != nil {
		return err
	}
	return c.RefreshFamily(ctx)
}

// ResendConfirmation asks for a fresh confirmation email. Fire-and-forget.
func (c *Client) ResendConfirmation(ctx context.Context, userID int) {
	c.fireAndForget(ctx, "resendConfirmation", "/api/auth/resendConfirmationEmail", map[string]int{"id": userID})
}

// RequestPasswordReset asks for a reset email. Fire-and-forget: the server
// answers 200 whether or not the address exists.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) {
	c.fireAndForget(ctx, "requestPasswordReset", "/api/auth/sendResetRequest", map[string]string{"email": email})
}

// ValidateResetToken checks a reset token before the new password is asked
// for.
func (c *Client) ValidateResetToken(ctx context.Context, token string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Request(ctx, http.MethodPost, "/api/auth/validateResetRequest/"+token, nil, true, nil)
	if err != nil {
		return err
	}
	return api.Classify(resp)
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	body := map[string]string{"token": token, "password": password}
	resp, err := c.api.Request(ctx, http.MethodPost, "/api/auth/processPasswordReset", body, true, nil)
	if err != nil {
		return err
	}
	return api.Classify(resp)
}

// ChangePassword changes the logged-in user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	body := map[string]string{"oldPass": oldPassword, "newPass": newPassword}
	resp, err := c.api.Request(ctx, http.MethodPost, "/api/auth/changePassword", body, true, nil)
	if err != nil {
		return err
	}
	return api.Classify(resp)
}

// RequestEmailChange sends a confirmation link to the new address.
// Fire-and-forget.
func (c *Client) RequestEmailChange(ctx context.Context, email string) {
	c.fireAndForget(ctx, "requestEmailChange", "/api/auth/changeEmailRequest", map[string]string{"email": email})
}

// ConfirmEmailChange redeems an email-change token. The server reports a
// taken address with a bare 207, so the conflict is pinned to the email
// field.
func (c *Client) ConfirmEmailChange(ctx context.Context, token string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Request(ctx, http.MethodPost, "/api/auth/confirmChangeEmail", map[string]string{"token": token}, true, nil)
	if err != nil {
		return err
	}
	if resp.Status == 207 {
		return &api.ConflictError{Fields: []string{"email"}}
	}
	return api.Classify(resp)
}

type familyResponse struct {
	FamilyName string           `json:"family_name"`
	Members    []service.Member `json:"members"`
	IsLeader   bool             `json:"isLeader"`
	Leaders    int              `json:"leaders"`
}

// RefreshFamily re-fetches the roster and overwrites the family-derived
// session fields. The whole response is decoded before any field changes,
// so a failed fetch never leaves the session partially updated.
func (c *Client) RefreshFamily(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Request(ctx, http.MethodPost, "/api/auth/getFamily", nil, true, nil)
	if err != nil {
		return err
	}
	if err := api.Classify(resp); err != nil {
		return err
	}

	var body familyResponse
	if err := decode(resp, &body); err != nil {
		return err
	}

	if err := c.session.SetFamily(body.FamilyName, body.Members, body.IsLeader, body.Leaders); err != nil {
		c.logger.Warn("failed to persist session", "err", err)
	}
	return nil
}

// CreateFamily creates a family, then refreshes the roster so the creator
// sees their new leadership.
func (c *Client) CreateFamily(ctx context.Context, name string) error {
	tctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Request(tctx, http.MethodPost, "/api/auth/createFamily", map[string]string{"familyName": name}, true, nil)
	if err != nil {
		return err
	}
	if err := api.Classify(resp); err != nil {
		return err
	}
	return c.RefreshFamily(ctx)
}

// SendFamilyInvite emails a family invite. Fire-and-forget.
func (c *Client) SendFamilyInvite(ctx context.Context, email string) {
	c.fireAndForget(ctx, "sendFamilyInvite", "/api/auth/sendFamilyInvite", map[string]string{"email": email})
}

// membershipChange performs a best-effort membership mutation and then
// re-fetches the roster unconditionally, collapsing local/remote divergence
// into the one refresh code path.
func (c *Client) membershipChange(ctx context.Context, action, path string, id int) error {
	c.fireAndForget(ctx, action, path, map[string]int{"id": id})
	return c.RefreshFamily(ctx)
}

// RemoveFamilyMember removes a member (and their tasks), then refreshes.
func (c *Client) RemoveFamilyMember(ctx context.Context, id int) error {
	return c.membershipChange(ctx, "removeFamilyMember", "/api/auth/removeFamilyMember", id)
}

// MakeLeader grants leader permissions, then refreshes.
func (c *Client) MakeLeader(ctx context.Context, id int) error {
	return c.membershipChange(ctx, "makeLeader", "/api/auth/makeLeader", id)
}

// UnmakeLeader revokes leader permissions, then refreshes.
func (c *Client) UnmakeLeader(ctx context.Context, id int) error {
	return c.membershipChange(ctx, "unmakeLeader", "/api/auth/unmakeLeader", id)
}

type tasksResponse struct {
	Tasks       []service.Task `json:"tasks"`
	FamilyTasks []service.Task `json:"familyTasks"`
}

// RefreshTasks re-fetches both task collections and replaces the cache
// atomically. An auth failure forces a logout rather than leaving a stale
// cache visible as if still authenticated; any other failure leaves the
// cache untouched.
func (c *Client) RefreshTasks(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Request(ctx, http.MethodPost, "/api/getTasks", nil, true, nil)
	if err != nil {
		return err
	}
	if resp.Status == http.StatusUnauthorized || (resp.Status == http.StatusOK && resp.Empty()) {
		c.cache.Clear()
		if err := c.session.Clear(); err != nil {
			c.logger.Warn("failed to clear session", "err", err)
		}
		return &api.AuthError{Message: "session expired"}
	}
	if err := api.Classify(resp); err != nil {
		return err
	}

	var body tasksResponse
	if err := decode(resp, &body); err != nil {
		return err
	}

	c.cache.Replace(body.Tasks, body.FamilyTasks)
	return nil
}

// taskMutation performs a best-effort task mutation and then re-fetches the
// authoritative collections: the cache never holds a task the server has
// not acknowledged.
func (c *Client) taskMutation(ctx context.Context, action, path string, body any) error {
	c.fireAndForget(ctx, action, path, body)
	return c.RefreshTasks(ctx)
}

// newTaskPayload is the create-task wire shape. The server evaluates the
// subtasks field from a string, so the names are JSON-encoded one more
// time rather than sent as an array, same as the body envelope one level
// up.
type newTaskPayload struct {
	Taskname string         `json:"taskname"`
	Period   service.Period `json:"period"`
	Assignee int            `json:"assignee"`
	Subtasks string         `json:"subtasks"`
}

// AddTask creates a task. The checklist size is bounded at creation; the
// server enforces the same limits on later subtask edits.
func (c *Client) AddTask(ctx context.Context, t service.NewTask) error {
	if len(t.Subtasks) < service.MinSubtasks || len(t.Subtasks) > service.MaxSubtasks {
		return &api.ValidationError{
			Message: fmt.Sprintf("a task needs between %d and %d subtasks", service.MinSubtasks, service.MaxSubtasks),
		}
	}
	names, err := json.Marshal(t.Subtasks)
	if err != nil {
		return fmt.Errorf("failed to encode subtasks: %w", err)
	}
	body := newTaskPayload{
		Taskname: t.Taskname,
		Period:   t.Period,
		Assignee: t.Assignee,
		Subtasks: string(names),
	}
	return c.taskMutation(ctx, "addTask", "/api/tasks", body)
}

// DeleteTask deletes a task and all its subtasks.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.taskMutation(ctx, "deleteTask", fmt.Sprintf("/api/delete_task/%d", id), nil)
}

// AddSubtask appends a subtask to a task.
func (c *Client) AddSubtask(ctx context.Context, taskID int, name string) error {
	body := map[string]string{"subtask_name": name}
	return c.taskMutation(ctx, "addSubtask", fmt.Sprintf("/api/add_subtask/%d", taskID), body)
}

// CompleteSubtask toggles a subtask's completion state.
func (c *Client) CompleteSubtask(ctx context.Context, subtaskID int) error {
	return c.taskMutation(ctx, "completeSubtask", fmt.Sprintf("/api/change_subtask_complete/%d", subtaskID), nil)
}

// DeleteSubtask removes a subtask. The server refuses to remove the last
// one.
func (c *Client) DeleteSubtask(ctx context.Context, subtaskID int) error {
	return c.taskMutation(ctx, "deleteSubtask", fmt.Sprintf("/api/delete_subtask/%d", subtaskID), nil)
}

// Profile returns a user's profile data.
func (c *Client) Profile(ctx context.Context, userID int) (service.Profile, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Request(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d", userID), nil, true, nil)
	if err != nil {
		return service.Profile{}, err
	}
	if err := api.Classify(resp); err != nil {
		return service.Profile{}, err
	}

	var profile service.Profile
	if err := decode(resp, &profile); err != nil {
		return service.Profile{}, err
	}
	return profile, nil
}

// Session returns a snapshot of the current session.
func (c *Client) Session() service.Session {
	return c.session.Snapshot()
}

// CachedTasks returns snapshots of both cached collections.
func (c *Client) CachedTasks() (mine, family []service.Task) {
	return c.cache.Snapshot()
}
