package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"hunnydu/internal/api"
	"hunnydu/internal/commands"
	"hunnydu/internal/config"
	"hunnydu/internal/exitcode"
	"hunnydu/internal/service"
	"hunnydu/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func seedTasks(svc *testutil.FakeService) {
	mine := []service.Task{
		{ID: 1, Taskname: "Dishes", NextDue: "09/02/26", Assignee: "alice",
			Subtasks: []service.Subtask{{ID: 10, TaskID: 1, Name: "rinse"}}},
	}
	family := []service.Task{
		{ID: 1, Taskname: "Dishes", NextDue: "09/02/26", Assignee: "alice",
			Subtasks: []service.Subtask{{ID: 10, TaskID: 1, Name: "rinse"}}},
		{ID: 2, Taskname: "Vacuum", NextDue: "09/05/26", Assignee: "bob", Overdue: true},
	}
	svc.SetTasks(mine, family)
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "hunnydu 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
}

// Tests for list command
func TestListCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	seedTasks(svc)

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	testutil.GoldenString(t, "list", stdout)

	// The list is a fresh fetch, not the stale cache.
	if svc.RefreshTaskCalls != 1 {
		t.Errorf("expected 1 refresh, got %d", svc.RefreshTaskCalls)
	}
}

func TestListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected 'no tasks found\\n', got %q", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, svc, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func TestListCommand_SessionExpired(t *testing.T) {
	svc := testutil.NewFakeService()
	seedTasks(svc)
	svc.RefreshTasksErr = &api.AuthError{Message: "session expired"}

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: session expired (run: hunnydu login)\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	cmd.SetFields("w", 0, []string{"wash", "fold"})
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Do", "laundry"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	mine, _ := svc.CachedTasks()
	if len(mine) != 1 || mine[0].Taskname != "Do laundry" {
		t.Errorf("expected created task, got %+v", mine)
	}
	if len(mine[0].Subtasks) != 2 {
		t.Errorf("expected 2 subtasks, got %d", len(mine[0].Subtasks))
	}
}

func TestAddCommand_NoTaskname(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	cmd.SetFields("d", 0, []string{"one"})
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: taskname required\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestAddCommand_InvalidPeriod(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	cmd.SetFields("yearly", 0, []string{"one"})
	_, stderr, code := runCommand(t, cmd, svc, []string{"Taxes"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid period: yearly (want d, w or m)\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestAddCommand_SubtaskBounds(t *testing.T) {
	svc := testutil.NewFakeService()

	for _, subs := range [][]string{
		nil,
		{"a", "b", "c", "d", "e", "f"},
	} {
		cmd := &commands.AddCmd{}
		cmd.SetFields("d", 0, subs)
		_, stderr, code := runCommand(t, cmd, svc, []string{"Chore"}, false)

		if code != exitcode.UserError {
			t.Errorf("subtasks=%d: expected exit code %d, got %d", len(subs), exitcode.UserError, code)
		}
		if stderr != "error: a task needs between 1 and 5 subtasks (use --sub)\n" {
			t.Errorf("unexpected stderr: %q", stderr)
		}
	}
}

// Tests for done command
func TestDoneCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	seedTasks(svc)

	cmd := &commands.DoneCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"1.1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	mine, _ := svc.CachedTasks()
	if !mine[0].Subtasks[0].IsComplete {
		t.Error("expected subtask toggled complete")
	}
}

func TestDoneCommand_NoRef(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task reference required\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDoneCommand_WholeTaskRef(t *testing.T) {
	svc := testutil.NewFakeService()
	seedTasks(svc)

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: subtask reference required (e.g. 2.1)\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDoneCommand_InvalidRef(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"abc"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid task reference: abc\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for rm command
func TestRmCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	seedTasks(svc)

	cmd := &commands.RmCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"f2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	_, family := svc.CachedTasks()
	if len(family) != 1 {
		t.Errorf("expected 1 family task remaining, got %d", len(family))
	}
}

func TestRmCommand_OutOfRange(t *testing.T) {
	svc := testutil.NewFakeService()
	seedTasks(svc)

	cmd := &commands.RmCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"5"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: 5\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for addsub / rmsub commands
func TestAddSubCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	seedTasks(svc)

	cmd := &commands.AddSubCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"1", "dry", "plates"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	mine, _ := svc.CachedTasks()
	if len(mine[0].Subtasks) != 2 || mine[0].Subtasks[1].Name != "dry plates" {
		t.Errorf("expected appended subtask, got %+v", mine[0].Subtasks)
	}
}

func TestAddSubCommand_FullTask(t *testing.T) {
	svc := testutil.NewFakeService()
	full := service.Task{ID: 1, Taskname: "Busy", Subtasks: []service.Subtask{
		{ID: 11, Name: "a"}, {ID: 12, Name: "b"}, {ID: 13, Name: "c"},
		{ID: 14, Name: "d"}, {ID: 15, Name: "e"},
	}}
	svc.SetTasks([]service.Task{full}, []service.Task{full})

	cmd := &commands.AddSubCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"1", "one", "more"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: a task holds at most 5 subtasks\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestRmSubCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	task := service.Task{ID: 1, Taskname: "Dishes", Subtasks: []service.Subtask{
		{ID: 10, Name: "rinse"}, {ID: 11, Name: "dry"},
	}}
	svc.SetTasks([]service.Task{task}, []service.Task{task})

	cmd := &commands.RmSubCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{"1.2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	mine, _ := svc.CachedTasks()
	if len(mine[0].Subtasks) != 1 || mine[0].Subtasks[0].Name != "rinse" {
		t.Errorf("expected one subtask left, got %+v", mine[0].Subtasks)
	}
}

func TestRmSubCommand_LastSubtask(t *testing.T) {
	svc := testutil.NewFakeService()
	seedTasks(svc)

	cmd := &commands.RmSubCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"1.1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: cannot remove the only subtask\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for register command
func TestRegisterCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.RegisterCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"alice", "a@b.c", "pw"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "registered (check your email to confirm)\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}

func TestRegisterCommand_Conflict(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.RegisterErr = &api.ConflictError{Fields: []string{"email", "username"}}

	cmd := &commands.RegisterCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"alice", "a@b.c", "pw"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: email already in use\nerror: username already in use\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestRegisterCommand_MissingArgs(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.RegisterCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"alice"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: username, email and password required\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for family command
func TestFamilyCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.FamilyCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	expected := "------------\n" +
		"Testers\n" +
		"------------\n" +
		"   1  alice  (only leader)\n" +
		"   2  bob\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if svc.RefreshFamilyCalls != 1 {
		t.Errorf("expected 1 roster refresh, got %d", svc.RefreshFamilyCalls)
	}
}

func TestFamilyCommand_NoFamily(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SetSession(service.Session{Authenticated: true, Token: "t", UserID: 1})

	cmd := &commands.FamilyCmd{}
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no family (run: hunnydu createfamily <name>)\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}

// Tests for createfamily command
func TestCreateFamilyCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SetSession(service.Session{Authenticated: true, Token: "t", UserID: 1})

	cmd := &commands.CreateFamilyCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"The", "Smiths"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "created family The Smiths\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if !svc.Session().IsLeader {
		t.Error("expected creator to become a leader")
	}
}

// Tests for invite command
func TestInviteCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.InviteCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"new@b.c"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "invite requested\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if len(svc.FireAndForgets) != 1 || svc.FireAndForgets[0] != "sendFamilyInvite" {
		t.Errorf("expected a recorded invite, got %v", svc.FireAndForgets)
	}
}

// Tests for promote command
func TestPromoteCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.PromoteCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{"2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	s := svc.Session()
	if !s.Members[1].IsLeader || s.Leaders != 2 {
		t.Errorf("expected bob promoted, got %+v", s)
	}
}

func TestPromoteCommand_InvalidID(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.PromoteCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"bob"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid member id: bob\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for profile command
func TestProfileCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SetProfile(service.Profile{
		Username: "bob",
		Email:    "bob@b.c",
		Tasks:    []service.Task{{ID: 2, Taskname: "Vacuum", NextDue: "09/05/26"}},
	})

	cmd := &commands.ProfileCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "bob <bob@b.c>\n   1  Vacuum  due 09/05/26\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestProfileCommand_NotFound(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ProfileErr = &api.NotFoundError{}

	cmd := &commands.ProfileCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"99"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: not found\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}
