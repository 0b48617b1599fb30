package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"hunnydu/internal/config"
	"hunnydu/internal/exitcode"
	"hunnydu/internal/service"
)

func init() {
	Register(&AddCmd{})
	Register(&RmCmd{})
}

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// AddCmd implements the add command: create a task with its subtasks.
type AddCmd struct {
	period   string
	assignee int
	subtasks stringList
}

// SetFields sets the flag-backed fields (for testing).
func (c *AddCmd) SetFields(period string, assignee int, subtasks []string) {
	c.period = period
	c.assignee = assignee
	c.subtasks = subtasks
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "hunnydu add --period <d|w|m> --assignee <member-id> --sub <name> [--sub <name> ...] <taskname...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.period, "period", "d", "")
	fs.IntVar(&c.assignee, "assignee", 0, "")
	fs.Var(&c.subtasks, "sub", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	taskname := strings.TrimSpace(strings.Join(args, " "))
	if taskname == "" {
		fmt.Fprintln(errOut, "error: taskname required")
		return exitcode.UserError
	}

	period, err := service.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	assignee := c.assignee
	if assignee == 0 {
		// Default to assigning the task to yourself.
		assignee = svc.Session().UserID
	}
	if assignee == 0 {
		fmt.Fprintln(errOut, "error: assignee required")
		return exitcode.UserError
	}

	if len(c.subtasks) < service.MinSubtasks || len(c.subtasks) > service.MaxSubtasks {
		fmt.Fprintf(errOut, "error: a task needs between %d and %d subtasks (use --sub)\n",
			service.MinSubtasks, service.MaxSubtasks)
		return exitcode.UserError
	}

	task := service.NewTask{
		Taskname: taskname,
		Period:   period,
		Assignee: assignee,
		Subtasks: c.subtasks,
	}
	if err := svc.AddTask(ctx, task); err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// RmCmd implements the rm command: delete a task and its subtasks.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "hunnydu rm <ref>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, _, code := resolveTaskArg(ctx, svc, args, false, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// resolveTaskArg refreshes the cache and resolves a reference argument.
// When wantSub is set, the reference must address a subtask.
func resolveTaskArg(ctx context.Context, svc service.Service, args []string, wantSub bool, errOut io.Writer) (service.Task, service.Subtask, int) {
	ref, err := ParseRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, service.Subtask{}, exitcode.UserError
	}
	if wantSub && ref.SubNum == 0 {
		fmt.Fprintln(errOut, "error: subtask reference required (e.g. 2.1)")
		return service.Task{}, service.Subtask{}, exitcode.UserError
	}

	// References are positions in a fresh fetch, never a stale one.
	if err := svc.RefreshTasks(ctx); err != nil {
		return service.Task{}, service.Subtask{}, writeError(errOut, err)
	}
	mine, family := svc.CachedTasks()

	task, err := ResolveTask(mine, family, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, service.Subtask{}, exitcode.UserError
	}

	var subtask service.Subtask
	if wantSub {
		subtask, err = ResolveSubtask(task, ref)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return service.Task{}, service.Subtask{}, exitcode.UserError
		}
	}
	return task, subtask, exitcode.Success
}
