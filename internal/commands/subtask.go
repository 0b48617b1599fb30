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
	Register(&DoneCmd{})
	Register(&AddSubCmd{})
	Register(&RmSubCmd{})
}

// DoneCmd implements the done command: toggle a subtask's completion.
// Completing the last open subtask completes the task server-side and
// rolls its due date forward.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Toggle a subtask complete" }
func (c *DoneCmd) Usage() string     { return "hunnydu done <ref.sub>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	_, subtask, code := resolveTaskArg(ctx, svc, args, true, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := svc.CompleteSubtask(ctx, subtask.ID); err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// AddSubCmd implements the addsub command.
type AddSubCmd struct{}

func (c *AddSubCmd) Name() string      { return "addsub" }
func (c *AddSubCmd) Aliases() []string { return nil }
func (c *AddSubCmd) Synopsis() string  { return "Add a subtask to a task" }
func (c *AddSubCmd) Usage() string     { return "hunnydu addsub <ref> <name...>" }
func (c *AddSubCmd) NeedsAuth() bool   { return true }

func (c *AddSubCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddSubCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: task reference and subtask name required")
		return exitcode.UserError
	}
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: subtask name required")
		return exitcode.UserError
	}

	task, _, code := resolveTaskArg(ctx, svc, args[:1], false, errOut)
	if code != exitcode.Success {
		return code
	}
	if len(task.Subtasks) >= service.MaxSubtasks {
		fmt.Fprintf(errOut, "error: a task holds at most %d subtasks\n", service.MaxSubtasks)
		return exitcode.UserError
	}

	if err := svc.AddSubtask(ctx, task.ID, name); err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// RmSubCmd implements the rmsub command.
type RmSubCmd struct{}

func (c *RmSubCmd) Name() string      { return "rmsub" }
func (c *RmSubCmd) Aliases() []string { return nil }
func (c *RmSubCmd) Synopsis() string  { return "Delete a subtask" }
func (c *RmSubCmd) Usage() string     { return "hunnydu rmsub <ref.sub>" }
func (c *RmSubCmd) NeedsAuth() bool   { return true }

func (c *RmSubCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmSubCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, subtask, code := resolveTaskArg(ctx, svc, args, true, errOut)
	if code != exitcode.Success {
		return code
	}
	if len(task.Subtasks) <= service.MinSubtasks {
		fmt.Fprintln(errOut, "error: cannot remove the only subtask")
		return exitcode.UserError
	}

	if err := svc.DeleteSubtask(ctx, subtask.ID); err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
