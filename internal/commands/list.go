package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"hunnydu/internal/config"
	"hunnydu/internal/exitcode"
	"hunnydu/internal/output"
	"hunnydu/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command: refresh both task collections and
// render them.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls", "tasks"} }
func (c *ListCmd) Synopsis() string  { return "List your tasks and the family's tasks" }
func (c *ListCmd) Usage() string     { return "hunnydu list [common flags]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := svc.RefreshTasks(ctx); err != nil {
		return writeError(errOut, err)
	}

	mine, family := svc.CachedTasks()
	if len(mine) == 0 && len(family) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	if len(mine) > 0 {
		output.FormatSectionHeader(out, "My Tasks")
		renderTasks(out, "", mine)
	}
	if len(family) > 0 {
		output.FormatSectionHeader(out, "Family Tasks")
		renderTasks(out, "f", family)
	}
	return exitcode.Success
}

// renderTasks prints one collection, refs prefixed for the family list.
func renderTasks(out io.Writer, prefix string, tasks []service.Task) {
	for i, task := range tasks {
		ref := fmt.Sprintf("%s%d", prefix, i+1)
		output.FormatTask(out, ref, task)
		for j, subtask := range task.Subtasks {
			output.FormatSubtask(out, fmt.Sprintf("%s.%d", ref, j+1), subtask)
		}
	}
}
