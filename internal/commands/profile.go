package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"hunnydu/internal/config"
	"hunnydu/internal/exitcode"
	"hunnydu/internal/output"
	"hunnydu/internal/service"
)

func init() {
	Register(&ProfileCmd{})
}

// ProfileCmd implements the profile command.
type ProfileCmd struct{}

func (c *ProfileCmd) Name() string      { return "profile" }
func (c *ProfileCmd) Aliases() []string { return nil }
func (c *ProfileCmd) Synopsis() string  { return "Show a user's profile" }
func (c *ProfileCmd) Usage() string     { return "hunnydu profile [user-id]" }
func (c *ProfileCmd) NeedsAuth() bool   { return true }

func (c *ProfileCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ProfileCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Default to your own profile.
	id := svc.Session().UserID
	if len(args) == 1 {
		var err error
		id, err = strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid user id: %s\n", args[0])
			return exitcode.UserError
		}
	} else if len(args) > 1 {
		fmt.Fprintln(errOut, "error: at most one user id expected")
		return exitcode.UserError
	}

	profile, err := svc.Profile(ctx, id)
	if err != nil {
		return writeError(errOut, err)
	}

	fmt.Fprintf(out, "%s <%s>\n", profile.Username, profile.Email)
	for i, task := range profile.Tasks {
		output.FormatTask(out, strconv.Itoa(i+1), task)
	}
	return exitcode.Success
}
