package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"hunnydu/internal/api"
	"hunnydu/internal/config"
	"hunnydu/internal/exitcode"
	"hunnydu/internal/service"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct{}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create a new account" }
func (c *RegisterCmd) Usage() string {
	return "hunnydu register <username> <email> <password>"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 3 {
		fmt.Fprintln(errOut, "error: username, email and password required")
		return exitcode.UserError
	}

	err := svc.Register(ctx, args[0], args[1], args[2])
	if err != nil {
		var conflict *api.ConflictError
		if errors.As(err, &conflict) {
			for _, field := range conflict.Fields {
				fmt.Fprintf(errOut, "error: %s already in use\n", field)
			}
			return exitcode.UserError
		}
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "registered (check your email to confirm)")
	}
	return exitcode.Success
}
