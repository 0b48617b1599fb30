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
	Register(&ChangeEmailCmd{})
	Register(&ConfirmEmailCmd{})
}

// ChangeEmailCmd sends a confirmation link to a new email address.
type ChangeEmailCmd struct{}

func (c *ChangeEmailCmd) Name() string      { return "change-email" }
func (c *ChangeEmailCmd) Aliases() []string { return nil }
func (c *ChangeEmailCmd) Synopsis() string  { return "Request an email address change" }
func (c *ChangeEmailCmd) Usage() string     { return "hunnydu change-email <new-email>" }
func (c *ChangeEmailCmd) NeedsAuth() bool   { return true }

func (c *ChangeEmailCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ChangeEmailCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	svc.RequestEmailChange(ctx, args[0])

	if !cfg.Quiet {
		fmt.Fprintln(out, "requested (check the new address)")
	}
	return exitcode.Success
}

// ConfirmEmailCmd redeems an email-change token.
type ConfirmEmailCmd struct{}

func (c *ConfirmEmailCmd) Name() string      { return "confirm-email" }
func (c *ConfirmEmailCmd) Aliases() []string { return nil }
func (c *ConfirmEmailCmd) Synopsis() string  { return "Confirm an email address change" }
func (c *ConfirmEmailCmd) Usage() string     { return "hunnydu confirm-email <token>" }
func (c *ConfirmEmailCmd) NeedsAuth() bool   { return false }

func (c *ConfirmEmailCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ConfirmEmailCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: token required")
		return exitcode.UserError
	}

	err := svc.ConfirmEmailChange(ctx, args[0])
	if err != nil {
		var conflict *api.ConflictError
		if errors.As(err, &conflict) {
			fmt.Fprintln(errOut, "error: email already in use")
			return exitcode.UserError
		}
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "email updated")
	}
	return exitcode.Success
}
