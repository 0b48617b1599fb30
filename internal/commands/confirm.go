package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"hunnydu/internal/config"
	"hunnydu/internal/exitcode"
	"hunnydu/internal/service"
)

func init() {
	Register(&ConfirmCmd{})
	Register(&ConfirmInviteCmd{})
	Register(&ResendConfirmationCmd{})
}

// ConfirmCmd redeems an emailed registration confirmation token.
type ConfirmCmd struct{}

func (c *ConfirmCmd) Name() string      { return "confirm" }
func (c *ConfirmCmd) Aliases() []string { return nil }
func (c *ConfirmCmd) Synopsis() string  { return "Confirm a new account" }
func (c *ConfirmCmd) Usage() string     { return "hunnydu confirm <token>" }
func (c *ConfirmCmd) NeedsAuth() bool   { return false }

func (c *ConfirmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ConfirmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: token required")
		return exitcode.UserError
	}

	already, err := svc.ConfirmRegistration(ctx, args[0])
	if err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		if already {
			fmt.Fprintln(out, "already confirmed")
		} else {
			fmt.Fprintln(out, "confirmed (run: hunnydu login)")
		}
	}
	return exitcode.Success
}

// ConfirmInviteCmd redeems a family invite token.
type ConfirmInviteCmd struct{}

func (c *ConfirmInviteCmd) Name() string      { return "confirm-invite" }
func (c *ConfirmInviteCmd) Aliases() []string { return nil }
func (c *ConfirmInviteCmd) Synopsis() string  { return "Accept a family invite" }
func (c *ConfirmInviteCmd) Usage() string     { return "hunnydu confirm-invite <token>" }
func (c *ConfirmInviteCmd) NeedsAuth() bool   { return true }

func (c *ConfirmInviteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ConfirmInviteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: token required")
		return exitcode.UserError
	}

	if err := svc.ConfirmInvite(ctx, args[0]); err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "joined family %s\n", svc.Session().FamilyName)
	}
	return exitcode.Success
}

// ResendConfirmationCmd requests a fresh confirmation email.
type ResendConfirmationCmd struct{}

func (c *ResendConfirmationCmd) Name() string      { return "resend-confirmation" }
func (c *ResendConfirmationCmd) Aliases() []string { return nil }
func (c *ResendConfirmationCmd) Synopsis() string  { return "Resend the confirmation email" }
func (c *ResendConfirmationCmd) Usage() string     { return "hunnydu resend-confirmation <user-id>" }
func (c *ResendConfirmationCmd) NeedsAuth() bool   { return false }

func (c *ResendConfirmationCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ResendConfirmationCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: user id required")
		return exitcode.UserError
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid user id: %s\n", args[0])
		return exitcode.UserError
	}

	svc.ResendConfirmation(ctx, id)

	if !cfg.Quiet {
		fmt.Fprintln(out, "requested (check your email)")
	}
	return exitcode.Success
}
