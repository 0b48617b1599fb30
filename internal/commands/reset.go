package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"hunnydu/internal/config"
	"hunnydu/internal/exitcode"
	"hunnydu/internal/service"
)

func init() {
	Register(&ResetRequestCmd{})
	Register(&ValidateResetCmd{})
	Register(&ResetPasswordCmd{})
	Register(&PasswdCmd{})
}

// ResetRequestCmd asks for a password reset email.
type ResetRequestCmd struct{}

func (c *ResetRequestCmd) Name() string      { return "reset-request" }
func (c *ResetRequestCmd) Aliases() []string { return nil }
func (c *ResetRequestCmd) Synopsis() string  { return "Request a password reset email" }
func (c *ResetRequestCmd) Usage() string     { return "hunnydu reset-request <email>" }
func (c *ResetRequestCmd) NeedsAuth() bool   { return false }

func (c *ResetRequestCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ResetRequestCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	svc.RequestPasswordReset(ctx, args[0])

	if !cfg.Quiet {
		fmt.Fprintln(out, "requested (check your email)")
	}
	return exitcode.Success
}

// ValidateResetCmd checks a reset token before a new password is chosen.
type ValidateResetCmd struct{}

func (c *ValidateResetCmd) Name() string      { return "validate-reset" }
func (c *ValidateResetCmd) Aliases() []string { return nil }
func (c *ValidateResetCmd) Synopsis() string  { return "Check a password reset token" }
func (c *ValidateResetCmd) Usage() string     { return "hunnydu validate-reset <token>" }
func (c *ValidateResetCmd) NeedsAuth() bool   { return false }

func (c *ValidateResetCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ValidateResetCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: token required")
		return exitcode.UserError
	}

	if err := svc.ValidateResetToken(ctx, args[0]); err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "token valid")
	}
	return exitcode.Success
}

// ResetPasswordCmd sets a new password using a reset token.
type ResetPasswordCmd struct{}

func (c *ResetPasswordCmd) Name() string      { return "reset-password" }
func (c *ResetPasswordCmd) Aliases() []string { return nil }
func (c *ResetPasswordCmd) Synopsis() string  { return "Reset a forgotten password" }
func (c *ResetPasswordCmd) Usage() string     { return "hunnydu reset-password <token> <new-password>" }
func (c *ResetPasswordCmd) NeedsAuth() bool   { return false }

func (c *ResetPasswordCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ResetPasswordCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: token and new password required")
		return exitcode.UserError
	}

	if err := svc.ResetPassword(ctx, args[0], args[1]); err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// PasswdCmd changes the logged-in user's password.
type PasswdCmd struct{}

func (c *PasswdCmd) Name() string      { return "passwd" }
func (c *PasswdCmd) Aliases() []string { return nil }
func (c *PasswdCmd) Synopsis() string  { return "Change your password" }
func (c *PasswdCmd) Usage() string     { return "hunnydu passwd <old-password> <new-password>" }
func (c *PasswdCmd) NeedsAuth() bool   { return true }

func (c *PasswdCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PasswdCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: old and new password required")
		return exitcode.UserError
	}

	if err := svc.ChangePassword(ctx, args[0], args[1]); err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
