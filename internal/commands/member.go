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
	Register(&RemoveMemberCmd{})
	Register(&PromoteCmd{})
	Register(&DemoteCmd{})
}

// memberAction runs a membership change against a member ID argument.
func memberAction(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer,
	action func(context.Context, int) error) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: member id required")
		return exitcode.UserError
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid member id: %s\n", args[0])
		return exitcode.UserError
	}

	if err := action(ctx, id); err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// RemoveMemberCmd removes a member and their tasks from the family.
type RemoveMemberCmd struct{}

func (c *RemoveMemberCmd) Name() string      { return "remove-member" }
func (c *RemoveMemberCmd) Aliases() []string { return nil }
func (c *RemoveMemberCmd) Synopsis() string  { return "Remove a family member" }
func (c *RemoveMemberCmd) Usage() string     { return "hunnydu remove-member <member-id>" }
func (c *RemoveMemberCmd) NeedsAuth() bool   { return true }

func (c *RemoveMemberCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RemoveMemberCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return memberAction(ctx, cfg, svc, args, out, errOut, svc.RemoveFamilyMember)
}

// PromoteCmd grants a member leader permissions.
type PromoteCmd struct{}

func (c *PromoteCmd) Name() string      { return "promote" }
func (c *PromoteCmd) Aliases() []string { return nil }
func (c *PromoteCmd) Synopsis() string  { return "Make a member a leader" }
func (c *PromoteCmd) Usage() string     { return "hunnydu promote <member-id>" }
func (c *PromoteCmd) NeedsAuth() bool   { return true }

func (c *PromoteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PromoteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return memberAction(ctx, cfg, svc, args, out, errOut, svc.MakeLeader)
}

// DemoteCmd revokes a member's leader permissions.
type DemoteCmd struct{}

func (c *DemoteCmd) Name() string      { return "demote" }
func (c *DemoteCmd) Aliases() []string { return nil }
func (c *DemoteCmd) Synopsis() string  { return "Revoke a member's leadership" }
func (c *DemoteCmd) Usage() string     { return "hunnydu demote <member-id>" }
func (c *DemoteCmd) NeedsAuth() bool   { return true }

func (c *DemoteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DemoteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return memberAction(ctx, cfg, svc, args, out, errOut, svc.UnmakeLeader)
}
