package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"hunnydu/internal/config"
	"hunnydu/internal/exitcode"
	"hunnydu/internal/output"
	"hunnydu/internal/service"
)

func init() {
	Register(&FamilyCmd{})
	Register(&CreateFamilyCmd{})
	Register(&InviteCmd{})
}

// FamilyCmd implements the family command: refresh and render the roster.
type FamilyCmd struct{}

func (c *FamilyCmd) Name() string      { return "family" }
func (c *FamilyCmd) Aliases() []string { return []string{"members"} }
func (c *FamilyCmd) Synopsis() string  { return "Show the family roster" }
func (c *FamilyCmd) Usage() string     { return "hunnydu family [common flags]" }
func (c *FamilyCmd) NeedsAuth() bool   { return true }

func (c *FamilyCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *FamilyCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := svc.RefreshFamily(ctx); err != nil {
		return writeError(errOut, err)
	}

	session := svc.Session()
	if session.FamilyName == "" && len(session.Members) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no family (run: hunnydu createfamily <name>)")
		}
		return exitcode.Success
	}

	output.FormatSectionHeader(out, session.FamilyName)
	for _, member := range session.Members {
		output.FormatMember(out, member)
	}
	return exitcode.Success
}

// CreateFamilyCmd implements the createfamily command.
type CreateFamilyCmd struct{}

func (c *CreateFamilyCmd) Name() string      { return "createfamily" }
func (c *CreateFamilyCmd) Aliases() []string { return nil }
func (c *CreateFamilyCmd) Synopsis() string  { return "Create a family" }
func (c *CreateFamilyCmd) Usage() string     { return "hunnydu createfamily <name...>" }
func (c *CreateFamilyCmd) NeedsAuth() bool   { return true }

func (c *CreateFamilyCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CreateFamilyCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: family name required")
		return exitcode.UserError
	}

	if err := svc.CreateFamily(ctx, name); err != nil {
		return writeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created family %s\n", svc.Session().FamilyName)
	}
	return exitcode.Success
}

// InviteCmd implements the invite command.
type InviteCmd struct{}

func (c *InviteCmd) Name() string      { return "invite" }
func (c *InviteCmd) Aliases() []string { return nil }
func (c *InviteCmd) Synopsis() string  { return "Email a family invite" }
func (c *InviteCmd) Usage() string     { return "hunnydu invite <email>" }
func (c *InviteCmd) NeedsAuth() bool   { return true }

func (c *InviteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *InviteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	svc.SendFamilyInvite(ctx, args[0])

	if !cfg.Quiet {
		fmt.Fprintln(out, "invite requested")
	}
	return exitcode.Success
}
