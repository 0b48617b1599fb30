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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "hunnydu help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  hunnydu                                    List your tasks and the family's tasks
  hunnydu list [common flags]
  hunnydu add [common flags] --period <d|w|m> [--assignee <member-id>] --sub <name> ... <taskname...>
  hunnydu done [common flags] <ref.sub>      Toggle a subtask (e.g. 2.1, f1.3)
  hunnydu addsub [common flags] <ref> <name...>
  hunnydu rmsub [common flags] <ref.sub>
  hunnydu rm [common flags] <ref>            Delete a task (e.g. 2, f1)
  hunnydu family [common flags]              Show the family roster
  hunnydu createfamily [common flags] <name...>
  hunnydu invite [common flags] <email>
  hunnydu remove-member | promote | demote <member-id>
  hunnydu profile [user-id]
  hunnydu login [--password <pass>] <email>
  hunnydu logout
  hunnydu register <username> <email> <password>
  hunnydu confirm <token>                    Confirm a new account
  hunnydu confirm-invite <token>             Accept a family invite
  hunnydu resend-confirmation <user-id>
  hunnydu reset-request <email>              Request a password reset email
  hunnydu validate-reset <token>
  hunnydu reset-password <token> <new-password>
  hunnydu passwd <old-password> <new-password>
  hunnydu change-email <new-email>
  hunnydu confirm-email <token>
  hunnydu help
  hunnydu version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
