package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"hunnydu/internal/config"
	"hunnydu/internal/exitcode"
	"hunnydu/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	password string
	stdin    io.Reader // prompt source; defaults to os.Stdin
}

// SetPassword sets the password (for testing).
func (c *LoginCmd) SetPassword(p string) {
	c.password = p
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in to the chore service" }
func (c *LoginCmd) Usage() string     { return "hunnydu login [--password <pass>] <email>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password, "p", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	email := args[0]

	password := c.password
	if password == "" {
		var err error
		password, err = c.promptPassword(errOut)
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read password: %v\n", err)
			return exitcode.UserError
		}
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	result, err := svc.Login(ctx, email, password)
	if err != nil {
		return writeError(errOut, err)
	}

	if !result.Confirmed {
		fmt.Fprintf(errOut, "error: account not confirmed (run: hunnydu resend-confirmation %d)\n", result.UserID)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", email)
	}
	return exitcode.Success
}

// promptPassword reads a password line from stdin. The prompt goes to
// stderr so stdout stays scriptable.
func (c *LoginCmd) promptPassword(errOut io.Writer) (string, error) {
	in := c.stdin
	if in == nil {
		in = os.Stdin
	}
	fmt.Fprint(errOut, "Password: ")
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
