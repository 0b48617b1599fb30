package commands

import (
	"context"
	"flag"
	"io"
	"testing"

	"hunnydu/internal/config"
	"hunnydu/internal/service"
)

// stubCmd is a minimal Command for registry tests.
type stubCmd struct {
	name    string
	aliases []string
}

func (s *stubCmd) Name() string                     { return s.name }
func (s *stubCmd) Aliases() []string                { return s.aliases }
func (s *stubCmd) Synopsis() string                 { return "" }
func (s *stubCmd) Usage() string                    { return "" }
func (s *stubCmd) NeedsAuth() bool                  { return false }
func (s *stubCmd) RegisterFlags(fs *flag.FlagSet)   {}
func (s *stubCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return 0
}

func TestRegistryFindByNameAndAlias(t *testing.T) {
	reg := NewRegistry()
	cmd := &stubCmd{name: "list", aliases: []string{"ls", "tasks"}}
	if err := reg.Register(cmd); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, name := range []string{"list", "ls", "tasks"} {
		got, ok := reg.Find(name)
		if !ok || got != cmd {
			t.Errorf("Find(%q) = %v, %v; want the registered command", name, got, ok)
		}
	}
	if _, ok := reg.Find("nope"); ok {
		t.Error("expected unknown name to miss")
	}
}

func TestRegistryRejectsClashes(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&stubCmd{name: "list", aliases: []string{"ls"}}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := reg.Register(&stubCmd{name: "list"}); err == nil {
		t.Error("expected an error for a duplicate name")
	}
	if err := reg.Register(&stubCmd{name: "lint", aliases: []string{"ls"}}); err == nil {
		t.Error("expected an error for a duplicate alias")
	}

	// A rejected registration must not leave partial entries behind.
	if _, ok := reg.Find("lint"); ok {
		t.Error("expected the clashing command to be absent entirely")
	}
}

func TestRegistryAllUniqueAndSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubCmd{name: "rm", aliases: []string{"delete"}})
	reg.Register(&stubCmd{name: "add", aliases: []string{"create"}})
	reg.Register(&stubCmd{name: "list"})

	all := reg.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(all))
	}
	want := []string{"add", "list", "rm"}
	for i, name := range want {
		if all[i].Name() != name {
			t.Errorf("All()[%d] = %s, want %s", i, all[i].Name(), name)
		}
	}
}
