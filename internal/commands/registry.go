package commands

import (
	"fmt"
	"sort"
	"sync"
)

// Registry resolves command names and aliases to their implementations.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Command
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds a command under its name and every alias. Registration is
// all or nothing: a clash on any of them leaves the registry unchanged.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for _, n := range names {
		if taken, ok := r.byName[n]; ok {
			return fmt.Errorf("command name %s already taken by %s", n, taken.Name())
		}
	}
	for _, n := range names {
		r.byName[n] = c
	}
	return nil
}

// Find resolves a name or alias to its command.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// All returns every registered command once, sorted by primary name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	unique := make(map[string]Command, len(r.byName))
	for _, c := range r.byName {
		unique[c.Name()] = c
	}
	all := make([]Command, 0, len(unique))
	for _, c := range unique {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	return all
}

// DefaultRegistry holds the commands registered at init time.
var DefaultRegistry = NewRegistry()

// Register adds a command to DefaultRegistry, panicking on a name clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
