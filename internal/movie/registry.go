package movie

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownPolicy is returned when a policy name is not registered.
var ErrUnknownPolicy = errors.New("unknown validation policy")

var (
	registry   = make(map[string]Policy)
	registryMu sync.RWMutex
)

func init() {
	Register(Bracketed)
	Register(Plain)
}

// Register adds a policy to the registry.
// Panics if the policy is invalid or its name is already registered.
func Register(p Policy) {
	if err := p.Validate(); err != nil {
		panic(err.Error())
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[p.Name]; exists {
		panic(fmt.Sprintf("policy already registered: %s", p.Name))
	}
	registry[p.Name] = p
}

// PolicyByName returns a registered policy.
func PolicyByName(name string) (Policy, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	p, ok := registry[name]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	return p, nil
}

// PolicyNames returns all registered policy names, sorted.
func PolicyNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

