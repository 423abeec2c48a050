package lint

import (
	"cmp"
	"slices"
	"sync"
)

// Registry holds all registered rules, keyed by name.
//
// Unlike registries populated by init(), a fmtlint registry is built from
// configuration at startup: every configured formatter profile becomes one
// registered rule.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Rule),
	}
}

// Register adds a rule to the registry.
// If a rule with the same name already exists, it is replaced.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[rule.Name()] = rule
}

// Get retrieves a rule by name.
func (r *Registry) Get(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byName[name]
	return rule, ok
}

// Rules returns all registered rules.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byName))
	for _, rule := range r.byName {
		result = append(result, rule)
	}

	// Sort by name for consistent, deterministic output.
	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.Name(), b.Name())
	})

	return result
}

// Names returns all registered rule names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byName))
	for name := range r.byName {
		result = append(result, name)
	}

	slices.Sort(result)
	return result
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}
