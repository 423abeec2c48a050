package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaklabco/fmtlint/pkg/config"
)

// mockRule for testing.
type mockRule struct {
	name string
}

func (m *mockRule) Name() string                       { return m.name }
func (m *mockRule) Description() string                { return "mock" }
func (m *mockRule) DefaultEnabled() bool               { return true }
func (m *mockRule) DefaultSeverity() config.Severity   { return config.SeverityWarning }
func (m *mockRule) Languages() []string                { return nil }
func (m *mockRule) Extensions() []string               { return nil }
func (m *mockRule) CanFix() bool                       { return false }
func (m *mockRule) Apply(*RunContext) ([]Violation, error) {
	return nil, nil
}

func TestRegistry_Get(t *testing.T) {
	reg := NewRegistry()
	rule := &mockRule{name: "rust"}
	reg.Register(rule)

	got, ok := reg.Get("rust")
	assert.True(t, ok)
	assert.Equal(t, "rust", got.Name())
}

func TestRegistry_Get_NotFound(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Get("nonexistent")
	assert.False(t, ok)
}

func TestRegistry_Register_Replaces(t *testing.T) {
	reg := NewRegistry()
	first := &mockRule{name: "rust"}
	second := &mockRule{name: "rust"}
	reg.Register(first)
	reg.Register(second)

	got, ok := reg.Get("rust")
	assert.True(t, ok)
	assert.Same(t, Rule(second), got)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_Rules_Sorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{name: "toml"})
	reg.Register(&mockRule{name: "rust"})
	reg.Register(&mockRule{name: "zig"})

	rules := reg.Rules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name()
	}

	assert.Equal(t, []string{"rust", "toml", "zig"}, names)
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{name: "toml"})
	reg.Register(&mockRule{name: "rust"})

	assert.Equal(t, []string{"rust", "toml"}, reg.Names())
}
