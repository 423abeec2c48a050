package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/fmtlint/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Run("minimal template is valid yaml", func(t *testing.T) {
		out, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)

		cfg, err := config.FromYAML(out)
		require.NoError(t, err)
		require.Contains(t, cfg.Profiles, "rust")
		assert.Equal(t, "rustfmt", cfg.Profiles["rust"].Command)
	})

	t.Run("full template documents all settings", func(t *testing.T) {
		out, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		text := string(out)
		assert.Contains(t, text, "severity_default:")
		assert.Contains(t, text, "max_passes:")
		assert.Contains(t, text, "backups:")
		assert.Contains(t, text, "profiles:")
		assert.Contains(t, text, "command: rustfmt")

		// The uncommented portion must parse
		cfg, err := config.FromYAML(out)
		require.NoError(t, err)
		assert.Contains(t, cfg.Profiles, "rust")
	})

	t.Run("json template is valid json", func(t *testing.T) {
		out, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var parsed map[string]any
		require.NoError(t, json.Unmarshal(out, &parsed))
		assert.Contains(t, parsed, "profiles")
	})
}
