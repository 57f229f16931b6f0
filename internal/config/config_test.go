package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()

	cfg, err := Load(LoadInput{WorkDirOverride: workDir, Env: map[string]string{}})
	require.NoError(t, err)

	require.Equal(t, 75, cfg.Similarity)
	require.Equal(t, ColorAuto, cfg.Color)
	require.Equal(t, workDir, cfg.EffectiveCwd)
	require.Empty(t, cfg.Sources.Global)
	require.Empty(t, cfg.Sources.Project)
}

func TestLoadProjectConfig(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, FileName), `{
		// tighter matching for this list
		"similarity": 40,
	}`)

	cfg, err := Load(LoadInput{WorkDirOverride: workDir, Env: map[string]string{}})
	require.NoError(t, err)

	require.Equal(t, 40, cfg.Similarity)
	require.Equal(t, ColorAuto, cfg.Color, "unset options keep their defaults")
	require.Equal(t, filepath.Join(workDir, FileName), cfg.Sources.Project)
}

func TestLoadGlobalThenProject(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	configHome := t.TempDir()

	writeFile(t, filepath.Join(configHome, "tododiff", "config.json"),
		`{"similarity": 30, "color": "never"}`)
	writeFile(t, filepath.Join(workDir, FileName), `{"similarity": 60}`)

	cfg, err := Load(LoadInput{
		WorkDirOverride: workDir,
		Env:             map[string]string{"XDG_CONFIG_HOME": configHome},
	})
	require.NoError(t, err)

	require.Equal(t, 60, cfg.Similarity, "project config wins over global")
	require.Equal(t, ColorNever, cfg.Color, "global options survive when the project is silent")
	require.NotEmpty(t, cfg.Sources.Global)
	require.NotEmpty(t, cfg.Sources.Project)
}

func TestLoadGlobalFallsBackToHome(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	home := t.TempDir()

	writeFile(t, filepath.Join(home, ".config", "tododiff", "config.json"),
		`{"color": "always"}`)

	cfg, err := Load(LoadInput{
		WorkDirOverride: workDir,
		Env:             map[string]string{"HOME": home},
	})
	require.NoError(t, err)

	require.Equal(t, ColorAlways, cfg.Color)
}

func TestLoadExplicitConfigMustExist(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()

	_, err := Load(LoadInput{
		WorkDirOverride: workDir,
		ConfigPath:      "nope.json",
		Env:             map[string]string{},
	})
	require.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"similarity above range", `{"similarity": 101}`, ErrSimilarityRange},
		{"negative similarity", `{"similarity": -1}`, ErrSimilarityRange},
		{"unknown color mode", `{"color": "sometimes"}`, ErrBadColorMode},
		{"malformed json", `{"similarity": `, ErrConfigInvalid},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			workDir := t.TempDir()
			writeFile(t, filepath.Join(workDir, FileName), testCase.content)

			_, err := Load(LoadInput{WorkDirOverride: workDir, Env: map[string]string{}})
			require.Error(t, err)

			if !errors.Is(err, testCase.wantErr) {
				t.Errorf("err = %v, want %v", err, testCase.wantErr)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	formatted, err := Format(Default())
	require.NoError(t, err)

	require.Contains(t, formatted, `"similarity": 75`)
	require.Contains(t, formatted, `"color": "auto"`)
}
