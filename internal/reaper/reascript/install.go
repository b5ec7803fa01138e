package reascript

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

//go:embed bridge.lua
var bridgeScript string

const (
	scriptName  = "reaper_mcp_bridge.lua"
	startupName = "__startup.lua"
)

// Installer writes the bridge script into a REAPER resource directory and
// registers it in Scripts/__startup.lua so it runs on every launch. The same
// configuration step reapy-style integrations perform by hand.
type Installer struct {
	// ResourceDir is the REAPER resource path. Empty means the platform
	// default for the current user.
	ResourceDir string

	// Section overrides the ExtState section baked into the script.
	Section string
}

// DefaultResourceDir returns the per-user REAPER resource path for the
// current platform.
func DefaultResourceDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		appdata := os.Getenv("APPDATA")
		if appdata == "" {
			return "", fmt.Errorf("APPDATA is not set")
		}
		return filepath.Join(appdata, "REAPER"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "REAPER"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "REAPER"), nil
	}
}

// Install writes the bridge script and ensures the startup registration.
// It reports whether anything on disk changed; a true result means REAPER
// must be restarted (or the script run once by hand) before the bridge
// answers.
func (ins *Installer) Install() (bool, error) {
	dir := ins.ResourceDir
	if dir == "" {
		var err error
		dir, err = DefaultResourceDir()
		if err != nil {
			return false, fmt.Errorf("locate REAPER resource directory: %w", err)
		}
	}
	scriptsDir := filepath.Join(dir, "Scripts")
	if err := os.MkdirAll(scriptsDir, 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", scriptsDir, err)
	}

	changed, err := ins.writeScript(filepath.Join(scriptsDir, scriptName))
	if err != nil {
		return false, err
	}
	registered, err := ensureStartupLine(filepath.Join(scriptsDir, startupName))
	if err != nil {
		return false, err
	}
	return changed || registered, nil
}

func (ins *Installer) writeScript(path string) (bool, error) {
	script := bridgeScript
	if ins.Section != "" && ins.Section != DefaultSection {
		script = strings.Replace(script,
			`local SECTION = "`+DefaultSection+`"`,
			`local SECTION = "`+ins.Section+`"`, 1)
	}
	current, err := os.ReadFile(path)
	if err == nil && string(current) == script {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return false, fmt.Errorf("write bridge script: %w", err)
	}
	return true, nil
}

func ensureStartupLine(path string) (bool, error) {
	line := `dofile(reaper.GetResourcePath() .. "/Scripts/` + scriptName + `")`

	current, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read %s: %w", startupName, err)
	}
	if strings.Contains(string(current), scriptName) {
		return false, nil
	}

	content := string(current)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += line + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", startupName, err)
	}
	return true, nil
}
