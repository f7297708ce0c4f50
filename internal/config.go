package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

const configFileEnv = "KANBANTERM_CONFIG"

var ErrInvalidBinding = errors.New("invalid key binding")

// Config represents the application configuration
type Config struct {
	Board BoardConfig `toml:"board"`
	Keys  KeyConfig   `toml:"keys"`
	Log   LogConfig   `toml:"log"`
}

// BoardConfig contains board file and task-entry settings
type BoardConfig struct {
	File            string `toml:"file"`
	AllowBlankTasks bool   `toml:"allow_blank_tasks"`
}

// KeyConfig holds the characters bound to Navigate-mode commands
type KeyConfig struct {
	Promote []string `toml:"promote"`
	Demote  []string `toml:"demote"`
	Insert  []string `toml:"insert"`
	Delete  []string `toml:"delete"`
	Quit    []string `toml:"quit"`
}

// LogConfig controls the session log
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Board: BoardConfig{
			AllowBlankTasks: true,
		},
		Keys: KeyConfig{
			Promote: []string{"k", "]"},
			Demote:  []string{"j", "["},
			Insert:  []string{"i"},
			Delete:  []string{"d"},
			Quit:    []string{"q"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// UserConfigPath returns $KANBANTERM_CONFIG or the per-user config.toml location.
func UserConfigPath() (string, error) {
	if path := os.Getenv(configFileEnv); path != "" {
		return filepath.Clean(path), nil
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "kanbanterm", "config.toml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "kanbanterm", "config.toml"), nil
}

// LoadConfig loads configuration from path. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		var err error
		path, err = UserConfigPath()
		if err != nil {
			return config, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks that every binding is one character and that no character
// is bound to two commands.
func (c *Config) Validate() error {
	if _, err := c.Bindings(); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Bindings converts the [keys] section into controller bindings.
func (c *Config) Bindings() (Bindings, error) {
	bindings := Bindings{}
	groups := []struct {
		name    string
		keys    []string
		command Command
	}{
		{"promote", c.Keys.Promote, CommandPromote},
		{"demote", c.Keys.Demote, CommandDemote},
		{"insert", c.Keys.Insert, CommandInsert},
		{"delete", c.Keys.Delete, CommandDelete},
		{"quit", c.Keys.Quit, CommandQuit},
	}
	for _, group := range groups {
		if len(group.keys) == 0 {
			return nil, fmt.Errorf("%w: %s has no keys", ErrInvalidBinding, group.name)
		}
		for _, key := range group.keys {
			if utf8.RuneCountInString(key) != 1 {
				return nil, fmt.Errorf("%w: %s key %q must be a single character", ErrInvalidBinding, group.name, key)
			}
			r, _ := utf8.DecodeRuneInString(key)
			if existing, ok := bindings[r]; ok && existing != group.command {
				return nil, fmt.Errorf("%w: %q is bound more than once", ErrInvalidBinding, key)
			}
			bindings[r] = group.command
		}
	}
	return bindings, nil
}

// BoardFilePath resolves the board file: flag, then environment, then config, then default.
func (c *Config) BoardFilePath(flagValue string) string {
	if flagValue != "" {
		return filepath.Clean(flagValue)
	}
	if path := os.Getenv(boardFileEnv); path != "" {
		return filepath.Clean(path)
	}
	if c.Board.File != "" {
		return expandHome(c.Board.File)
	}
	return DefaultBoardFilePath()
}

func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return filepath.Clean(path)
}

// SaveDefaultConfig creates a default config file at path unless one exists
func SaveDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	content := `# kanbanterm configuration

[board]
# Board file. KANBANTERM_FILE and --file take precedence.
# Writers share a hidden ".<name>.lock" file in the same directory.
# file = "~/kanbanterm.json"
# Create a task when Enter is pressed on an empty input line
allow_blank_tasks = true

[keys]
# Single characters used in navigate mode. Arrow keys and Delete always work.
promote = ["k", "]"]
demote = ["j", "["]
insert = ["i"]
delete = ["d"]
quit = ["q"]

[log]
# debug, info, warn or error
level = "info"
# The board owns the terminal, so session logs only go to a file.
# file = "~/.local/state/kanbanterm.log"
`

	_, err = file.WriteString(content)
	return err
}
