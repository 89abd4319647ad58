// pattern: Imperative Shell

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".config.lock"

// Template is written by Init. Every setting is commented out so the
// defaults stay in effect until the user edits it.
const Template = `# sessionizer configuration
#
# Paths may start with ~ for the home directory.

# Directories whose children are offered as projects.
# search_paths:
#   - ~/projects
#   - ~/Development

# Directories offered as projects themselves.
# additional_paths:
#   - ~/dotfiles

# Regular expressions; a candidate matching any of them is skipped.
# Both the discovered and the symlink-resolved path are tested.
# exclude_patterns:
#   - /node_modules/
#   - /target$

# How many levels below each search path projects live.
# scan_depth: 1

# Offer directories whose name starts with a dot.
# include_hidden: false

# debug, info, warn or error. --debug forces debug.
# log_level: info

# Picker colors: latte, frappe, macchiato or mocha.
# theme: mocha

# "builtin", or a fuzzy finder reading lines on stdin, for example:
# picker: fzf --delimiter '\t' --with-nth 1 --height 40%

# tmux binary to run.
# tmux_bin: tmux
`

// Init writes Template to dir/config.yaml unless a config file already
// exists there. Concurrent runs are serialized with a file lock. It returns
// the config path and whether the file was created.
func Init(dir string) (string, bool, error) {
	path := filepath.Join(dir, FileName)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return path, false, fmt.Errorf("creating config directory: %w", err)
	}

	fl := flock.New(filepath.Join(dir, lockFileName))
	if err := fl.Lock(); err != nil {
		return path, false, fmt.Errorf("failed to acquire config lock: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return path, false, nil
		}
		return path, false, fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.WriteString(Template); err != nil {
		_ = f.Close()
		return path, false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return path, false, fmt.Errorf("writing %s: %w", path, err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		return path, true, err
	}
	return path, true, cfg.Validate()
}
