package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/packrat/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

var defaultDirMode os.FileMode = 0o700

// debugBinary matches the default output name of the dlv debugger.
var debugBinary = regexp.MustCompile(`^__debug_bin\d+$`)

// basePrefix is the directory name used under the user config and cache
// directories: the executable's base name without extension or leading
// dots, or [pkg.Name] when running under the debugger.
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimLeft(strings.TrimSuffix(id, filepath.Ext(id)), ".")

		if id == "" || debugBinary.MatchString(id) {
			return pkg.Name
		}

		return id
	},
)

// userDir returns the per-user directory reported by locate, falling back to
// hidden under the home directory, then to the working directory.
func userDir(locate func() (string, error), hidden string) string {
	if dir, err := locate(); err == nil {
		return filepath.Join(dir, basePrefix())
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, hidden, basePrefix())
	}

	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, basePrefix())
	}

	return basePrefix()
}

var (
	configDir = sync.OnceValue(func() string { return userDir(os.UserConfigDir, ".config") })
	cacheDir  = sync.OnceValue(func() string { return userDir(os.UserCacheDir, ".cache") })
)

// configPath joins elem onto the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
