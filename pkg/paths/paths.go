package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for the source root
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvXDGConfigHome is the XDG config home variable, also usable in targets
	EnvXDGConfigHome = "XDG_CONFIG_HOME"
)

// Paths provides the resolved locations for one dotlink run
type Paths interface {
	SourceRoot() string
	UsedFallback() bool
	HomeDir() string
	ConfigHome() string
	SourcePath(rel string) string
	ExpandTarget(target string) (string, error)
	NormalizePath(path string) (string, error)
}

type paths struct {
	sourceRoot   string
	usedFallback bool
	home         string
	configHome   string
}

// New creates a new Paths instance with the given source root.
// If sourceRoot is empty, it will be determined from the environment,
// git, or the working directory.
func New(sourceRoot string) (Paths, error) {
	// Environment may have changed since package init
	xdg.Reload()

	home, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}

	p := &paths{
		home:       home,
		configHome: xdg.ConfigHome,
	}

	if sourceRoot == "" {
		root, usedFallback, err := findSourceRoot()
		if err != nil {
			return nil, err
		}
		p.sourceRoot = root
		p.usedFallback = usedFallback
	} else {
		p.sourceRoot = expandHome(sourceRoot, home)
	}

	absRoot, err := filepath.Abs(p.sourceRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for source root")
	}
	p.sourceRoot = absRoot

	return p, nil
}

// findSourceRoot determines the source root using the following priority:
// 1. DOTFILES_ROOT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
func findSourceRoot() (string, bool, error) {
	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		home, _ := GetHomeDirectory()
		return expandHome(root, home), false, nil
	}

	log := logging.GetLogger("paths")

	gitRoot, err := findGitRoot()
	if err == nil {
		log.Debug().Str("root", gitRoot).Msg("Using git repository root as source root")
		return gitRoot, false, nil
	}
	log.Debug().Err(err).Msg("Git root not found, falling back to working directory")

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	args := []string{"rev-parse", "--show-toplevel"}
	logging.LogCommand("git", args)

	output, err := exec.Command("git", args...).Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// expandHome expands a leading ~ or ~/ to home
func expandHome(path, home string) string {
	if path == "" || path[0] != '~' || home == "" {
		return path
	}
	if len(path) == 1 {
		return home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}
	// ~user is not expanded
	return path
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}

// SourceRoot returns the directory link originals live in
func (p *paths) SourceRoot() string {
	return p.sourceRoot
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// HomeDir returns the user's home directory
func (p *paths) HomeDir() string {
	return p.home
}

// ConfigHome returns $XDG_CONFIG_HOME, or its default
func (p *paths) ConfigHome() string {
	return p.configHome
}

// SourcePath maps a configured source to an absolute path under the source root
func (p *paths) SourcePath(rel string) string {
	rel = expandHome(rel, p.home)
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(p.sourceRoot, rel)
}

// ExpandTarget expands ~ and environment variables in a configured target and
// makes it absolute. Relative targets are relative to the home directory.
func (p *paths) ExpandTarget(target string) (string, error) {
	if err := ValidatePath(target); err != nil {
		return "", err
	}

	expanded := expandHome(target, p.home)
	expanded = os.Expand(expanded, func(name string) string {
		switch name {
		case EnvHome:
			return p.home
		case EnvXDGConfigHome:
			return p.configHome
		default:
			return os.Getenv(name)
		}
	})

	if expanded == "" {
		return "", errors.Newf(errors.ErrInvalidInput, "target %q expands to an empty path", target)
	}
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(p.home, expanded)
	}
	return filepath.Clean(expanded), nil
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path, p.home))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}
	return filepath.Clean(abs), nil
}
