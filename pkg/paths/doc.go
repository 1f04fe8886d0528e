// Package paths resolves the well-known locations dotlink works with.
//
// It handles:
//
//   - Source root discovery (the dotfiles repository the links point into)
//   - Home and XDG config directories
//   - Expansion of configured link targets
//
// # Source root
//
// The source root is, in order of priority:
//
//  1. The explicit root passed to New (the --source flag)
//  2. The DOTFILES_ROOT environment variable
//  3. The top level of the git repository containing the working directory
//  4. The working directory itself (UsedFallback reports this case)
//
// # Targets
//
// Link targets may use ~, $HOME, $XDG_CONFIG_HOME and any other environment
// variable. $HOME and $XDG_CONFIG_HOME always expand, even when unset in the
// environment, to the values resolved here. A relative target is taken
// relative to the home directory.
package paths
