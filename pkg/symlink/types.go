package symlink

// State classifies what currently sits at a link path.
type State string

const (
	// StateMissing means nothing exists at the link path.
	StateMissing State = "missing"
	// StateLinked means the link is a symlink resolving to the original.
	StateLinked State = "linked"
	// StateWrongTarget means the link is a symlink resolving elsewhere.
	StateWrongTarget State = "wrong_target"
	// StateDangling means the link is a symlink whose target cannot be resolved.
	StateDangling State = "dangling"
	// StateNotSymlink means a regular file, directory or other entry is in the way.
	StateNotSymlink State = "not_symlink"
)

// NeedsReplacement reports whether the entry at the link path has to be
// backed up before the symlink can be created.
func (s State) NeedsReplacement() bool {
	switch s {
	case StateWrongTarget, StateDangling, StateNotSymlink:
		return true
	default:
		return false
	}
}

// Action is what a reconciliation did, or would do in dry-run mode.
type Action string

const (
	ActionAlreadyLinked Action = "already_linked"
	ActionCreated       Action = "created"
	ActionReplaced      Action = "replaced"
	// ActionRaceSatisfied means creation lost a race to another process that
	// created the very same link.
	ActionRaceSatisfied Action = "race_satisfied"
)

// Result describes one reconciliation.
type Result struct {
	Original string `json:"original"`
	Link     string `json:"link"`
	State    State  `json:"state"`
	Action   Action `json:"action"`
	// CurrentTarget is the target stored in a pre-existing symlink.
	CurrentTarget string `json:"current_target,omitempty"`
	// BackupPath is where the displaced entry was (or would be) moved.
	BackupPath string `json:"backup_path,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty"`
}

// Changed reports whether the reconciliation mutated, or would mutate, the filesystem.
func (r *Result) Changed() bool {
	return r.Action == ActionCreated || r.Action == ActionReplaced
}
