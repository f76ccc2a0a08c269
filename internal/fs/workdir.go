package fs

import (
	"os"
	"path/filepath"
)

// Environment variables consulted when neither an explicit path nor a
// configured workspace supplies a segment. Their absence is never an error;
// the documented defaults below apply instead.
const (
	// EnvDrive names the root under which project checkouts live.
	// Default: the user's home directory.
	EnvDrive = "RELKIT_DRIVE"

	// EnvMainDir names the directory segment joined onto the drive.
	// Default: "projects".
	EnvMainDir = "RELKIT_MAIN_DIR"
)

// DefaultMainDir is used when EnvMainDir is unset.
const DefaultMainDir = "projects"

// Workspace holds configured overrides for the drive and main-directory
// segments. Empty fields defer to the environment.
type Workspace struct {
	Drive   string
	MainDir string
}

// ResolveWorkingDir resolves the directory tag and clone operations run in.
// An explicit path wins verbatim. Otherwise the drive and main-directory
// segments come from the workspace overrides, then the environment, then the
// defaults, and are joined with the project name:
// <drive>/<mainDir>/<project>.
func ResolveWorkingDir(env EnvProvider, explicit string, ws Workspace, projectName string) string {
	if explicit != "" {
		return explicit
	}

	drive := ws.Drive
	if drive == "" {
		drive = env.Get(EnvDrive)
	}
	if drive == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		drive = home
	}

	mainDir := ws.MainDir
	if mainDir == "" {
		mainDir = env.Get(EnvMainDir)
	}
	if mainDir == "" {
		mainDir = DefaultMainDir
	}

	return filepath.Join(drive, mainDir, projectName)
}
