package domain

import "path/filepath"

const (
	// FusionaryDirName is the name of the internal project directory.
	FusionaryDirName = ".fusionary"

	// StateFileName is the name of the build state file inside FusionaryDirName.
	StateFileName = "state.json"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "fusionary.yaml"

	// EnvFileName is the name of the optional dotenv file in the project root.
	EnvFileName = ".env"

	// ManifestFileName is the name of the asset manifest written next to the bundle.
	ManifestFileName = "manifest.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultFusionaryPath returns the default root directory for fusionary metadata.
func DefaultFusionaryPath() string {
	return FusionaryDirName
}

// DefaultStatePath returns the default path of the build state file.
// It joins .fusionary and state.json.
func DefaultStatePath() string {
	return filepath.Join(FusionaryDirName, StateFileName)
}
