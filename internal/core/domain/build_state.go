package domain

import "time"

// BuildState records the last successful bundle of a project.
type BuildState struct {
	Fingerprint string    `json:"fingerprint"`
	Sources     string    `json:"sources,omitempty"`
	Mode        Mode      `json:"mode"`
	Outputs     []string  `json:"outputs,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// BundleResult is what the bundler produced for a snapshot.
type BundleResult struct {
	// Outputs are the written files, relative to the project root.
	Outputs  []string
	Warnings []string
	// Manifest maps entry names to output files. Nil when no manifest was requested.
	Manifest map[string]string
}
