package ports

// SourceHasher fingerprints the files a bundle is built from.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type SourceHasher interface {
	// HashSources returns a hex digest over the paths and contents of every
	// file below dirs. Relative dirs resolve against root. Missing dirs are
	// hashed as empty.
	HashSources(root string, dirs ...string) (string, error)
}
