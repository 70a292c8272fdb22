package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateNode is returned when adding a node whose name already exists in its table.
	ErrDuplicateNode = zerr.New("node already exists")

	// ErrNodeNotFound is returned when an operation requires a node that does not exist.
	ErrNodeNotFound = zerr.New("node not found")

	// ErrDescriptorFinalized is returned when a finalized descriptor is mutated.
	ErrDescriptorFinalized = zerr.New("descriptor is finalized")

	// ErrInvalidPhaseTransition is returned when the descriptor lifecycle is moved backwards.
	ErrInvalidPhaseTransition = zerr.New("invalid descriptor phase transition")

	// ErrPredicateFailed is returned when a branch predicate cannot be evaluated.
	ErrPredicateFailed = zerr.New("branch predicate failed")

	// ErrInvalidMatcher is returned when a rule matcher pattern does not compile.
	ErrInvalidMatcher = zerr.New("invalid rule matcher")

	// ErrMiddlewareFailed is returned when a middleware leaves the descriptor in an error state.
	ErrMiddlewareFailed = zerr.New("middleware failed")

	// ErrConfigNotFound is returned when no configuration file can be discovered.
	ErrConfigNotFound = zerr.New("could not find fusionary.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEnvFileReadFailed is returned when the .env file exists but cannot be parsed.
	ErrEnvFileReadFailed = zerr.New("failed to read env file")

	// ErrNoEntryPoints is returned when a finalized descriptor has nothing to bundle.
	ErrNoEntryPoints = zerr.New("no entry points configured")

	// ErrBundleFailed is returned when the bundler reports errors.
	ErrBundleFailed = zerr.New("bundle failed")

	// ErrManifestWriteFailed is returned when the asset manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write asset manifest")

	// ErrStoreReadFailed is returned when the fingerprint store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build state")

	// ErrStoreWriteFailed is returned when the fingerprint store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build state")

	// ErrSourceHashFailed is returned when a source file cannot be read for fingerprinting.
	ErrSourceHashFailed = zerr.New("failed to hash source files")

	// ErrRenderFailed is returned when a snapshot cannot be encoded.
	ErrRenderFailed = zerr.New("failed to render descriptor")

	// ErrUnknownFormat is returned when an unsupported render format is requested.
	ErrUnknownFormat = zerr.New("unknown output format, expected 'yaml' or 'json'")

	// ErrUnknownMode is returned when the mode flag is not a recognised mode.
	ErrUnknownMode = zerr.New("unknown mode, expected 'development' or 'production'")
)

// annotate wraps a sentinel with a message and metadata pairs.
// Wrapping first keeps the sentinel reachable through errors.Is; zerr.With
// on the bare sentinel would copy it and lose its identity.
func annotate(sentinel error, msg string, kv ...any) error {
	err := zerr.Wrap(sentinel, msg)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		err = zerr.With(err, key, kv[i+1])
	}
	return err
}

// Because reports cause under sentinel. The result matches both through
// errors.Is and reads as the sentinel message followed by the cause.
func Because(sentinel, cause error, kv ...any) error {
	if cause == nil {
		return nil
	}
	return annotate(&causedBy{sentinel: sentinel, cause: cause}, sentinel.Error(), kv...)
}

// causedBy is a link with no message of its own that matches sentinel.
type causedBy struct {
	sentinel error
	cause    error
}

func (e *causedBy) Error() string { return e.cause.Error() }

func (e *causedBy) Message() string { return "" }

func (e *causedBy) Unwrap() error { return e.cause }

func (e *causedBy) Is(target error) bool { return target == e.sentinel }
