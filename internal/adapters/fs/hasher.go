package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/fusionary/internal/core/domain"
	"go.trai.ch/fusionary/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceHasher = (*Hasher)(nil)

// Hasher fingerprints source trees.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from walking the project tree
	if err != nil {
		return 0, domain.Because(domain.ErrSourceHashFailed, err, "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, domain.Because(domain.ErrSourceHashFailed, err, "path", path)
	}

	return hasher.Sum64(), nil
}

// HashSources hashes every file below dirs. Paths enter the digest relative
// to root so moving the project does not change it.
func (h *Hasher) HashSources(root string, dirs ...string) (string, error) {
	hasher := xxhash.New()

	for _, dir := range dirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		_, _ = hasher.WriteString(filepath.ToSlash(h.relative(root, dir)))
		_, _ = hasher.Write([]byte{0})

		for path, err := range h.walker.WalkFiles(dir) {
			if err != nil {
				return "", domain.Because(domain.ErrSourceHashFailed, err, "dir", dir)
			}
			if err := h.hashFile(root, path, hasher); err != nil {
				return "", err
			}
		}
		_, _ = hasher.Write([]byte{0}) // Section separator
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) hashFile(root, path string, digest io.Writer) error {
	_, _ = digest.Write([]byte(filepath.ToSlash(h.relative(root, path))))
	_, _ = digest.Write([]byte{0})

	sum, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}
	if err := binary.Write(digest, binary.LittleEndian, sum); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}

func (h *Hasher) relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
