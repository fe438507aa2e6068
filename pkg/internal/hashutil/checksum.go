package hashutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/arthur-debert/hamstercage/pkg/filesystem"
)

// Checksum returns the SHA256 checksum of everything read from r
func Checksum(r io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}

// FileChecksum calculates the SHA256 checksum of a file
func FileChecksum(fsys filesystem.FS, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Checksum(bytes.NewReader(data))
}

// SameContent reports whether two files have identical content
func SameContent(fsys filesystem.FS, a, b string) (bool, error) {
	sumA, err := FileChecksum(fsys, a)
	if err != nil {
		return false, err
	}
	sumB, err := FileChecksum(fsys, b)
	if err != nil {
		return false, err
	}
	return sumA == sumB, nil
}
