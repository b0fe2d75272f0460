package ruleset

import (
	"bytes"
	"io"
	"io/fs"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

var gzipMagic = []byte{0x1f, 0x8b}

func statSource(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(ErrFileNotFound, path)
		}
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Wrap(ErrNotAFile, path)
	}
	return info, nil
}

// withSource maps path read-only and hands the bytes to fn.
// The mapping is released when fn returns, so fn must not retain data.
func withSource(path string, fn func(data []byte) error) error {
	info, err := statSource(path)
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fn(nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return errors.Wrapf(err, "mmap %s", path)
	}
	defer m.Unmap()

	return fn(m)
}

// ReadSource returns a private copy of the rule file at path.
func ReadSource(path string) ([]byte, error) {
	var out []byte
	err := withSource(path, func(data []byte) error {
		out = bytes.Clone(data)
		return nil
	})
	return out, err
}

func decompress(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, gzipMagic) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(ErrMalformedRuleFile, err.Error())
	}
	defer zr.Close()
	plain, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedRuleFile, err.Error())
	}
	return plain, nil
}
