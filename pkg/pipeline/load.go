package pipeline

import (
	"bytes"
	"os"

	"github.com/matzehuels/alnglyph/pkg/cache"
	"github.com/matzehuels/alnglyph/pkg/errors"
	alnio "github.com/matzehuels/alnglyph/pkg/io"
)

// Input is a loaded alignment description.
type Input struct {
	Path string
	Hash string // content hash of the file, the root of every cache key
	Doc  *alnio.Document
}

// Load reads and validates the alignment description at path.
func Load(path string) (*Input, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	doc, err := alnio.ReadAlignment(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return &Input{Path: path, Hash: cache.Hash(data), Doc: doc}, nil
}
