package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/matzehuels/alnglyph/pkg/errors"
)

// stdoutPath is the output path that selects standard output.
const stdoutPath = "-"

// writeArtifacts writes each rendered format to its own file and returns
// the paths written. A single format with an explicit output goes exactly
// there; "-" sends it to w.
func writeArtifacts(w io.Writer, artifacts map[string][]byte, input, output string) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	if len(formats) == 1 && output != "" {
		data := artifacts[formats[0]]
		if output == stdoutPath {
			_, err := w.Write(data)
			return nil, err
		}
		if err := writeFile(output, data); err != nil {
			return nil, err
		}
		return []string{output}, nil
	}
	if output == stdoutPath {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(formats))
	}

	base := basePath(output, input)
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := fmt.Sprintf("%s.%s", base, f)
		if err := writeFile(path, artifacts[f]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", path)
	}
	return nil
}
