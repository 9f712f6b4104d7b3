package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"nboutline/pkg/utils"
)

// Parse decodes notebook JSON into a Notebook.
func Parse(data []byte) (*Notebook, error) {
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrNotebookFormat, err)
	}
	return &nb, nil
}

// Read loads and parses a notebook file.
func Read(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrFilesystem, err)
	}
	nb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nb, nil
}

// Marshal renders the notebook the way the reference tooling writes it:
// single-space indent, object keys sorted, trailing newline. Round-tripping
// a file saved by the frontend keeps diffs down to the edited cells.
func Marshal(nb *Notebook) ([]byte, error) {
	data, err := json.MarshalIndent(nb, "", " ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrNotebookFormat, err)
	}
	return append(data, '\n'), nil
}

// Write serializes the notebook and replaces path atomically, so an
// interrupted run never leaves a truncated file behind.
func Write(path string, nb *Notebook) error {
	data, err := Marshal(nb)
	if err != nil {
		return err
	}
	return WriteBytes(path, data)
}

// WriteBytes atomically replaces path with already-serialized notebook JSON.
func WriteBytes(path string, data []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: write %s: %w", utils.ErrFilesystem, path, err)
	}
	return nil
}
