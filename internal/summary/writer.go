package summary

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Write serializes the summary to path, replacing any previous artifact.
// The payload goes through a temp file in the destination directory and
// is renamed into place, so a failed run never leaves a partial report.
func Write(s *Summary, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "unable to marshal summary")
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".summary-*.json")
	if err != nil {
		return errors.Wrapf(err, "unable to create temp file in %s", dir)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "unable to write summary to %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "unable to close %s", tmp.Name())
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrapf(err, "unable to set permissions on %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "unable to move summary to %s", path)
	}
	return nil
}

// Read loads a previously written summary artifact, used by the render
// layer and by consumers applying diffs between runs.
func Read(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read summary %s", path)
	}
	s := NewSummary()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "malformed summary %s", path)
	}
	return s, nil
}
