package client

import (
	"encoding/json"
	"os"

	"github.com/ashokt15/taskmate/taskview"
)

const snapshotFileMode = 0o600

// loadSnapshot reads a previously persisted task snapshot.
func loadSnapshot(path string) ([]taskview.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tasks []taskview.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// saveSnapshot persists the snapshot, replacing any previous one
// atomically via a rename.
func saveSnapshot(path string, tasks []taskview.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, snapshotFileMode); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
