package domain

import "path/filepath"

// ConfigFileName is the name of the config file in the data and global dirs.
const ConfigFileName = "config.toml"

// DataDir returns the flowsync data directory under the given base
// (typically $XDG_DATA_HOME or ~/.local/share).
func DataDir(base string) string {
	return filepath.Join(base, "flowsync")
}

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "flowsync")
}

// StorePath returns the default JSON store path.
func StorePath(dataDir string) string {
	return filepath.Join(dataDir, "store.json")
}

// LogsDir returns the log directory.
func LogsDir(dataDir string) string {
	return filepath.Join(dataDir, "logs")
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(LogsDir(dataDir), "flowsync.log")
}

// TaskLogPath returns the path to a task's log file.
func TaskLogPath(dataDir, taskID string) string {
	return filepath.Join(LogsDir(dataDir), "task-"+taskID+".log")
}

// ShortIDLength is the number of characters shown for IDs in listings.
const ShortIDLength = 10

// ShortID abbreviates an ID for display. Any unique prefix resolves back
// to the full ID.
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}
