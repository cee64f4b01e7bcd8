package main

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// sessionFile remembers the last selected user between runs. It is read
// once at startup to bias initial user selection.
type sessionFile struct {
	CurrentUserID int64 `toml:"current_user_id"`
}

func sessionFilePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "fintui", "session.toml"), nil
}

// loadRememberedUser returns the remembered user id, or 0 when there is
// none. Any read failure counts as no remembered user.
func loadRememberedUser() int64 {
	path, err := sessionFilePath()
	if err != nil {
		return 0
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	var s sessionFile
	if err := toml.Unmarshal(data, &s); err != nil {
		return 0
	}

	return s.CurrentUserID
}

func saveRememberedUser(id int64) error {
	path, err := sessionFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(sessionFile{CurrentUserID: id})
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
