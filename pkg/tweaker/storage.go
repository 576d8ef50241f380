package tweaker

import "os"

// Storage is the only contact a Script has with the outside world.
// WriteWholeFile overwrites path unconditionally.
type Storage interface {
	WriteWholeFile(path, content string) error
	ReadWholeFile(path string) (string, error)
}

// OSStorage stores scripts on the local filesystem.
// Parent directories are not created.
type OSStorage struct{}

func (OSStorage) WriteWholeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func (OSStorage) ReadWholeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
