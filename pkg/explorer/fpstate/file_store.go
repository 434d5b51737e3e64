package fpstate

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/filepanel/filepanel/pkg/fsutils"
)

const defaultSettingsDir = "~/.config/filepanel"
const stateFileName = "filepanel-state.json"

var readJSON = fsutils.ReadJSONFile
var writeJSON = fsutils.WriteJSONFile
var osMkdirAll = os.MkdirAll

var _ Store = (*FileStore)(nil)

// FileStore keeps all keys in one JSON file under the settings
// directory, created on first write.
type FileStore struct {
	path string
}

// NewFileStore opens a store at path; an empty path selects the default
// state file under ~/.config/filepanel.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = filepath.Join(fsutils.ExpandHome(defaultSettingsDir), stateFileName)
	}
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) load() (map[string]json.RawMessage, error) {
	values := map[string]json.RawMessage{}
	if err := readJSON(s.path, false, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *FileStore) Get(key string, value any) (bool, error) {
	values, err := s.load()
	if err != nil {
		return false, err
	}
	raw, ok := values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, value); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) Set(key string, value any) error {
	values, err := s.load()
	if err != nil {
		// A corrupt state file is replaced rather than kept broken.
		values = map[string]json.RawMessage{}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	values[key] = raw
	if err := osMkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return writeJSON(s.path, values)
}
