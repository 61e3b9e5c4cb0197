package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/fitdash/internal/dataset"
	"github.com/KaramelBytes/fitdash/internal/utils"
)

const ManifestFileName = "manifest.json"

// Manifest describes an exported report bundle persisted on disk.
type Manifest struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Dataset      string            `json:"dataset"`
	Selection    dataset.Selection `json:"selection"`
	TotalRows    int               `json:"total_rows"`
	FilteredRows int               `json:"filtered_rows"`
	Pages        []string          `json:"pages"`
	Files        []string          `json:"files"`
	CreatedAt    time.Time         `json:"created_at"`

	// Not serialized: on-disk location of the bundle.
	rootDir string `json:"-"`
}

// NewManifest constructs an in-memory manifest. Call Save() to persist.
func NewManifest(name, rootDir string) *Manifest {
	return &Manifest{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
		rootDir:   rootDir,
	}
}

// LoadManifest loads manifest.json from the provided bundle directory.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("report not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.rootDir = dir
	return &m, nil
}

// RootDir returns the on-disk bundle directory.
func (m *Manifest) RootDir() string { return m.rootDir }

// AddFile records a bundle-relative path.
func (m *Manifest) AddFile(rel string) {
	m.Files = append(m.Files, filepath.ToSlash(rel))
}

// Save writes manifest.json using atomic write.
func (m *Manifest) Save() error {
	if m.rootDir == "" {
		return errors.New("report root directory not set")
	}
	if err := utils.EnsureDir(m.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	sort.Strings(m.Files)
	data, err := utils.PrettyJSON(m)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(m.rootDir, ManifestFileName), data)
}

// List loads every bundle directly under root, newest first. Directories
// without a manifest are skipped; a missing root yields no bundles.
func List(root string) ([]*Manifest, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read reports dir: %w", err)
	}
	var out []*Manifest
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m, err := LoadManifest(filepath.Join(root, e.Name()))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
