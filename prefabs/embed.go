package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// DiskDir is checked before the embedded copies so prefabs can be edited
// without a rebuild. An empty DiskDir disables disk lookups.
var DiskDir = "prefabs"

// Load reads a prefab yaml by name. "prefabs/enemy_walker.yaml" and
// "enemy_walker.yaml" name the same file.
func Load(name string) ([]byte, error) {
	return read(PrefabsFS, prefabName(name))
}

// LoadScript reads a tengo script. The name may carry any of the prefixes
// "prefabs/", "scripts/" or "prefabs/scripts/".
func LoadScript(name string) ([]byte, error) {
	return read(ScriptsFS, scriptName(name))
}

// ModTime reports when the disk copy of a prefab last changed. It is false
// when there is no disk copy.
func ModTime(name string) (time.Time, bool) {
	p, ok := diskPath(prefabName(name))
	if !ok {
		return time.Time{}, false
	}
	info, err := os.Stat(p)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func read(embedded fs.FS, name string) ([]byte, error) {
	if p, ok := diskPath(name); ok {
		if data, err := os.ReadFile(p); err == nil {
			return data, nil
		}
	}
	return fs.ReadFile(embedded, name)
}

func diskPath(name string) (string, bool) {
	if DiskDir == "" || name == "" {
		return "", false
	}
	return filepath.Join(DiskDir, filepath.FromSlash(name)), true
}

func prefabName(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
}

func scriptName(name string) string {
	s := strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
	s = strings.TrimPrefix(s, "scripts/")
	return path.Join("scripts", s)
}
