package prefabs

import (
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/milk9111/scenecore/ecs"
)

type LibraryOption func(*Library)

func WithLibraryLogger(l *slog.Logger) LibraryOption {
	return func(lib *Library) {
		if l != nil {
			lib.log = l
		}
	}
}

// WithFS reads prefab files and scripts from fsys instead of the prefabs
// directory and its embedded copy. Scripts live under scripts/ in fsys.
func WithFS(fsys fs.FS) LibraryOption {
	return func(lib *Library) {
		lib.load = func(name string) ([]byte, error) {
			return fs.ReadFile(fsys, cleanPrefabPath(name))
		}
		lib.loadScript = func(name string) ([]byte, error) {
			return fs.ReadFile(fsys, cleanScriptPath(name))
		}
	}
}

// Library builds prefabs on first use and caches them until invalidated.
// It is owned by the frame driver and is not safe for concurrent use.
type Library struct {
	res        ResourceLookup
	load       func(string) ([]byte, error)
	loadScript func(string) ([]byte, error)
	log        *slog.Logger
	cache      map[string]*ecs.Prefab
}

func NewLibrary(res ResourceLookup, opts ...LibraryOption) *Library {
	lib := &Library{
		res:        res,
		load:       Load,
		loadScript: LoadScript,
		log:        slog.Default(),
		cache:      map[string]*ecs.Prefab{},
	}
	for _, opt := range opts {
		opt(lib)
	}
	return lib
}

// Get returns the prefab built from name, building it on first use.
func (lib *Library) Get(name string) (*ecs.Prefab, error) {
	key := cleanPrefabPath(name)
	if p, ok := lib.cache[key]; ok {
		return p, nil
	}
	spec, err := loadSpecWith[NodeSpec](lib.load, key)
	if err != nil {
		return nil, err
	}
	ctx := &buildContext{PrefabPath: key, Resources: lib.res, LoadScript: lib.loadScript}
	p, err := buildPrefab(spec, ctx)
	if err != nil {
		return nil, err
	}
	lib.cache[key] = p
	lib.log.Debug("prefabs: built", "prefab", key, "entities", p.Len())
	return p, nil
}

// Invalidate drops cached prefabs affected by a change to path. A changed
// script invalidates every prefab, since scripts are copied into the prefabs
// that reference them. It reports whether anything was dropped.
func (lib *Library) Invalidate(path string) bool {
	if isScriptFile(path) {
		n := len(lib.cache)
		clear(lib.cache)
		if n > 0 {
			lib.log.Info("prefabs: script changed, cache cleared", "path", path, "prefabs", n)
		}
		return n > 0
	}
	key := filepath.ToSlash(filepath.Base(path))
	if _, ok := lib.cache[key]; !ok {
		key = cleanPrefabPath(path)
	}
	if _, ok := lib.cache[key]; !ok {
		return false
	}
	delete(lib.cache, key)
	lib.log.Info("prefabs: invalidated", "prefab", key)
	return true
}

// Len returns the number of cached prefabs.
func (lib *Library) Len() int {
	return len(lib.cache)
}
