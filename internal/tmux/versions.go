package tmux

import (
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

// The CLI installer makes `claude` a symlink into a versions directory
// (e.g. ~/.local/share/claude/versions/2.1.50), so tmux resolves the link
// and reports the bare version number as the pane command. We resolve the
// versions directory once and re-read its entries on a TTL so upgrades
// installed while we are running still match.

const versionCacheTTL = 30 * time.Second

type versionCache struct {
	mu          sync.Mutex
	dir         string
	names       map[string]struct{}
	lastRefresh time.Time
}

var (
	versionsOnce sync.Once
	versionsInst *versionCache
)

func versions() *versionCache {
	versionsOnce.Do(func() {
		vc := &versionCache{names: map[string]struct{}{}}
		if dir, ok := resolveVersionsDir(); ok {
			vc.dir = dir
			vc.names = readVersionEntries(dir)
		}
		vc.lastRefresh = time.Now()
		versionsInst = vc
	})
	return versionsInst
}

// versionAliases returns the current set of version-alias command names.
func versionAliases() map[string]struct{} {
	vc := versions()
	vc.mu.Lock()
	defer vc.mu.Unlock()

	if time.Since(vc.lastRefresh) >= versionCacheTTL {
		vc.reload()
	}

	out := make(map[string]struct{}, len(vc.names))
	for name := range vc.names {
		out[name] = struct{}{}
	}
	return out
}

func (vc *versionCache) reload() {
	if vc.dir != "" {
		vc.names = readVersionEntries(vc.dir)
	}
	vc.lastRefresh = time.Now()
}

func resolveVersionsDir() (string, bool) {
	path, err := exec.LookPath("claude")
	if err != nil {
		return "", false
	}
	target, err := os.Readlink(path)
	if err != nil {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Dir(target), true
}

func readVersionEntries(dir string) map[string]struct{} {
	names := map[string]struct{}{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return names
	}
	for _, e := range entries {
		names[e.Name()] = struct{}{}
	}
	return names
}
