package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oakensoul/aida/internal/manifest"
	"github.com/oakensoul/aida/internal/output"
)

// backupFiles copies every existing file in relPaths into a fresh
// timestamped directory under the plugin's backup root. Each file is
// backed up independently: a file that cannot be copied lands in failed
// and must not be patched, but never blocks the others.
func backupFiles(pluginPath string, relPaths []string) (backupDir string, copied map[string]string, failed map[string]error) {
	stamp := time.Now().UTC().Format("20060102-150405")
	dir := filepath.Join(pluginPath, manifest.BackupDirName, stamp)

	copied = make(map[string]string)
	failed = make(map[string]error)
	for _, rel := range relPaths {
		src := filepath.Join(pluginPath, filepath.FromSlash(rel))
		data, err := os.ReadFile(src)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			failed[rel] = fmt.Errorf("backup failed reading %s: %w", rel, err)
			continue
		}

		dst := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			failed[rel] = fmt.Errorf("backup failed creating %s: %w", filepath.Dir(dst), err)
			continue
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			failed[rel] = fmt.Errorf("backup failed writing %s: %w", dst, err)
			continue
		}
		copied[rel] = dst
	}

	if len(copied) == 0 {
		return "", copied, failed
	}
	output.Verbose(fmt.Sprintf("Backed up %d files to %s", len(copied), dir))
	return dir, copied, failed
}
