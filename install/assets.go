package install

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agoraforum/agora/utils/log"

	"github.com/ztrue/tracerr"
)

// copyAssets copies the bundled fonts into the public asset directory.
// Best-effort: failures are logged and never fail the install.
func (i *Installer) copyAssets() {
	if i.opt.AssetPath == "" {
		return
	}
	src := filepath.Join(i.opt.AssetPath, "fonts")
	dst := filepath.Join(i.opt.PublicPath, "assets", "fonts")
	if err := copyDir(src, dst); err != nil {
		log.NewEntry(err).Warn("Failed to copy font assets")
		return
	}
	log.New().WithField("path", dst).Info("Font assets copied")
}

func copyDir(src string, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return tracerr.Wrap(err)
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return tracerr.Wrap(err)
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return tracerr.Wrap(os.MkdirAll(target, 0755))
		}
		buf, err := os.ReadFile(path)
		if err != nil {
			return tracerr.Wrap(err)
		}
		return tracerr.Wrap(os.WriteFile(target, buf, 0644))
	})
}
