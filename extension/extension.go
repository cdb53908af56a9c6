package extension

import (
	"github.com/agoraforum/agora/handler"
	"github.com/agoraforum/agora/migrate"
	"github.com/agoraforum/agora/utils/log"
)

// SettingPrefix prefixes the per-extension enable flag in the settings
// store.
const SettingPrefix = "extension_"

// Extension is a bundled extension descriptor. Runtime loading is out of
// scope here, the installer only enables and migrates them.
type Extension struct {
	ID         string
	Version    string
	Migrations []*migrate.Step
}

// Denied reports whether id is on the deny list.
func Denied(id string, deny []string) bool {
	for _, v := range deny {
		if v == id {
			return true
		}
	}
	return false
}

// Enable runs the extension migrations and records the enable flag.
func Enable(ext *Extension, runner *migrate.Runner, setting *handler.SettingImpl) error {
	if err := runner.Apply(ext.ID, ext.Migrations); err != nil {
		return err
	}
	if err := setting.Set(SettingPrefix+ext.ID, "1"); err != nil {
		return err
	}
	log.New().WithFields(log.F{
		"id":      ext.ID,
		"version": ext.Version,
	}).Info("Extension enabled")
	return nil
}
