package install

import (
	"encoding/json"

	"github.com/agoraforum/agora/config"
	"github.com/agoraforum/agora/db"
	"github.com/agoraforum/agora/extension"
	"github.com/agoraforum/agora/handler"
	"github.com/agoraforum/agora/migrate"
	"github.com/agoraforum/agora/utils/log"

	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
)

var ErrPrerequisite = tracerr.New("environment prerequisites not satisfied")

// Options are the installer collaborators, passed explicitly to keep them
// substitutable in tests.
type Options struct {
	Source     Source
	Checker    *PrereqChecker
	ConfigPath string
	PublicPath string
	AssetPath  string
	Version    string
	Debug      bool
	Verbose    bool

	// Extensions/DenyList default to the bundled set.
	Extensions []*extension.Extension
	DenyList   []string

	// Migrations overrides the core migration set.
	Migrations []*migrate.Step

	// DB overrides the connection opened from the validated config.
	DB *gorm.DB
}

// Installer sequences the install run. One instance per run, nothing is
// shared across runs.
type Installer struct {
	opt *Options
}

func New(opt *Options) *Installer {
	if opt.Extensions == nil {
		opt.Extensions = extension.Bundled()
	}
	if opt.DenyList == nil {
		opt.DenyList = extension.DefaultDenyList()
	}
	if opt.Migrations == nil {
		opt.Migrations = migrate.Core()
	}
	return &Installer{opt: opt}
}

// Run executes the install sequence. Any failure after the config file is
// written deletes the file before propagating, a half-installed database is
// surfaced to the caller but the filesystem artifact never survives.
func (i *Installer) Run() error {
	log.New().WithField("source", i.opt.Source.Kind().String()).
		Info("Starting installation")

	// environment must be ready before anything is mutated
	if c := i.opt.Checker; c != nil && !c.Check() {
		for _, e := range c.Errors() {
			log.New().WithField("detail", e.Detail).Error(e.Message)
		}
		return ErrPrerequisite
	}

	dbConf, err := i.opt.Source.DBConfig()
	if err != nil {
		return err
	}
	url, err := i.opt.Source.BaseURL()
	if err != nil {
		return err
	}
	settings, err := i.opt.Source.Settings()
	if err != nil {
		return err
	}
	admin, err := i.opt.Source.Admin()
	if err != nil {
		return err
	}

	if err := ValidateDBConfig(dbConf); err != nil {
		return err
	}
	if err := admin.Validate(); err != nil {
		return err
	}

	conf := config.New(dbConf, url, i.opt.Debug)
	if err := i.exec(conf, settings, admin); err != nil {
		if rerr := config.Remove(i.opt.ConfigPath); rerr != nil {
			log.NewEntry(rerr).Warn("Failed to clean up config file")
		}
		return err
	}
	log.New().Info("Installation complete")
	return nil
}

func (i *Installer) exec(conf *config.Config, settings []*SettingPair, admin *AdminAccount) error {
	gdb := i.opt.DB
	if gdb == nil {
		var err error
		if gdb, err = db.New(&conf.Database, i.opt.Verbose); err != nil {
			return err
		}
		log.New().WithFields(log.F{
			"driver":   conf.Database.Driver,
			"database": conf.Database.Database,
		}).Info("Database connected")
	}

	if err := conf.Write(i.opt.ConfigPath); err != nil {
		return err
	}
	log.New().WithField("path", i.opt.ConfigPath).Info("Config file written")

	runner, err := migrate.NewRunner(gdb)
	if err != nil {
		return err
	}
	if err := runner.Apply("", i.opt.Migrations); err != nil {
		return err
	}

	setting := handler.NewSetting(gdb)
	if err := i.seedSettings(gdb, setting, settings); err != nil {
		return err
	}
	if err := i.seedBaseline(gdb, handler.NewGroup(gdb), handler.NewPermission(gdb)); err != nil {
		return err
	}
	if err := i.createAdmin(gdb, handler.NewUser(gdb), handler.NewGroup(gdb), admin); err != nil {
		return err
	}
	log.New().WithField("username", admin.Username).Info("Admin user created")

	if err := i.enableExtensions(runner, setting); err != nil {
		return err
	}

	i.copyAssets()
	return nil
}

func (i *Installer) enableExtensions(runner *migrate.Runner, setting *handler.SettingImpl) error {
	enabled := make([]string, 0, len(i.opt.Extensions))
	for _, ext := range i.opt.Extensions {
		if extension.Denied(ext.ID, i.opt.DenyList) {
			log.New().WithField("id", ext.ID).Debug("Extension skipped, on deny list")
			continue
		}
		if err := extension.Enable(ext, runner, setting); err != nil {
			return err
		}
		enabled = append(enabled, ext.ID)
	}
	buf, err := json.Marshal(enabled)
	if err != nil {
		return tracerr.Wrap(err)
	}
	return setting.Set("extensions_enabled", string(buf))
}
