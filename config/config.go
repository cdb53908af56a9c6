package config

import (
	"os"
	"path/filepath"

	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v3"
)

// Version is the running agora version, written to the settings store on
// install.
const Version = "1.2.0"

// Fixed database defaults merged into every written config.
const (
	DefaultCharset   = "utf8mb4"
	DefaultCollation = "utf8mb4_unicode_ci"
	DefaultAPIPath   = "api"
	DefaultAdminPath = "admin"
)

// Database is the persisted database section. Validate tags are the install
// input contract, checked before anything is written.
type Database struct {
	Driver    string `yaml:"driver" validate:"required,oneof=mysql sqlite"`
	Host      string `yaml:"host" validate:"required"`
	Port      int    `yaml:"port" validate:"omitempty,min=1,max=65535"`
	Database  string `yaml:"database" validate:"required"`
	Username  string `yaml:"username" validate:"required_if=Driver mysql"`
	Password  string `yaml:"password"`
	Charset   string `yaml:"charset"`
	Collation string `yaml:"collation"`
	Prefix    string `yaml:"prefix" validate:"dbprefix"`
	Strict    bool   `yaml:"strict"`
}

// Log is the persisted log section.
type Log struct {
	Console bool   `yaml:"console"`
	File    string `yaml:"file"`
	JSON    bool   `yaml:"json"`
}

// Paths maps mount points consumed by the routers.
type Paths struct {
	API   string `yaml:"api"`
	Admin string `yaml:"admin"`
}

// Config is the on-disk configuration written once by the installer and
// loaded by every other agora process at start.
type Config struct {
	Debug    bool     `yaml:"debug"`
	Log      Log      `yaml:"log"`
	Database Database `yaml:"database"`
	URL      string   `yaml:"url"`
	Paths    Paths    `yaml:"paths"`
	Offline  bool     `yaml:"offline"`
}

// New merges user input with the fixed defaults.
func New(dbConf *Database, url string, debug bool) *Config {
	ret := &Config{
		Debug:    debug,
		Database: *dbConf,
		URL:      url,
		Log: Log{
			Console: true,
		},
		Paths: Paths{
			API:   DefaultAPIPath,
			Admin: DefaultAdminPath,
		},
		Offline: false,
	}
	ret.Database.Charset = DefaultCharset
	ret.Database.Collation = DefaultCollation
	ret.Database.Strict = true
	return ret
}

// Write serializes the config to path. The file contains credentials, keep
// it owner-only.
func (c *Config) Write(path string) error {
	buf, err := yaml.Marshal(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	if dir, _ := filepath.Split(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return tracerr.Wrap(err)
		}
	}
	return tracerr.Wrap(os.WriteFile(path, buf, 0600))
}

// Load reads the config written by Write.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	ret := new(Config)
	if err := yaml.Unmarshal(buf, ret); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return ret, nil
}

// Remove deletes the config file, missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return tracerr.Wrap(err)
	}
	return nil
}
