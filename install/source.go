package install

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agoraforum/agora/config"
	"github.com/agoraforum/agora/utils"
	"github.com/agoraforum/agora/utils/log"

	"github.com/peterh/liner"
	"github.com/spf13/viper"
	"github.com/ztrue/tracerr"
	"golang.org/x/term"
)

// SourceKind tags the origin of install parameters. Exactly one source is
// used per run.
type SourceKind int

const (
	SourceDefaults SourceKind = iota
	SourceFile
	SourcePrompt
)

func (k SourceKind) String() string {
	switch k {
	case SourceDefaults:
		return "defaults"
	case SourceFile:
		return "file"
	case SourcePrompt:
		return "prompt"
	}
	return "unknown"
}

// SettingPair is one ordered settings store entry.
type SettingPair struct {
	Name  string
	Value string
}

// Source supplies raw install parameters.
type Source interface {
	Kind() SourceKind
	DBConfig() (*config.Database, error)
	BaseURL() (string, error)
	Settings() ([]*SettingPair, error)
	Admin() (*AdminAccount, error)
}

var ErrNotTerminal = tracerr.New("interactive install needs a terminal, use --defaults or --file")

// DefaultsSource supplies the built-in install defaults.
type DefaultsSource struct{}

func NewDefaultsSource() *DefaultsSource {
	return &DefaultsSource{}
}

func (s *DefaultsSource) Kind() SourceKind {
	return SourceDefaults
}

func (s *DefaultsSource) DBConfig() (*config.Database, error) {
	return &config.Database{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		Database: "agora",
		Username: "agora",
		Password: "",
		Prefix:   "",
	}, nil
}

func (s *DefaultsSource) BaseURL() (string, error) {
	return "http://localhost", nil
}

func (s *DefaultsSource) Settings() ([]*SettingPair, error) {
	return DefaultSettings(), nil
}

func (s *DefaultsSource) Admin() (*AdminAccount, error) {
	return &AdminAccount{
		Username:             "admin",
		Email:                "admin@example.com",
		Password:             "password",
		PasswordConfirmation: "password",
	}, nil
}

// FileSource reads a declarative install config, JSON or YAML.
type FileSource struct {
	v *viper.Viper
}

func NewFileSource(path string) (*FileSource, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &FileSource{v: v}, nil
}

func (s *FileSource) Kind() SourceKind {
	return SourceFile
}

func (s *FileSource) DBConfig() (*config.Database, error) {
	return &config.Database{
		Driver:   s.v.GetString("database.driver"),
		Host:     s.v.GetString("database.host"),
		Port:     s.v.GetInt("database.port"),
		Database: s.v.GetString("database.database"),
		Username: s.v.GetString("database.username"),
		Password: s.v.GetString("database.password"),
		Prefix:   s.v.GetString("database.prefix"),
	}, nil
}

func (s *FileSource) BaseURL() (string, error) {
	return s.v.GetString("url"), nil
}

// Settings returns the defaults overridden by the file settings map.
// Extra keys are appended in sorted order to keep runs deterministic.
func (s *FileSource) Settings() ([]*SettingPair, error) {
	override := s.v.GetStringMapString("settings")
	ret := DefaultSettings()
	for _, v := range ret {
		if ov, ok := override[v.Name]; ok {
			v.Value = ov
			delete(override, v.Name)
		}
	}
	extra := make([]string, 0, len(override))
	for k := range override {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		ret = append(ret, &SettingPair{Name: k, Value: override[k]})
	}
	return ret, nil
}

func (s *FileSource) Admin() (*AdminAccount, error) {
	ret := &AdminAccount{
		Username:             s.v.GetString("admin.username"),
		Email:                s.v.GetString("admin.email"),
		Password:             s.v.GetString("admin.password"),
		PasswordConfirmation: s.v.GetString("admin.password_confirmation"),
	}
	if !s.v.IsSet("admin.password_confirmation") {
		ret.PasswordConfirmation = ret.Password
	}
	return ret, nil
}

// PromptSource collects install parameters interactively.
type PromptSource struct {
	line     *liner.State
	defaults *DefaultsSource
}

func NewPromptSource() (*PromptSource, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotTerminal
	}
	return &PromptSource{
		line:     liner.NewLiner(),
		defaults: NewDefaultsSource(),
	}, nil
}

func (s *PromptSource) Kind() SourceKind {
	return SourcePrompt
}

// Close releases the terminal, must be called when the run ends.
func (s *PromptSource) Close() error {
	return s.line.Close()
}

func (s *PromptSource) prompt(name string, def string) (string, error) {
	text := fmt.Sprintf("%s [%s]: ", name, def)
	if def == "" {
		text = name + ": "
	}
	ret, err := s.line.Prompt(text)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	ret = strings.TrimSpace(ret)
	if ret == "" {
		return def, nil
	}
	return ret, nil
}

func (s *PromptSource) DBConfig() (*config.Database, error) {
	def, _ := s.defaults.DBConfig()
	ret := new(config.Database)
	var err error
	if ret.Driver, err = s.prompt("Database driver (mysql, sqlite)", def.Driver); err != nil {
		return nil, err
	}
	if ret.Host, err = s.prompt("Database host", def.Host); err != nil {
		return nil, err
	}
	port := 0
	if ret.Driver == "mysql" {
		portStr, err := s.prompt("Database port", "3306")
		if err != nil {
			return nil, err
		}
		if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
			return nil, tracerr.Wrap(err)
		}
	}
	ret.Port = port
	if ret.Database, err = s.prompt("Database name", def.Database); err != nil {
		return nil, err
	}
	if ret.Username, err = s.prompt("Database user", def.Username); err != nil {
		return nil, err
	}
	pass, err := s.line.PasswordPrompt("Database password: ")
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	ret.Password = pass
	if ret.Prefix, err = s.prompt("Table prefix", ""); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *PromptSource) BaseURL() (string, error) {
	def, _ := s.defaults.BaseURL()
	return s.prompt("Base URL", def)
}

func (s *PromptSource) Settings() ([]*SettingPair, error) {
	ret := DefaultSettings()
	title, err := s.prompt("Forum title", "Agora")
	if err != nil {
		return nil, err
	}
	for _, v := range ret {
		if v.Name == "forum_title" {
			v.Value = title
		}
	}
	return ret, nil
}

func (s *PromptSource) Admin() (*AdminAccount, error) {
	ret := new(AdminAccount)
	var err error
	if ret.Username, err = s.prompt("Admin username", "admin"); err != nil {
		return nil, err
	}
	if ret.Email, err = s.prompt("Admin email", ""); err != nil {
		return nil, err
	}
	pass, err := s.line.PasswordPrompt("Admin password (leave empty to generate): ")
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if pass == "" {
		pass = utils.RandString(12)
		log.New().Info("Generated admin password: ", pass)
		ret.Password = pass
		ret.PasswordConfirmation = pass
		return ret, nil
	}
	confirm, err := s.line.PasswordPrompt("Confirm admin password: ")
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	ret.Password = pass
	ret.PasswordConfirmation = confirm
	return ret, nil
}
