package install

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agoraforum/agora/config"
	"github.com/agoraforum/agora/db"
	"github.com/agoraforum/agora/extension"
	"github.com/agoraforum/agora/handler"
	"github.com/agoraforum/agora/migrate"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testSource returns fixed install parameters without touching a terminal.
type testSource struct {
	dbConf   *config.Database
	url      string
	settings []*SettingPair
	admin    *AdminAccount
}

func newTestSource() *testSource {
	return &testSource{
		dbConf: &config.Database{
			Driver:   "sqlite",
			Host:     "localhost",
			Database: "test.db",
		},
		url:      "http://forum.example.com",
		settings: DefaultSettings(),
		admin: &AdminAccount{
			Username:             "admin",
			Email:                "admin@example.com",
			Password:             "password",
			PasswordConfirmation: "password",
		},
	}
}

func (s *testSource) Kind() SourceKind { return SourceDefaults }

func (s *testSource) DBConfig() (*config.Database, error) { return s.dbConf, nil }

func (s *testSource) BaseURL() (string, error) { return s.url, nil }

func (s *testSource) Settings() ([]*SettingPair, error) { return s.settings, nil }

func (s *testSource) Admin() (*AdminAccount, error) { return s.admin, nil }

func testDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	ret, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return ret
}

func testOptions(t *testing.T, gdb *gorm.DB) *Options {
	return &Options{
		Source:     newTestSource(),
		ConfigPath: filepath.Join(t.TempDir(), "config.yml"),
		Version:    config.Version,
		DB:         gdb,
	}
}

func TestInstall(t *testing.T) {
	gdb := testDB(t)
	opt := testOptions(t, gdb)
	require.NoError(t, New(opt).Run())

	// config file exists with exactly the expected top level keys
	conf, err := config.Load(opt.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "http://forum.example.com", conf.URL)
	assert.Equal(t, config.DefaultCharset, conf.Database.Charset)
	assert.Equal(t, config.DefaultCollation, conf.Database.Collation)
	assert.True(t, conf.Database.Strict)
	assert.Equal(t, "api", conf.Paths.API)
	assert.Equal(t, "admin", conf.Paths.Admin)

	buf, err := os.ReadFile(opt.ConfigPath)
	require.NoError(t, err)
	keys := make(map[string]any)
	require.NoError(t, yaml.Unmarshal(buf, &keys))
	assert.Len(t, keys, 6)
	for _, k := range []string{"debug", "log", "database", "url", "paths", "offline"} {
		assert.Contains(t, keys, k)
	}

	// seeded rows
	cnt, err := handler.NewGroup(gdb).Count()
	require.NoError(t, err)
	assert.EqualValues(t, 4, cnt)
	cnt, err = handler.NewPermission(gdb).Count()
	require.NoError(t, err)
	assert.EqualValues(t, 8, cnt)
	cnt, err = handler.NewUser(gdb).Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, cnt)
	cnt, err = handler.NewGroup(gdb).CountLink()
	require.NoError(t, err)
	assert.EqualValues(t, 1, cnt)

	admin, err := handler.NewGroup(gdb).Get(GroupAdminID)
	require.NoError(t, err)
	assert.Equal(t, "Admins", admin.NamePlural)

	perms, err := handler.NewPermission(gdb).GetByGroup(GroupModID)
	require.NoError(t, err)
	assert.Len(t, perms, 4)
	perms, err = handler.NewPermission(gdb).GetByGroup(GroupGuestID)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, "viewForum", perms[0].Permission)

	user, res, err := handler.NewUser(gdb).CheckPass("admin", "password")
	require.NoError(t, err)
	assert.Equal(t, 0, res)
	assert.True(t, user.IsActivated)

	// settings store
	setting := handler.NewSetting(gdb)
	require.NoError(t, setting.BuildCache())
	ver, ok := setting.Get("version")
	assert.True(t, ok)
	assert.Equal(t, config.Version, ver)
	_, ok = setting.Get("install_id")
	assert.True(t, ok)
	title, _ := setting.Get("forum_title")
	assert.Equal(t, "Agora", title)
}

func TestInstallExtensions(t *testing.T) {
	gdb := testDB(t)
	opt := testOptions(t, gdb)
	require.NoError(t, New(opt).Run())

	setting := handler.NewSetting(gdb)
	require.NoError(t, setting.BuildCache())

	// deny list never enabled, even though the registry lists them
	for _, id := range extension.DefaultDenyList() {
		_, ok := setting.Get(extension.SettingPrefix + id)
		assert.False(t, ok, id)
	}
	v, ok := setting.Get(extension.SettingPrefix + "agora-tags")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	var enabled []string
	raw, ok := setting.Get("extensions_enabled")
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(raw), &enabled))
	assert.Len(t, enabled, len(extension.Bundled())-len(extension.DefaultDenyList()))
	for _, id := range extension.DefaultDenyList() {
		assert.NotContains(t, enabled, id)
	}

	// extension migrations ran
	assert.True(t, gdb.Migrator().HasTable("tags"))
	assert.True(t, gdb.Migrator().HasTable("flags"))
}

func TestInstallValidationAbort(t *testing.T) {
	tests := []struct {
		name string
		mod  func(s *testSource)
	}{
		{"Bad db config", func(s *testSource) { s.dbConf.Host = "" }},
		{"Short admin password", func(s *testSource) {
			s.admin.Password = "short"
			s.admin.PasswordConfirmation = "short"
		}},
		{"Password mismatch", func(s *testSource) {
			s.admin.PasswordConfirmation = "different"
		}},
		{"Bad admin username", func(s *testSource) { s.admin.Username = "bad name" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb := testDB(t)
			opt := testOptions(t, gdb)
			tt.mod(opt.Source.(*testSource))
			assert.Error(t, New(opt).Run())

			// nothing written before validation passes
			assert.NoFileExists(t, opt.ConfigPath)
			assert.False(t, gdb.Migrator().HasTable("users"))
		})
	}
}

func TestInstallMigrationFailure(t *testing.T) {
	gdb := testDB(t)
	opt := testOptions(t, gdb)
	boom := tracerr.New("boom")
	opt.Migrations = append([]*migrate.Step{{
		Name: "2000_01_01_000000_boom",
		Run:  func(tx *gorm.DB) error { return boom },
	}}, migrate.Core()...)

	err := New(opt).Run()
	assert.ErrorContains(t, err, "boom")

	// cleanup ran, later steps never executed
	assert.NoFileExists(t, opt.ConfigPath)
	assert.False(t, gdb.Migrator().HasTable("users"))
	assert.False(t, gdb.Migrator().HasTable("groups"))
}

func TestInstallPrerequisiteFailure(t *testing.T) {
	gdb := testDB(t)
	opt := testOptions(t, gdb)
	opt.Checker = NewPrereqChecker(filepath.Join(t.TempDir(), "missing"), ".", ".")

	err := New(opt).Run()
	assert.ErrorIs(t, err, ErrPrerequisite)
	assert.NoFileExists(t, opt.ConfigPath)
	assert.False(t, gdb.Migrator().HasTable("users"))
}

func TestInstallRerun(t *testing.T) {
	gdb := testDB(t)
	opt := testOptions(t, gdb)
	require.NoError(t, New(opt).Run())

	// rerun against the installed database fails with a duplicate key
	opt2 := testOptions(t, gdb)
	err := New(opt2).Run()
	assert.Error(t, err)
	assert.NoFileExists(t, opt2.ConfigPath)
}

func TestGroupSeedDuplicate(t *testing.T) {
	gdb := testDB(t)
	require.NoError(t, gdb.AutoMigrate(&db.Group{}))
	require.NoError(t, handler.NewGroup(gdb).Creates(GroupSeeds()))

	// ids are fixed primary keys, reseeding is a constraint violation
	err := handler.NewGroup(gdb).Creates(GroupSeeds())
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "unique")
}
