package db

import (
	"fmt"
	"strings"

	"github.com/agoraforum/agora/config"
	"github.com/agoraforum/agora/utils"

	"github.com/glebarez/sqlite"
	"github.com/ztrue/tracerr"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// MinMySQLVersion is the oldest server version the schema supports.
const MinMySQLVersion = ">= 5.7.0"

var (
	ErrDriverNotSupported = tracerr.New("database driver not supported")
	ErrServerTooOld       = tracerr.New("database server version too old")
)

// New opens the database connection for conf and gates the server version.
// The returned handle is reused for the whole install run.
func New(conf *config.Database, verbose bool) (*gorm.DB, error) {
	level := logger.Silent // disable log
	if verbose {
		level = logger.Info
	}
	gormConf := &gorm.Config{
		Logger: logger.Default.LogMode(level),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: conf.Prefix,
		},
	}

	var dialector gorm.Dialector
	switch conf.Driver {
	case "sqlite":
		dialector = sqlite.Open(conf.Database)
	case "mysql":
		port := conf.Port
		if port == 0 {
			port = 3306
		}
		charset := conf.Charset
		if charset == "" {
			charset = config.DefaultCharset
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			conf.Username, conf.Password, conf.Host, port, conf.Database, charset)
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %s", ErrDriverNotSupported, conf.Driver)
	}

	ret, err := gorm.Open(dialector, gormConf)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if conf.Driver == "mysql" {
		if err := checkServer(ret); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// checkServer rejects servers older than MinMySQLVersion.
// sqlite is embedded, there is no server to probe.
func checkServer(tx *gorm.DB) error {
	var ver string
	if err := tx.Raw("SELECT VERSION()").Scan(&ver).Error; err != nil {
		return tracerr.Wrap(err)
	}
	// strip build suffix, e.g. "5.7.40-log"
	core := strings.SplitN(ver, "-", 2)[0]
	ok, err := utils.CheckVersion(core, MinMySQLVersion)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s (need %s)", ErrServerTooOld, ver, MinMySQLVersion)
	}
	return nil
}
