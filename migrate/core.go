package migrate

import (
	"github.com/agoraforum/agora/db"

	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
)

// Core returns the core schema migrations.
func Core() []*Step {
	return []*Step{
		{
			Name: "2021_04_10_000001_create_users_table",
			Run: func(tx *gorm.DB) error {
				return tracerr.Wrap(tx.AutoMigrate(&db.User{}))
			},
		},
		{
			Name: "2021_04_10_000002_create_groups_table",
			Run: func(tx *gorm.DB) error {
				return tracerr.Wrap(tx.AutoMigrate(&db.Group{}))
			},
		},
		{
			Name: "2021_04_10_000003_create_group_user_table",
			Run: func(tx *gorm.DB) error {
				return tracerr.Wrap(tx.AutoMigrate(&db.GroupUser{}))
			},
		},
		{
			Name: "2021_04_10_000004_create_permissions_table",
			Run: func(tx *gorm.DB) error {
				return tracerr.Wrap(tx.AutoMigrate(&db.Permission{}))
			},
		},
		{
			Name: "2021_04_10_000005_create_settings_table",
			Run: func(tx *gorm.DB) error {
				return tracerr.Wrap(tx.AutoMigrate(&db.Setting{}))
			},
		},
	}
}
