package db

import "time"

type Track struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	ID          uint   `gorm:"primaryKey;not null"`
	Username    string `gorm:"uniqueIndex;type:varchar(100);not null"`
	Email       string `gorm:"uniqueIndex;type:varchar(150);not null"`
	Password    string `gorm:"type:varchar(100);not null" json:"-"`
	IsActivated bool   `gorm:"default:false;not null"`
	JoinedAt    time.Time
	Track       Track `gorm:"embedded"`
}

// Group ids 1-4 are reserved for the baseline groups seeded on install.
type Group struct {
	ID           uint    `gorm:"primaryKey;not null"`
	NameSingular string  `gorm:"type:varchar(100);not null"`
	NamePlural   string  `gorm:"type:varchar(100);not null"`
	Color        *string `gorm:"type:varchar(20)"`
	Icon         *string `gorm:"type:varchar(100)"`
	Track        Track   `gorm:"embedded"`
}

type GroupUser struct {
	ID    uint  `gorm:"primaryKey;not null"`
	UID   uint  `gorm:"uniqueIndex:idx_group_user;not null"`
	GID   uint  `gorm:"uniqueIndex:idx_group_user;not null"`
	Track Track `gorm:"embedded"`
}

type Permission struct {
	ID         uint   `gorm:"primaryKey;not null"`
	GID        uint   `gorm:"uniqueIndex:idx_group_perm;not null"`
	Permission string `gorm:"uniqueIndex:idx_group_perm;type:varchar(100);not null"`
	Track      Track  `gorm:"embedded"`
}

type Setting struct {
	ID    uint   `gorm:"primaryKey;not null"`
	Name  string `gorm:"uniqueIndex;type:varchar(256);not null"`
	Value string `gorm:"type:varchar(1024);not null"`
	Track Track  `gorm:"embedded"`
}

// Migration is the bookkeeping row for applied schema migrations.
// Extension is empty for core migrations.
type Migration struct {
	ID        uint   `gorm:"primaryKey;not null"`
	Migration string `gorm:"uniqueIndex:idx_migration_ext;type:varchar(128);not null"`
	Extension string `gorm:"uniqueIndex:idx_migration_ext;type:varchar(64)"`
	AppliedAt time.Time
}
