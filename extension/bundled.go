package extension

import (
	"time"

	"github.com/agoraforum/agora/migrate"

	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
)

type tag struct {
	ID        uint    `gorm:"primaryKey;not null"`
	Name      string  `gorm:"type:varchar(100);not null"`
	Slug      string  `gorm:"uniqueIndex;type:varchar(100);not null"`
	Color     *string `gorm:"type:varchar(20)"`
	Position  *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type discussionTag struct {
	ID           uint `gorm:"primaryKey;not null"`
	DiscussionID uint `gorm:"uniqueIndex:idx_discussion_tag;not null"`
	TagID        uint `gorm:"uniqueIndex:idx_discussion_tag;not null"`
	CreatedAt    time.Time
}

type userSuspension struct {
	ID        uint      `gorm:"primaryKey;not null"`
	UID       uint      `gorm:"uniqueIndex;not null"`
	Until     time.Time `gorm:"not null"`
	Reason    string    `gorm:"type:varchar(256)"`
	CreatedAt time.Time
}

type flag struct {
	ID        uint   `gorm:"primaryKey;not null"`
	PostID    uint   `gorm:"index;not null"`
	UID       uint   `gorm:"index;not null"`
	Type      string `gorm:"type:varchar(50);not null"`
	Reason    string `gorm:"type:varchar(256)"`
	CreatedAt time.Time
}

func autoMigrate(model any) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		return tracerr.Wrap(tx.AutoMigrate(model))
	}
}

// Bundled returns all bundled extensions in enumeration order.
func Bundled() []*Extension {
	return []*Extension{
		{ID: "agora-tags", Version: "1.2.0", Migrations: []*migrate.Step{
			{Name: "2021_04_20_000001_create_tags_table", Run: autoMigrate(&tag{})},
			{Name: "2021_04_20_000002_create_discussion_tag_table", Run: autoMigrate(&discussionTag{})},
		}},
		{ID: "agora-mentions", Version: "1.2.0"},
		{ID: "agora-likes", Version: "1.2.0"},
		{ID: "agora-lock", Version: "1.2.0"},
		{ID: "agora-sticky", Version: "1.2.0"},
		{ID: "agora-subscriptions", Version: "1.2.0"},
		{ID: "agora-suspend", Version: "1.2.0", Migrations: []*migrate.Step{
			{Name: "2021_04_20_000001_create_user_suspensions_table", Run: autoMigrate(&userSuspension{})},
		}},
		{ID: "agora-flags", Version: "1.2.0", Migrations: []*migrate.Step{
			{Name: "2021_04_20_000001_create_flags_table", Run: autoMigrate(&flag{})},
		}},
		{ID: "agora-approval", Version: "1.2.0"},
		{ID: "agora-markdown", Version: "1.2.0"},
		{ID: "agora-emoji", Version: "1.2.0"},
		{ID: "agora-statistics", Version: "1.2.0"},
		{ID: "agora-pusher", Version: "1.2.0"},
		{ID: "agora-akismet", Version: "1.2.0"},
		{ID: "agora-auth-github", Version: "1.2.0"},
		{ID: "agora-auth-twitter", Version: "1.2.0"},
		{ID: "agora-auth-facebook", Version: "1.2.0"},
	}
}

// DefaultDenyList lists bundled extensions never enabled automatically,
// they need external service credentials before first use.
func DefaultDenyList() []string {
	return []string{
		"agora-pusher",
		"agora-akismet",
		"agora-auth-github",
		"agora-auth-twitter",
		"agora-auth-facebook",
	}
}
