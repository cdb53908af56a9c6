package install

import (
	"github.com/agoraforum/agora/db"
	"github.com/agoraforum/agora/handler"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reserved baseline group ids.
const (
	GroupAdminID uint = iota + 1
	GroupGuestID
	GroupMemberID
	GroupModID
)

// DefaultSettings returns the baseline settings store content, applied
// verbatim and in order.
func DefaultSettings() []*SettingPair {
	return []*SettingPair{
		{"forum_title", "Agora"},
		{"forum_description", ""},
		{"allow_sign_up", "1"},
		{"allow_renaming", "10"},
		{"allow_post_editing", "reply"},
		{"default_locale", "en"},
		{"default_route", "/all"},
		{"theme_primary_color", "#4D698E"},
		{"theme_secondary_color", "#4D698E"},
		{"welcome_title", "Welcome to Agora"},
		{"welcome_message", "This is beta software and you should not use it in production."},
		{"mail_driver", "mail"},
	}
}

func strPtr(s string) *string {
	return &s
}

// GroupSeeds returns the four baseline groups with reserved ids.
func GroupSeeds() []*db.Group {
	return []*db.Group{
		{ID: GroupAdminID, NameSingular: "Admin", NamePlural: "Admins",
			Color: strPtr("#B72A2A"), Icon: strPtr("fas fa-wrench")},
		{ID: GroupGuestID, NameSingular: "Guest", NamePlural: "Guests"},
		{ID: GroupMemberID, NameSingular: "Member", NamePlural: "Members"},
		{ID: GroupModID, NameSingular: "Mod", NamePlural: "Mods",
			Color: strPtr("#80349E"), Icon: strPtr("fas fa-bolt")},
	}
}

// PermissionSeeds returns the baseline capability grants.
func PermissionSeeds() []*db.Permission {
	return []*db.Permission{
		{GID: GroupGuestID, Permission: "viewForum"},
		{GID: GroupMemberID, Permission: "startDiscussion"},
		{GID: GroupMemberID, Permission: "discussion.reply"},
		{GID: GroupMemberID, Permission: "discussion.editOwnPosts"},
		{GID: GroupModID, Permission: "discussion.rename"},
		{GID: GroupModID, Permission: "discussion.hidePosts"},
		{GID: GroupModID, Permission: "discussion.editPosts"},
		{GID: GroupModID, Permission: "discussion.viewIps"},
	}
}

// seedSettings writes the settings store content in one transaction, the
// shared cache stays valid for the extension flags written later.
func (i *Installer) seedSettings(gdb *gorm.DB, setting *handler.SettingImpl, settings []*SettingPair) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		s := setting.WithTx(tx)
		for _, v := range settings {
			if err := s.Set(v.Name, v.Value); err != nil {
				return err
			}
		}
		if err := s.Set("version", i.opt.Version); err != nil {
			return err
		}
		return s.Set("install_id", uuid.NewString())
	})
}

// seedBaseline inserts the groups and their capability grants in one
// transaction. The ids are fixed primary keys, a rerun after partial
// failure needs a clean database.
func (i *Installer) seedBaseline(gdb *gorm.DB, group *handler.GroupImpl, perm *handler.PermissionImpl) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		if err := group.WithTx(tx).Creates(GroupSeeds()); err != nil {
			return err
		}
		return perm.WithTx(tx).Grants(PermissionSeeds())
	})
}

// createAdmin creates the activated admin user and links it to the admin
// group in one transaction.
func (i *Installer) createAdmin(gdb *gorm.DB, user *handler.UserImpl, group *handler.GroupImpl, admin *AdminAccount) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		rec, err := user.WithTx(tx).New(admin.Username, admin.Email, admin.Password, true)
		if err != nil {
			return err
		}
		_, err = group.WithTx(tx).Link([]uint{rec.ID}, []uint{GroupAdminID})
		return err
	})
}
