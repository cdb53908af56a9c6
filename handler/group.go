package handler

import (
	"github.com/agoraforum/agora/db"

	"gorm.io/gorm"
)

type GroupImpl struct {
	group *db.ORM[db.Group]
	link  *db.ORM[db.GroupUser]
}

func NewGroup(tx *gorm.DB) *GroupImpl {
	return &GroupImpl{
		group: db.NewORM[db.Group](tx),
		link:  db.NewORM[db.GroupUser](tx),
	}
}

func (u *GroupImpl) WithTx(tx *gorm.DB) *GroupImpl {
	return &GroupImpl{
		group: db.NewORM[db.Group](tx),
		link:  db.NewORM[db.GroupUser](tx),
	}
}

// Creates insert groups verbatim, ids are caller fixed.
func (u *GroupImpl) Creates(group []*db.Group) error {
	return u.group.Creates(group)
}

// Link link all uid user to all gid group.
//
// Note: For performance reasons, this function will not check whether uid or gid is valid.
func (u *GroupImpl) Link(uid []uint, gid []uint) ([]*db.GroupUser, error) {
	if len(uid) == 0 {
		return nil, nil
	}
	var link []*db.GroupUser
	for _, v := range uid {
		for _, g := range gid {
			link = append(link, &db.GroupUser{
				UID: v,
				GID: g,
			})
		}
	}
	if err := u.link.Creates(link); err != nil {
		return nil, err
	}
	return link, nil
}

// Get get group by id.
func (u *GroupImpl) Get(id uint) (*db.Group, error) {
	return u.group.ID(id).Take()
}

// Count count group.
func (u *GroupImpl) Count() (int64, error) {
	return u.group.Count()
}

// CountLink count group membership rows.
func (u *GroupImpl) CountLink() (int64, error) {
	return u.link.Count()
}
