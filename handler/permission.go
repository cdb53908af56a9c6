package handler

import (
	"github.com/agoraforum/agora/db"

	"gorm.io/gorm"
)

type PermissionImpl struct {
	orm *db.ORM[db.Permission]
}

func NewPermission(tx *gorm.DB) *PermissionImpl {
	return &PermissionImpl{
		orm: db.NewORM[db.Permission](tx),
	}
}

func (p *PermissionImpl) WithTx(tx *gorm.DB) *PermissionImpl {
	return &PermissionImpl{
		orm: db.NewORM[db.Permission](tx),
	}
}

// Grants insert permission rows verbatim.
func (p *PermissionImpl) Grants(perm []*db.Permission) error {
	return p.orm.Creates(perm)
}

// GetByGroup get all permission of gid.
func (p *PermissionImpl) GetByGroup(gid uint) ([]*db.Permission, error) {
	return p.orm.Where("gid = ?", gid).Find()
}

// Count count permission rows.
func (p *PermissionImpl) Count() (int64, error) {
	return p.orm.Count()
}
