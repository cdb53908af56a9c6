package handler

import (
	"github.com/agoraforum/agora/db"
	"github.com/agoraforum/agora/utils/tpl"

	"gorm.io/gorm"
)

type SettingImpl struct {
	orm   *db.ORM[db.Setting]
	cache *tpl.SafeMap[string, string]
}

func NewSetting(tx *gorm.DB) *SettingImpl {
	return &SettingImpl{
		orm:   db.NewORM[db.Setting](tx),
		cache: new(tpl.SafeMap[string, string]),
	}
}

func (impl *SettingImpl) WithTx(tx *gorm.DB) *SettingImpl {
	return &SettingImpl{
		orm:   db.NewORM[db.Setting](tx),
		cache: impl.cache,
	}
}

func (impl *SettingImpl) BuildCache() error {
	rec, err := impl.orm.Find()
	if err != nil {
		return err
	}
	for _, v := range rec {
		impl.cache.Set(v.Name, v.Value)
	}
	return nil
}

func (impl *SettingImpl) GetAll() map[string]string {
	return impl.cache.Map()
}

func (impl *SettingImpl) Get(name string) (string, bool) {
	return impl.cache.Get(name)
}

func (impl *SettingImpl) Set(name string, value string) error {
	v, ok := impl.cache.Get(name)
	if !ok {
		if err := impl.orm.Create(&db.Setting{
			Name:  name,
			Value: value,
		}); err != nil {
			return err
		}
		impl.cache.Set(name, value)
		return nil
	}
	if v != value {
		if err := impl.orm.Where("name = ?", name).Update("value", value); err != nil {
			return err
		}
		impl.cache.Set(name, value)
	}
	return nil
}

func (impl *SettingImpl) Delete(name string) (bool, error) {
	if impl.cache.Has(name) {
		row, err := impl.orm.Where("name = ?", name).Delete()
		if err != nil {
			return false, err
		}
		impl.cache.Delete(name)
		return row == 1, nil
	}
	return false, nil
}
