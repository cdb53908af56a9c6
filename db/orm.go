package db

import (
	"errors"

	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
)

// TODO: change when gorm support generic

type ORM[T any] struct {
	tx *gorm.DB
}

func NewORM[T any](tx *gorm.DB) *ORM[T] {
	return &ORM[T]{
		tx: tx,
	}
}

func (o *ORM[T]) Where(query any, args ...any) *ORM[T] {
	return NewORM[T](o.tx.Where(query, args...))
}

func (o *ORM[T]) ID(id uint) *ORM[T] {
	return NewORM[T](o.tx.Where("id = ?", id))
}

func (o *ORM[T]) Update(column string, value any) error {
	return tracerr.Wrap(o.tx.Model(new(T)).Update(column, value).Error)
}

func (o *ORM[T]) Delete(conds ...any) (int64, error) {
	ret := o.tx.Delete(new(T), conds...)
	return ret.RowsAffected, tracerr.Wrap(ret.Error)
}

func (o *ORM[T]) Find(conds ...any) (ret []*T, err error) {
	err = tracerr.Wrap(o.tx.Find(&ret, conds...).Error)
	return
}

func (o *ORM[T]) Creates(value []*T) error {
	return tracerr.Wrap(o.tx.Create(&value).Error)
}

func (o *ORM[T]) Create(value *T) error {
	return tracerr.Wrap(o.tx.Create(value).Error)
}

func (o *ORM[T]) Count() (int64, error) {
	var count int64
	if err := tracerr.Wrap(o.tx.Model(new(T)).Count(&count).Error); err != nil {
		return 0, err
	}
	return count, nil
}

func (o *ORM[T]) Take(conds ...any) (ret *T, err error) {
	ret = new(T)
	err = tracerr.Wrap(o.tx.Take(ret, conds...).Error)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ret = nil
			err = nil
		} else {
			ret = nil
		}
	}
	return
}
