package handler

import (
	"time"

	"github.com/agoraforum/agora/db"

	"github.com/ztrue/tracerr"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserImpl struct {
	orm *db.ORM[db.User]
}

func NewUser(tx *gorm.DB) *UserImpl {
	return &UserImpl{
		orm: db.NewORM[db.User](tx),
	}
}

func (u *UserImpl) WithTx(tx *gorm.DB) *UserImpl {
	return &UserImpl{
		orm: db.NewORM[db.User](tx),
	}
}

// HashPass hashes pass with bcrypt.
func HashPass(pass string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return string(hash), nil
}

// New create new user, password is stored hashed.
func (u *UserImpl) New(username string, email string, password string,
	activated bool) (*db.User, error) {
	hash, err := HashPass(password)
	if err != nil {
		return nil, err
	}
	user := &db.User{
		Username:    username,
		Email:       email,
		Password:    hash,
		IsActivated: activated,
		JoinedAt:    time.Now(),
	}
	if err := u.orm.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByName get user by username.
func (u *UserImpl) GetByName(name string) (*db.User, error) {
	return u.orm.Where("username = ?", name).Take()
}

// CheckPass returns the user when pass matches, res 1 user not found,
// res 2 wrong password.
func (u *UserImpl) CheckPass(user string, pass string) (*db.User, int, error) {
	rec, err := u.GetByName(user)
	if err != nil {
		return nil, -1, err
	}
	if rec == nil {
		return nil, 1, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(pass)) != nil {
		return nil, 2, nil
	}
	return rec, 0, nil
}

// Count count users.
func (u *UserImpl) Count() (int64, error) {
	return u.orm.Count()
}
