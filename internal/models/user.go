package models

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor applied to every stored password
const PasswordCost = 10

// User is a registered account. Email is unique in every store.
type User struct {
	ID       string `gorm:"primaryKey;size:24" bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string `bson:"name" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	Password string `gorm:"not null" bson:"password" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// HashPassword replaces the plaintext password with its bcrypt hash
func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), PasswordCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword reports whether plain matches the stored hash
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
