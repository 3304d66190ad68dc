package model

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordNotReadable = errors.New("password is not a readable attribute")

type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Confirmed    bool   `gorm:"not null;default:false"`
	RoleID       uint64 `gorm:"not null;index"`
	Role         *Role  `gorm:"foreignKey:RoleID"`
	Name         string `gorm:"size:64"`
	Location     string `gorm:"size:64"`
	AboutMe      string `gorm:"type:text"`
	AvatarHash   string `gorm:"size:32"`
	MemberSince  time.Time
	LastSeen     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }

// SetPassword stores the bcrypt hash; the plaintext is never kept.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// Password always fails: the plaintext is write-only.
func (u *User) Password() (string, error) {
	return "", ErrPasswordNotReadable
}

func (u *User) VerifyPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// GravatarHash is the md5 of the lowercased email. It is cached on the user
// so the avatar URL only changes when an email change recomputes it.
func GravatarHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

// AvatarURL builds a gravatar-style URL from the cached hash.
func (u *User) AvatarURL(size int) string {
	hash := u.AvatarHash
	if hash == "" {
		hash = GravatarHash(u.Email)
	}
	return fmt.Sprintf("https://secure.gravatar.com/avatar/%s?s=%d&d=identicon&r=g", hash, size)
}
