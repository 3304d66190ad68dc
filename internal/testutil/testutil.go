// Package testutil spins up the test doubles the suite shares: an isolated
// in-memory SQLite database per test and a miniredis behind the package
// redis client. No external services required.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Hey_Blog/internal/model"
	"Hey_Blog/internal/repository/mysql"
	"Hey_Blog/internal/repository/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated, uniquely-named shared-cache memory database.
// The unique name keeps gorm's connection pool on one database while
// isolating tests from each other.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Follow{},
		&model.FollowOutbox{},
		&model.Post{},
		&model.Comment{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// SeedRoles runs the canonical role seeding.
func SeedRoles(t *testing.T, db *gorm.DB) {
	t.Helper()
	repo := &mysql.RoleRepository{DB: db}
	if err := repo.Seed(context.Background()); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
}

// StartRedis points the package-level redis client at a fresh miniredis.
func StartRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	if err := redis.Init(mr.Addr(), "", 0); err != nil {
		t.Fatalf("init test redis: %v", err)
	}
	t.Cleanup(func() { _ = redis.Close() })
	return mr
}

// CreateUser registers a user directly through the repositories with the
// named role, bypassing the service-level mail flow.
func CreateUser(t *testing.T, db *gorm.DB, username, email, roleName string) *model.User {
	t.Helper()

	roles := &mysql.RoleRepository{DB: db}
	role, err := roles.FindByName(context.Background(), roleName)
	if err != nil {
		t.Fatalf("find role %s: %v", roleName, err)
	}

	now := time.Now()
	user := &model.User{
		Username:    username,
		Email:       email,
		RoleID:      role.ID,
		AvatarHash:  model.GravatarHash(email),
		MemberSince: now,
		LastSeen:    now,
	}
	if err := user.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("set password: %v", err)
	}

	users := &mysql.UserRepository{DB: db}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	user.Role = role
	return user
}
