package mysql

import (
	"context"
	"errors"

	"Hey_Blog/internal/model"

	"gorm.io/gorm"
)

type RoleRepository struct {
	DB *gorm.DB
}

// seedOrder keeps seeding deterministic; CanonicalRoles is a map.
var seedOrder = []string{"User", "Moderator", "Administrator"}

// Seed (re)builds the three canonical roles. It is idempotent: each run
// resets every mask before reassigning, and recomputes the default flag from
// the canonical name, so N runs converge to the same registry. A concurrent
// insert of the same role name is recovered by re-reading the row.
func (r *RoleRepository) Seed(ctx context.Context) error {
	canonical := model.CanonicalRoles()
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range seedOrder {
			perms := canonical[name]

			var role model.Role
			err := tx.Where("name = ?", name).First(&role).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				role = model.Role{Name: name}
				if err = tx.Create(&role).Error; err != nil {
					if !errors.Is(err, gorm.ErrDuplicatedKey) {
						return err
					}
					// lost the insert race; the row exists now
					if err = tx.Where("name = ?", name).First(&role).Error; err != nil {
						return err
					}
				}
			} else if err != nil {
				return err
			}

			role.Reset()
			for _, p := range perms {
				role.Add(p)
			}
			role.Default = name == model.DefaultRoleName
			if err := tx.Save(&role).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *RoleRepository) FindDefault(ctx context.Context) (*model.Role, error) {
	var role model.Role
	err := r.DB.WithContext(ctx).Where("`default` = ?", true).First(&role).Error
	return &role, err
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&role).Error
	return &role, err
}

func (r *RoleRepository) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&roles).Error
	return roles, err
}
