package user

import (
	"gorm.io/gorm"

	"github.com/jetcv-labs/jetcv-backend/internal/pkg/model"
)

// userRepository narrows persistence to the calls the service makes, so the
// error mapping can be exercised against an in-memory store.
type userRepository interface {
	create(user *model.User) error
	list() ([]UserListItem, error)
	// get loads the bare row; getWithWallets preloads the wallet association.
	get(id uint64) (*model.User, error)
	getWithWallets(id uint64) (*model.User, error)
	save(user *model.User) error
	delete(id uint64) (int64, error)
}

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *gormUserRepository) list() ([]UserListItem, error) {
	items := []UserListItem{}
	result := r.db.
		Table("users").
		Joins("LEFT JOIN wallets ON wallets.user_id = users.id").
		Group("users.id").
		Select(`
			users.id,
			users.name,
			users.email,
			users.created_at,
			COUNT(wallets.id) AS wallet_count
		`).
		Scan(&items)
	return items, result.Error
}

func (r *gormUserRepository) get(id uint64) (*model.User, error) {
	var user model.User
	if result := r.db.First(&user, id); result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *gormUserRepository) getWithWallets(id uint64) (*model.User, error) {
	var user model.User
	if result := r.db.Preload("Wallets").First(&user, id); result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *gormUserRepository) save(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *gormUserRepository) delete(id uint64) (int64, error) {
	result := r.db.Delete(&model.User{}, id)
	return result.RowsAffected, result.Error
}
