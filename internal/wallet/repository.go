package wallet

import (
	"gorm.io/gorm"

	"github.com/jetcv-labs/jetcv-backend/internal/pkg/model"
)

// walletRepository narrows persistence to the calls the service makes, so the
// error mapping can be exercised against an in-memory store.
type walletRepository interface {
	create(wallet *model.Wallet) error
	list() ([]model.Wallet, error)
	listByUser(userId uint64) ([]model.Wallet, error)
	// get loads the bare row; getWithOwner preloads the owning user.
	get(id uint64) (*model.Wallet, error)
	getWithOwner(id uint64) (*model.Wallet, error)
	save(wallet *model.Wallet) error
	delete(id uint64) (int64, error)
}

type gormWalletRepository struct {
	db *gorm.DB
}

func (r *gormWalletRepository) create(wallet *model.Wallet) error {
	return r.db.Create(wallet).Error
}

func (r *gormWalletRepository) list() ([]model.Wallet, error) {
	var wallets []model.Wallet
	result := r.db.Preload("User").Find(&wallets)
	return wallets, result.Error
}

func (r *gormWalletRepository) listByUser(userId uint64) ([]model.Wallet, error) {
	var wallets []model.Wallet
	result := r.db.Where("user_id = ?", userId).Find(&wallets)
	return wallets, result.Error
}

func (r *gormWalletRepository) get(id uint64) (*model.Wallet, error) {
	var wallet model.Wallet
	if result := r.db.First(&wallet, id); result.Error != nil {
		return nil, result.Error
	}
	return &wallet, nil
}

func (r *gormWalletRepository) getWithOwner(id uint64) (*model.Wallet, error) {
	var wallet model.Wallet
	if result := r.db.Preload("User").First(&wallet, id); result.Error != nil {
		return nil, result.Error
	}
	return &wallet, nil
}

func (r *gormWalletRepository) save(wallet *model.Wallet) error {
	return r.db.Save(wallet).Error
}

func (r *gormWalletRepository) delete(id uint64) (int64, error) {
	result := r.db.Delete(&model.Wallet{}, id)
	return result.RowsAffected, result.Error
}
