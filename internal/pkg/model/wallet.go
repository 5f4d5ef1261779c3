package model

import "time"

// Wallet holds one on-chain keypair owned by a user. PrivateKey and Mnemonic
// are stored AES-GCM sealed when ENCRYPTION_KEY is configured, plaintext
// otherwise, and are never serialized in API responses.
type Wallet struct {
	Id         uint64    `gorm:"primaryKey" json:"id"`
	UserId     uint64    `json:"userId"`
	Address    string    `gorm:"uniqueIndex" json:"address"`
	PrivateKey string    `json:"-"`
	Mnemonic   *string   `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	User       *User     `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

func (Wallet) TableName() string {
	return "wallets"
}
