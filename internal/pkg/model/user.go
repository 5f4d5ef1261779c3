package model

import "time"

type User struct {
	Id        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	Wallets   []Wallet  `gorm:"foreignKey:UserId" json:"wallets,omitempty"`
}

func (User) TableName() string {
	return "users"
}
