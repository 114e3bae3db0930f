package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username  string    `gorm:"uniqueIndex" json:"username"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Password  string    `json:"-"` // reversible AES ciphertext, never plaintext
	IsAdmin   bool      `json:"is_admin"`
	AvatarURL string    `json:"avatar_url,omitempty"`

	Recipes   []*Recipe   `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Reviews   []*Review   `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Favorites []*Favorite `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Timestamp
}
