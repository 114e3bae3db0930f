package entities

import (
	"github.com/google/uuid"
)

type Review struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `json:"recipe_id"`
	UserID   uuid.UUID `json:"user_id"`
	Rating   int       `json:"rating"` // always within [1,5], clamped on write
	Comment  string    `json:"comment" gorm:"type:text"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	User   *User   `gorm:"foreignKey:UserID"`
	Timestamp
}
