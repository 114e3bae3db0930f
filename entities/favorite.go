package entities

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a join fact with no identity of its own, at most one row
// per (user, recipe) pair.
type Favorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}
