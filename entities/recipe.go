package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Instructions  string    `json:"instructions" gorm:"type:text"`
	IsPublic      bool      `json:"is_public"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`

	User *User `gorm:"foreignKey:UserID"`

	// Dependents reject engine-level cascades; the aggregate delete in
	// pkg/recipe is the only path that may remove them.
	Ingredients []*Ingredient    `gorm:"foreignKey:RecipeID;constraint:OnDelete:RESTRICT"`
	Images      []*RecipeImage   `gorm:"foreignKey:RecipeID;constraint:OnDelete:RESTRICT"`
	Reviews     []*Review        `gorm:"foreignKey:RecipeID;constraint:OnDelete:RESTRICT"`
	Keywords    []*RecipeKeyword `gorm:"foreignKey:RecipeID;constraint:OnDelete:RESTRICT"`
	Favorites   []*Favorite      `gorm:"foreignKey:RecipeID;constraint:OnDelete:RESTRICT"`
	Timestamp
}

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `json:"recipe_id"`
	Name     string    `json:"name"`
	Amount   float64   `json:"amount"`
	Unit     string    `json:"unit"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type RecipeImage struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `json:"recipe_id"`
	Data     []byte    `gorm:"type:bytea" json:"-"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}
