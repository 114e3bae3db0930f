package entities

import (
	"github.com/google/uuid"
)

type Keyword struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Word string    `gorm:"uniqueIndex" json:"word"` // case-sensitive exact match

	Timestamp
}

type RecipeKeyword struct {
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	KeywordID uuid.UUID `gorm:"type:uuid;primaryKey" json:"keyword_id"`

	Recipe  *Recipe  `gorm:"foreignKey:RecipeID"`
	Keyword *Keyword `gorm:"foreignKey:KeywordID;constraint:OnDelete:RESTRICT"`
	Timestamp
}
