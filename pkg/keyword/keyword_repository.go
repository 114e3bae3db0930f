package keyword

import (
	"context"
	"errors"

	"tastebook/entities"

	"gorm.io/gorm"
)

type (
	KeywordRepository interface {
		GetKeywordByWord(ctx context.Context, word string) (*entities.Keyword, error)
		CreateKeyword(ctx context.Context, keyword *entities.Keyword) error
		LinkExists(ctx context.Context, recipeID, keywordID string) (bool, error)
		CreateLink(ctx context.Context, link *entities.RecipeKeyword) error
		DeleteLink(ctx context.Context, recipeID, keywordID string) error
	}

	keywordRepository struct {
		db *gorm.DB
	}
)

func NewKeywordRepository(db *gorm.DB) KeywordRepository {
	return &keywordRepository{db: db}
}

func (r *keywordRepository) GetKeywordByWord(ctx context.Context, word string) (*entities.Keyword, error) {
	var keyword entities.Keyword
	// Case-sensitive exact match.
	if err := r.db.WithContext(ctx).Where("word = ?", word).First(&keyword).Error; err != nil {
		return nil, err
	}
	return &keyword, nil
}

// CreateKeyword tolerates a duplicate-creation race on the unique word
// index: when the insert fails but the word is now present, the existing
// row is loaded into keyword and no error is returned.
func (r *keywordRepository) CreateKeyword(ctx context.Context, keyword *entities.Keyword) error {
	if err := r.db.WithContext(ctx).Create(keyword).Error; err != nil {
		var existing entities.Keyword
		if lookupErr := r.db.WithContext(ctx).
			Where("word = ?", keyword.Word).
			First(&existing).Error; lookupErr == nil {
			*keyword = existing
			return nil
		}
		return err
	}
	return nil
}

func (r *keywordRepository) LinkExists(ctx context.Context, recipeID, keywordID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeKeyword{}).
		Where("recipe_id = ? AND keyword_id = ?", recipeID, keywordID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *keywordRepository) CreateLink(ctx context.Context, link *entities.RecipeKeyword) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *keywordRepository) DeleteLink(ctx context.Context, recipeID, keywordID string) error {
	return r.db.WithContext(ctx).
		Where("recipe_id = ? AND keyword_id = ?", recipeID, keywordID).
		Delete(&entities.RecipeKeyword{}).Error
}

// helper used by the service to distinguish "keyword row absent" from
// other storage failures
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
