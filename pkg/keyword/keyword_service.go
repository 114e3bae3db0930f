package keyword

import (
	"context"
	"errors"

	"tastebook/domain"
	"tastebook/entities"
	"tastebook/pkg/auth"
	"tastebook/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// KeywordService manages the recipe-keyword many-to-many association.
	// Matching is by word value, not keyword identity.
	KeywordService interface {
		Attach(ctx context.Context, recipeID, word string, identity *auth.Identity) error
		Detach(ctx context.Context, recipeID, word string, identity *auth.Identity) error
	}

	keywordService struct {
		keywordRepository KeywordRepository
		recipeRepository  recipe.RecipeRepository
	}
)

func NewKeywordService(keywordRepository KeywordRepository, recipeRepository recipe.RecipeRepository) KeywordService {
	return &keywordService{
		keywordRepository: keywordRepository,
		recipeRepository:  recipeRepository,
	}
}

func (s *keywordService) ownedRecipe(ctx context.Context, recipeID string, identity *auth.Identity) (*entities.Recipe, error) {
	rec, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if !auth.Authorize(identity, rec.UserID.String()) {
		return nil, domain.ErrUserNotAllowed
	}
	return rec, nil
}

// Attach finds or creates the keyword by exact word, then links it to the
// recipe. Linking the same word twice is reported as ErrAlreadyLinked so
// callers can distinguish a no-op from a new link.
func (s *keywordService) Attach(ctx context.Context, recipeID, word string, identity *auth.Identity) error {
	rec, err := s.ownedRecipe(ctx, recipeID, identity)
	if err != nil {
		return err
	}

	keyword, err := s.keywordRepository.GetKeywordByWord(ctx, word)
	if err != nil {
		if !isNotFound(err) {
			return err
		}
		keyword = &entities.Keyword{ID: uuid.New(), Word: word}
		if err := s.keywordRepository.CreateKeyword(ctx, keyword); err != nil {
			return err
		}
	}

	linked, err := s.keywordRepository.LinkExists(ctx, recipeID, keyword.ID.String())
	if err != nil {
		return err
	}
	if linked {
		return domain.ErrAlreadyLinked
	}

	err = s.keywordRepository.CreateLink(ctx, &entities.RecipeKeyword{
		RecipeID:  rec.ID,
		KeywordID: keyword.ID,
	})
	if err != nil {
		// A concurrent attach of the same pair wins the insert; report the
		// conflict instead of surfacing the constraint violation.
		if linked, checkErr := s.keywordRepository.LinkExists(ctx, recipeID, keyword.ID.String()); checkErr == nil && linked {
			return domain.ErrAlreadyLinked
		}
		return err
	}
	return nil
}

// Detach removes the link only. The keyword row stays, other recipes may
// still reference it.
func (s *keywordService) Detach(ctx context.Context, recipeID, word string, identity *auth.Identity) error {
	if _, err := s.ownedRecipe(ctx, recipeID, identity); err != nil {
		return err
	}

	keyword, err := s.keywordRepository.GetKeywordByWord(ctx, word)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrKeywordNotLinked
		}
		return err
	}

	linked, err := s.keywordRepository.LinkExists(ctx, recipeID, keyword.ID.String())
	if err != nil {
		return err
	}
	if !linked {
		return domain.ErrKeywordNotLinked
	}

	return s.keywordRepository.DeleteLink(ctx, recipeID, keyword.ID.String())
}
