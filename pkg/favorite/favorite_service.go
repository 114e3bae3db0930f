package favorite

import (
	"context"
	"errors"
	"time"

	"tastebook/domain"
	"tastebook/entities"
	"tastebook/pkg/auth"
	"tastebook/pkg/recipe"
	"tastebook/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// FavoriteService is the favorite ledger: at most one row per
	// (user, recipe) pair, idempotency decided by existence.
	FavoriteService interface {
		AddFavorite(ctx context.Context, recipeID string, identity *auth.Identity) error
		RemoveFavorite(ctx context.Context, recipeID string, identity *auth.Identity) error
		GetFavorites(ctx context.Context, identity *auth.Identity) ([]domain.RecipeResponse, error)
	}

	favoriteService struct {
		favoriteRepository FavoriteRepository
		userRepository     user.UserRepository
		recipeRepository   recipe.RecipeRepository
	}
)

func NewFavoriteService(favoriteRepository FavoriteRepository, userRepository user.UserRepository, recipeRepository recipe.RecipeRepository) FavoriteService {
	return &favoriteService{
		favoriteRepository: favoriteRepository,
		userRepository:     userRepository,
		recipeRepository:   recipeRepository,
	}
}

// checkPair verifies both the user and the recipe exist before the ledger
// is touched.
func (s *favoriteService) checkPair(ctx context.Context, recipeID string, identity *auth.Identity) (userID, recID uuid.UUID, err error) {
	if identity == nil {
		return uuid.Nil, uuid.Nil, domain.ErrUnauthenticated
	}

	usr, err := s.userRepository.GetUserByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, uuid.Nil, domain.ErrUserNotFound
		}
		return uuid.Nil, uuid.Nil, err
	}

	rec, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, uuid.Nil, domain.ErrRecipeNotFound
		}
		return uuid.Nil, uuid.Nil, err
	}
	// A private recipe answers "not found" to anyone but its owner or an
	// admin, on writes as on reads.
	if !rec.IsPublic && !auth.Authorize(identity, rec.UserID.String()) {
		return uuid.Nil, uuid.Nil, domain.ErrRecipeNotFound
	}

	return usr.ID, rec.ID, nil
}

func (s *favoriteService) AddFavorite(ctx context.Context, recipeID string, identity *auth.Identity) error {
	userID, recID, err := s.checkPair(ctx, recipeID, identity)
	if err != nil {
		return err
	}

	exists, err := s.favoriteRepository.FavoriteExists(ctx, userID.String(), recID.String())
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrAlreadyFavorited
	}

	return s.favoriteRepository.CreateFavorite(ctx, &entities.Favorite{
		UserID:    userID,
		RecipeID:  recID,
		CreatedAt: time.Now(),
	})
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, recipeID string, identity *auth.Identity) error {
	userID, recID, err := s.checkPair(ctx, recipeID, identity)
	if err != nil {
		return err
	}

	exists, err := s.favoriteRepository.FavoriteExists(ctx, userID.String(), recID.String())
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrFavoriteNotFound
	}

	return s.favoriteRepository.DeleteFavorite(ctx, userID.String(), recID.String())
}

func (s *favoriteService) GetFavorites(ctx context.Context, identity *auth.Identity) ([]domain.RecipeResponse, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}

	recipes, err := s.favoriteRepository.GetFavoriteRecipes(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, rec := range recipes {
		result = append(result, domain.RecipeResponse{
			ID:            rec.ID.String(),
			UserID:        rec.UserID.String(),
			Name:          rec.Name,
			Description:   rec.Description,
			IsPublic:      rec.IsPublic,
			CoverImageURL: rec.CoverImageURL,
		})
	}
	return result, nil
}
