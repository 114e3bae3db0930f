package favorite

import (
	"context"
	"errors"
	"testing"

	"tastebook/domain"
	"tastebook/entities"
	"tastebook/pkg/auth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepoStub struct {
	users map[string]*entities.User
}

func (s *userRepoStub) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *userRepoStub) CreateUser(context.Context, *entities.User) error { return nil }
func (s *userRepoStub) GetUserByEmail(context.Context, string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *userRepoStub) GetUserByUsername(context.Context, string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *userRepoStub) UpdateUser(context.Context, *entities.User) error { return nil }
func (s *userRepoStub) DeleteUserCascade(context.Context, string) error { return nil }

type recipeRepoStub struct {
	recipes map[string]*entities.Recipe
}

func (s *recipeRepoStub) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	recipe, ok := s.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (s *recipeRepoStub) CreateRecipeAggregate(context.Context, *entities.Recipe, []string) error {
	return nil
}
func (s *recipeRepoStub) GetRecipes(context.Context, string, bool) ([]*entities.Recipe, error) {
	return nil, nil
}
func (s *recipeRepoStub) GetRecipeKeywords(context.Context, string) ([]string, error) {
	return nil, nil
}
func (s *recipeRepoStub) UpdateRecipe(context.Context, *entities.Recipe) error { return nil }
func (s *recipeRepoStub) DeleteRecipeCascade(context.Context, string) error { return nil }
func (s *recipeRepoStub) AddIngredient(context.Context, *entities.Ingredient) error { return nil }
func (s *recipeRepoStub) GetIngredientByID(context.Context, string) (*entities.Ingredient, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *recipeRepoStub) DeleteIngredient(context.Context, string) error { return nil }
func (s *recipeRepoStub) AddImage(context.Context, *entities.RecipeImage) error { return nil }
func (s *recipeRepoStub) GetImageByID(context.Context, string) (*entities.RecipeImage, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *recipeRepoStub) GetImageIDs(context.Context, string) ([]string, error) { return nil, nil }
func (s *recipeRepoStub) DeleteImage(context.Context, string) error { return nil }

type favoriteRepoMock struct {
	rows    map[string]*entities.Favorite
	recipes *recipeRepoStub
}

func pairKey(userID, recipeID string) string { return userID + "/" + recipeID }

func (m *favoriteRepoMock) FavoriteExists(_ context.Context, userID, recipeID string) (bool, error) {
	_, ok := m.rows[pairKey(userID, recipeID)]
	return ok, nil
}

func (m *favoriteRepoMock) CreateFavorite(_ context.Context, favorite *entities.Favorite) error {
	m.rows[pairKey(favorite.UserID.String(), favorite.RecipeID.String())] = favorite
	return nil
}

func (m *favoriteRepoMock) DeleteFavorite(_ context.Context, userID, recipeID string) error {
	delete(m.rows, pairKey(userID, recipeID))
	return nil
}

func (m *favoriteRepoMock) GetFavoriteRecipes(_ context.Context, userID string) ([]*entities.Recipe, error) {
	var out []*entities.Recipe
	for _, row := range m.rows {
		if row.UserID.String() == userID {
			if recipe, ok := m.recipes.recipes[row.RecipeID.String()]; ok {
				out = append(out, recipe)
			}
		}
	}
	return out, nil
}

func newFavoriteFixture() (*favoriteRepoMock, FavoriteService, *entities.User, *entities.Recipe) {
	user := &entities.User{ID: uuid.New(), Username: "dina"}
	recipe := &entities.Recipe{ID: uuid.New(), UserID: uuid.New(), Name: "Nasi Goreng", IsPublic: true}

	users := &userRepoStub{users: map[string]*entities.User{user.ID.String(): user}}
	recipes := &recipeRepoStub{recipes: map[string]*entities.Recipe{recipe.ID.String(): recipe}}
	repo := &favoriteRepoMock{rows: map[string]*entities.Favorite{}, recipes: recipes}

	return repo, NewFavoriteService(repo, users, recipes), user, recipe
}

func TestAddFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("records the pair once", func(t *testing.T) {
		repo, service, user, recipe := newFavoriteFixture()
		identity := &auth.Identity{UserID: user.ID.String()}

		if err := service.AddFavorite(ctx, recipe.ID.String(), identity); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := service.AddFavorite(ctx, recipe.ID.String(), identity)
		if !errors.Is(err, domain.ErrAlreadyFavorited) {
			t.Fatalf("expected ErrAlreadyFavorited, got %v", err)
		}
		if len(repo.rows) != 1 {
			t.Errorf("expected 1 row, got %d", len(repo.rows))
		}
	})

	t.Run("missing recipe", func(t *testing.T) {
		_, service, user, _ := newFavoriteFixture()
		identity := &auth.Identity{UserID: user.ID.String()}
		err := service.AddFavorite(ctx, uuid.New().String(), identity)
		if !errors.Is(err, domain.ErrRecipeNotFound) {
			t.Fatalf("expected ErrRecipeNotFound, got %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		_, service, _, recipe := newFavoriteFixture()
		identity := &auth.Identity{UserID: uuid.New().String()}
		err := service.AddFavorite(ctx, recipe.ID.String(), identity)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		_, service, _, recipe := newFavoriteFixture()
		err := service.AddFavorite(ctx, recipe.ID.String(), nil)
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})
}

func TestAddFavoritePrivateRecipe(t *testing.T) {
	ctx := context.Background()
	repo, service, user, _ := newFavoriteFixture()

	t.Run("stranger gets not found and writes nothing", func(t *testing.T) {
		private := &entities.Recipe{ID: uuid.New(), UserID: uuid.New(), Name: "Secret", IsPublic: false}
		repo.recipes.recipes[private.ID.String()] = private

		identity := &auth.Identity{UserID: user.ID.String()}
		err := service.AddFavorite(ctx, private.ID.String(), identity)
		if !errors.Is(err, domain.ErrRecipeNotFound) {
			t.Fatalf("expected ErrRecipeNotFound, got %v", err)
		}
		if len(repo.rows) != 0 {
			t.Errorf("favorite stored on a private recipe: %d rows", len(repo.rows))
		}
	})

	t.Run("owner may favorite their own private recipe", func(t *testing.T) {
		private := &entities.Recipe{ID: uuid.New(), UserID: user.ID, Name: "My Secret", IsPublic: false}
		repo.recipes.recipes[private.ID.String()] = private

		identity := &auth.Identity{UserID: user.ID.String()}
		if err := service.AddFavorite(ctx, private.ID.String(), identity); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestRemoveFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("removes an existing pair", func(t *testing.T) {
		repo, service, user, recipe := newFavoriteFixture()
		identity := &auth.Identity{UserID: user.ID.String()}

		if err := service.AddFavorite(ctx, recipe.ID.String(), identity); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := service.RemoveFavorite(ctx, recipe.ID.String(), identity); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.rows) != 0 {
			t.Error("favorite row survived removal")
		}
	})

	t.Run("pair never recorded", func(t *testing.T) {
		_, service, user, recipe := newFavoriteFixture()
		identity := &auth.Identity{UserID: user.ID.String()}
		err := service.RemoveFavorite(ctx, recipe.ID.String(), identity)
		if !errors.Is(err, domain.ErrFavoriteNotFound) {
			t.Fatalf("expected ErrFavoriteNotFound, got %v", err)
		}
	})
}

func TestGetFavorites(t *testing.T) {
	ctx := context.Background()
	_, service, user, recipe := newFavoriteFixture()
	identity := &auth.Identity{UserID: user.ID.String()}

	res, err := service.GetFavorites(ctx, identity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res) != 0 {
		t.Errorf("expected empty list, got %d", len(res))
	}

	if err := service.AddFavorite(ctx, recipe.ID.String(), identity); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err = service.GetFavorites(ctx, identity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res) != 1 || res[0].ID != recipe.ID.String() {
		t.Errorf("unexpected favorites: %+v", res)
	}
}
