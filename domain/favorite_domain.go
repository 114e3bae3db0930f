package domain

import (
	"errors"
)

var (
	MessageSuccessAddFavorite    = "recipe favorited successfully"
	MessageSuccessRemoveFavorite = "favorite removed successfully"
	MessageSuccessGetFavorites   = "success get favorites"

	MessageFailedAddFavorite    = "failed to favorite recipe"
	MessageFailedRemoveFavorite = "failed to remove favorite"
	MessageFailedGetFavorites   = "failed to get favorites"

	ErrAlreadyFavorited = errors.New("recipe already favorited")
	ErrFavoriteNotFound = errors.New("favorite not found")
)
