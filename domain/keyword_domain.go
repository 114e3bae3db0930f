package domain

import (
	"errors"
)

var (
	MessageSuccessAttachKeyword = "keyword attached successfully"
	MessageSuccessDetachKeyword = "keyword detached successfully"

	MessageFailedAttachKeyword = "failed to attach keyword"
	MessageFailedDetachKeyword = "failed to detach keyword"

	ErrAlreadyLinked    = errors.New("keyword already linked to recipe")
	ErrKeywordNotLinked = errors.New("keyword not linked to recipe")
)

type (
	KeywordRequest struct {
		Word string `json:"word" validate:"required"`
	}
)
