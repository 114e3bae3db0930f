package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"tastebook/domain"
	"tastebook/entities"
	"tastebook/internal/utils/mailing"
	"tastebook/internal/utils/storage"
	"tastebook/pkg/auth"
	"tastebook/pkg/crypto"
	"tastebook/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, identity *auth.Identity) (domain.UserResponse, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, identity *auth.Identity) (domain.UserResponse, error)
		UpdateAvatar(ctx context.Context, file *multipart.FileHeader, identity *auth.Identity) (string, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		DeleteUser(ctx context.Context, targetID string, identity *auth.Identity) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		cipher         crypto.CredentialCipher
		mailer         mailing.Mailer
		s3             storage.AwsS3
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	cipher crypto.CredentialCipher,
	mailer mailing.Mailer,
	s3 storage.AwsS3,
) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		cipher:         cipher,
		mailer:         mailer,
		s3:             s3,
	}
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		AvatarURL: user.AvatarURL,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.UserResponse{}, domain.ErrEmailAlreadyUsed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return domain.UserResponse{}, domain.ErrUsernameAlreadyUsed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	encrypted, err := s.cipher.Encrypt(req.Password)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: encrypted,
		IsAdmin:  false,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}

	// Welcome mail is best effort, registration already succeeded.
	body := fmt.Sprintf("<p>Hi %s, welcome to Tastebook!</p>", user.Username)
	if err := s.mailer.SendMail(user.Email, "Welcome to Tastebook", body); err != nil {
		log.Printf("failed to send welcome mail: %v", err)
	}

	return toUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	// A decrypt failure means the stored credential does not verify, not
	// that the system is broken.
	stored, err := s.cipher.Decrypt(user.Password)
	if err != nil || stored != req.Password {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	return domain.LoginResponse{
		Token: s.jwtService.GenerateToken(user),
		User:  toUserResponse(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, identity *auth.Identity) (domain.UserResponse, error) {
	if identity == nil {
		return domain.UserResponse{}, domain.ErrUnauthenticated
	}

	user, err := s.userRepository.GetUserByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, identity *auth.Identity) (domain.UserResponse, error) {
	if identity == nil {
		return domain.UserResponse{}, domain.ErrUnauthenticated
	}

	user, err := s.userRepository.GetUserByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if _, err := s.userRepository.GetUserByUsername(ctx, *req.Username); err == nil {
			return domain.UserResponse{}, domain.ErrUsernameAlreadyUsed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, err
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.userRepository.GetUserByEmail(ctx, *req.Email); err == nil {
			return domain.UserResponse{}, domain.ErrEmailAlreadyUsed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, err
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		encrypted, err := s.cipher.Encrypt(*req.Password)
		if err != nil {
			return domain.UserResponse{}, err
		}
		user.Password = encrypted
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateAvatar(ctx context.Context, file *multipart.FileHeader, identity *auth.Identity) (string, error) {
	if identity == nil {
		return "", domain.ErrUnauthenticated
	}

	user, err := s.userRepository.GetUserByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	key := fmt.Sprintf("avatars/%s/%s", user.ID, uuid.New())
	url, err := s.s3.UploadFile(ctx, key, file)
	if err != nil {
		return "", err
	}

	user.AvatarURL = url
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return "", err
	}
	return url, nil
}

// ForgotPassword mails the stored plaintext back to the user. This is why
// credentials are stored with a reversible cipher instead of a one-way
// hash.
func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	password, err := s.cipher.Decrypt(user.Password)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your Tastebook password is: <b>%s</b></p>",
		user.Username, password,
	)
	return s.mailer.SendMail(user.Email, "Your Tastebook password", body)
}

func (s *userService) DeleteUser(ctx context.Context, targetID string, identity *auth.Identity) error {
	user, err := s.userRepository.GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	// The user record is its own owner: self or admin only.
	if !auth.Authorize(identity, user.ID.String()) {
		return domain.ErrUserNotAllowed
	}

	return s.userRepository.DeleteUserCascade(ctx, targetID)
}
