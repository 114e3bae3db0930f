package user

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"tastebook/domain"
	"tastebook/entities"
	"tastebook/pkg/auth"
	"tastebook/pkg/crypto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepoMock struct {
	users          map[string]*entities.User
	cascadeDeleted []string
}

func newUserRepoMock() *userRepoMock {
	return &userRepoMock{users: map[string]*entities.User{}}
}

func (m *userRepoMock) CreateUser(_ context.Context, user *entities.User) error {
	m.users[user.ID.String()] = user
	return nil
}

func (m *userRepoMock) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *userRepoMock) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *userRepoMock) GetUserByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *userRepoMock) UpdateUser(_ context.Context, user *entities.User) error {
	m.users[user.ID.String()] = user
	return nil
}

func (m *userRepoMock) DeleteUserCascade(_ context.Context, id string) error {
	delete(m.users, id)
	m.cascadeDeleted = append(m.cascadeDeleted, id)
	return nil
}

type jwtStub struct{}

func (jwtStub) GenerateToken(user *entities.User) string { return "token-" + user.Username }
func (jwtStub) ParseIdentity(string) *auth.Identity { return nil }
func (jwtStub) IsAdmin(string) bool { return false }

type mailerMock struct {
	to      []string
	subject []string
	body    []string
	err     error
}

func (m *mailerMock) SendMail(toEmail, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.to = append(m.to, toEmail)
	m.subject = append(m.subject, subject)
	m.body = append(m.body, body)
	return nil
}

type s3Stub struct{}

func (s3Stub) UploadFile(_ context.Context, key string, _ *multipart.FileHeader) (string, error) {
	return "https://bucket.example.com/" + key, nil
}

func newUserFixture() (*userRepoMock, *mailerMock, UserService) {
	repo := newUserRepoMock()
	mailer := &mailerMock{}
	cipher := crypto.NewCredentialCipher("unit-test-secret")
	service := NewUserService(repo, jwtStub{}, cipher, mailer, s3Stub{})
	return repo, mailer, service
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores an encrypted credential", func(t *testing.T) {
		repo, mailer, service := newUserFixture()
		res, err := service.Register(ctx, domain.RegisterRequest{
			Username: "budi",
			Email:    "budi@example.com",
			Password: "rahasia1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored := repo.users[res.ID]
		if stored == nil {
			t.Fatal("user not persisted")
		}
		if stored.Password == "rahasia1" {
			t.Error("credential stored as plaintext")
		}
		cipher := crypto.NewCredentialCipher("unit-test-secret")
		plain, err := cipher.Decrypt(stored.Password)
		if err != nil || plain != "rahasia1" {
			t.Errorf("stored credential does not decrypt: %q, %v", plain, err)
		}
		if stored.IsAdmin {
			t.Error("new accounts must not be admin")
		}
		if len(mailer.to) != 1 || mailer.to[0] != "budi@example.com" {
			t.Errorf("welcome mail not sent: %v", mailer.to)
		}
	})

	t.Run("duplicate email is rejected without creating", func(t *testing.T) {
		repo, _, service := newUserFixture()
		if _, err := service.Register(ctx, domain.RegisterRequest{
			Username: "budi", Email: "budi@example.com", Password: "rahasia1",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := service.Register(ctx, domain.RegisterRequest{
			Username: "other", Email: "budi@example.com", Password: "rahasia2",
		})
		if !errors.Is(err, domain.ErrEmailAlreadyUsed) {
			t.Fatalf("expected ErrEmailAlreadyUsed, got %v", err)
		}
		if len(repo.users) != 1 {
			t.Errorf("expected 1 user, got %d", len(repo.users))
		}
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		_, _, service := newUserFixture()
		if _, err := service.Register(ctx, domain.RegisterRequest{
			Username: "budi", Email: "budi@example.com", Password: "rahasia1",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := service.Register(ctx, domain.RegisterRequest{
			Username: "budi", Email: "budi2@example.com", Password: "rahasia2",
		})
		if !errors.Is(err, domain.ErrUsernameAlreadyUsed) {
			t.Fatalf("expected ErrUsernameAlreadyUsed, got %v", err)
		}
	})

	t.Run("mail failure does not fail registration", func(t *testing.T) {
		repo := newUserRepoMock()
		mailer := &mailerMock{err: errors.New("smtp down")}
		cipher := crypto.NewCredentialCipher("unit-test-secret")
		service := NewUserService(repo, jwtStub{}, cipher, mailer, s3Stub{})

		if _, err := service.Register(ctx, domain.RegisterRequest{
			Username: "budi", Email: "budi@example.com", Password: "rahasia1",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.users) != 1 {
			t.Error("user not persisted when mail fails")
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	_, _, service := newUserFixture()
	if _, err := service.Register(ctx, domain.RegisterRequest{
		Username: "budi", Email: "budi@example.com", Password: "rahasia1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("valid credentials yield a token", func(t *testing.T) {
		res, err := service.Login(ctx, domain.LoginRequest{Email: "budi@example.com", Password: "rahasia1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Token != "token-budi" {
			t.Errorf("unexpected token: %q", res.Token)
		}
		if res.User.Email != "budi@example.com" {
			t.Errorf("unexpected user payload: %+v", res.User)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, domain.LoginRequest{Email: "budi@example.com", Password: "wrong"})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "x"})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestForgotPasswordMailsPlaintext(t *testing.T) {
	ctx := context.Background()
	_, mailer, service := newUserFixture()
	if _, err := service.Register(ctx, domain.RegisterRequest{
		Username: "budi", Email: "budi@example.com", Password: "rahasia1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := service.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: "budi@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := mailer.body[len(mailer.body)-1]
	if !strings.Contains(last, "rahasia1") {
		t.Errorf("recovery mail missing decrypted credential: %q", last)
	}

	err := service.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: "ghost@example.com"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUserPatchSemantics(t *testing.T) {
	ctx := context.Background()
	_, _, service := newUserFixture()
	res, err := service.Register(ctx, domain.RegisterRequest{
		Username: "budi", Email: "budi@example.com", Password: "rahasia1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	identity := &auth.Identity{UserID: res.ID}

	newName := "budi-baru"
	updated, err := service.UpdateUser(ctx, domain.UpdateUserRequest{Username: &newName}, identity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Username != newName {
		t.Errorf("username not updated: %q", updated.Username)
	}
	if updated.Email != "budi@example.com" {
		t.Errorf("email changed by nil field: %q", updated.Email)
	}

	// Login must still work after a password change.
	newPassword := "rahasia2"
	if _, err := service.UpdateUser(ctx, domain.UpdateUserRequest{Password: &newPassword}, identity); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Login(ctx, domain.LoginRequest{Email: "budi@example.com", Password: "rahasia2"}); err != nil {
		t.Fatalf("login after password change failed: %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("stranger cannot delete", func(t *testing.T) {
		repo, _, service := newUserFixture()
		res, err := service.Register(ctx, domain.RegisterRequest{
			Username: "budi", Email: "budi@example.com", Password: "rahasia1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stranger := &auth.Identity{UserID: uuid.New().String()}
		err = service.DeleteUser(ctx, res.ID, stranger)
		if !errors.Is(err, domain.ErrUserNotAllowed) {
			t.Fatalf("expected ErrUserNotAllowed, got %v", err)
		}
		if len(repo.users) != 1 {
			t.Error("user deleted despite rejection")
		}
	})

	t.Run("self delete cascades", func(t *testing.T) {
		repo, _, service := newUserFixture()
		res, err := service.Register(ctx, domain.RegisterRequest{
			Username: "budi", Email: "budi@example.com", Password: "rahasia1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		self := &auth.Identity{UserID: res.ID}
		if err := service.DeleteUser(ctx, res.ID, self); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.cascadeDeleted) != 1 || repo.cascadeDeleted[0] != res.ID {
			t.Errorf("cascade not recorded: %v", repo.cascadeDeleted)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		_, _, service := newUserFixture()
		admin := &auth.Identity{UserID: uuid.New().String(), IsAdmin: true}
		err := service.DeleteUser(ctx, uuid.New().String(), admin)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}
