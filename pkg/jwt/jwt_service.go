package jwt

import (
	"log"
	"time"

	"tastebook/entities"
	"tastebook/internal/utils"
	"tastebook/pkg/auth"

	"github.com/golang-jwt/jwt/v4"
)

const (
	adminClaimTrue  = "True"
	adminClaimFalse = "False"
)

type (
	JWTService interface {
		GenerateToken(user *entities.User) string
		// ParseIdentity extracts the claim set without a key lookup
		// (parse-only by design). Returns nil for an empty token,
		// an unparseable token, or a token with no user_id claim.
		ParseIdentity(token string) *auth.Identity
		IsAdmin(token string) bool
	}

	jwtUserClaim struct {
		UserID  string `json:"user_id"`
		IsAdmin string `json:"is_admin"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func getSecretKey() string {
	utils.LoadConfig()
	return utils.GetConfig("JWT_SECRET")
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
		issuer:    "TASTEBOOK",
	}
}

func adminClaim(isAdmin bool) string {
	if isAdmin {
		return adminClaimTrue
	}
	return adminClaimFalse
}

func (j *jwtService) GenerateToken(user *entities.User) string {
	claims := jwtUserClaim{
		user.ID.String(),
		adminClaim(user.IsAdmin),
		jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 8)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return tx
}

func (j *jwtService) ParseIdentity(token string) *auth.Identity {
	if token == "" {
		return nil
	}

	claims := new(jwtUserClaim)
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	if claims.UserID == "" {
		return nil
	}

	return &auth.Identity{
		UserID:   claims.UserID,
		Username: claims.Subject,
		IsAdmin:  claims.IsAdmin == adminClaimTrue,
	}
}

// IsAdmin fails closed: a missing or malformed token is never admin.
func (j *jwtService) IsAdmin(token string) bool {
	identity := j.ParseIdentity(token)
	return identity != nil && identity.IsAdmin
}
