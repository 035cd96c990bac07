package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TokenTypeAccess marks tokens that may call the API. Tokens without a
// type claim are treated as access tokens.
const TokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(jobseekerID string, role identity.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

// NewJWTService verifies tokens signed with the backend's shared HS256 secret.
func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(jobseekerID string, role identity.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"jobseeker_id": jobseekerID,
		"role":         string(role),
		"type":         TokenTypeAccess,
		"exp":          expiresAt,
	})
	return tokenString, expiresAt, err
}

// IdentityFromClaims reads jobseeker_id and role from verified claims.
// Tokens issued by the backend carry numeric ids, so numbers are accepted.
func IdentityFromClaims(claims map[string]interface{}) identity.Identity {
	id := identity.Identity{Role: identity.RoleJobseeker}

	switch v := claims["jobseeker_id"].(type) {
	case string:
		id.JobseekerID = v
	case float64:
		id.JobseekerID = strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		id.JobseekerID = strconv.FormatInt(v, 10)
	case nil:
	default:
		id.JobseekerID = fmt.Sprint(v)
	}

	if role, ok := claims["role"].(string); ok && identity.Role(role).Valid() {
		id.Role = identity.Role(role)
	}
	return id
}
