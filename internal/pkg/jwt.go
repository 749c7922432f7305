package pkg

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrTokenParseFailure = errors.New("token parse failure")
	ErrTokenNoIdentity   = errors.New("token carries no identity")
)

const AccessTTL = time.Minute * 30

// AccessSecret 启动时由配置写入
var AccessSecret = []byte("secret-key")

func InitJWT(secret string) {
	AccessSecret = []byte(secret)
}

// Claims 认证服务签发的令牌，email 是身份主键
type Claims struct {
	Email string `json:"email"`
	Role  int    `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccess 仅供本地调试与测试，线上令牌由认证服务签发
func GenerateAccess(email string, role int, ttl time.Duration) (string, error) {
	now := time.Now()
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   email,
		},
	})
	return access.SignedString(AccessSecret)
}

// ParseAccess 解析 access，不带 exp 的令牌视为无效
func ParseAccess(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return AccessSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, err
		}
	}
	if !token.Valid {
		return nil, ErrTokenParseFailure
	}
	claims := token.Claims.(*Claims)
	if claims.Email == "" {
		claims.Email = claims.Subject
	}
	if claims.Email == "" {
		return nil, ErrTokenNoIdentity
	}
	return claims, nil
}

// TTLOf 令牌剩余有效期，吊销时用作 key 过期时间
func TTLOf(claims *Claims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return AccessTTL
	}
	d := time.Until(claims.ExpiresAt.Time)
	if d <= 0 {
		return 0
	}
	return d
}
