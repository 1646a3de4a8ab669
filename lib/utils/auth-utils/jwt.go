package authutils

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/models"
)

const refreshTokenType = "refresh"

func GetToken(userID uint, name string, role models.UserRole) (tokenString string, err error) {
	return getToken(config.Conf.Auth.JWTSecret, userID, name, role, time.Second*time.Duration(config.Conf.Auth.JWTExpireInSec))
}

func getToken(secret string, userID uint, name string, role models.UserRole, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"role": string(role),
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetRefreshToken(userID uint, name string) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"typ":  refreshTokenType,
		"exp":  time.Now().Add(time.Second * time.Duration(config.Conf.Auth.JWTRefreshExpireInSec)).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

// ParseRefreshToken проверяет refresh токен и возвращает ид пользователя
func ParseRefreshToken(tokenString string) (userID uint, err error) {
	claims, err := parseToken(config.Conf.Auth.JWTSecret, tokenString)
	if err != nil {
		return 0, err
	}
	if typ, _ := claims["typ"].(string); typ != refreshTokenType {
		return 0, errors.New("передан не refresh токен")
	}
	return GetUserIDFromClaims(claims)
}

func parseToken(secret, tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Wrap(err, "некорректный токен")
	}
	return claims, nil
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	return token.Claims.(jwt.MapClaims)
}

func GetUserIDFromClaims(claims jwt.MapClaims) (uint, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return 0, errors.New("в токене отсутствует идентификатор пользователя")
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "некорректный идентификатор пользователя в токене")
	}
	return uint(id), nil
}
