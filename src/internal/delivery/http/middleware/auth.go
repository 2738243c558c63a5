package middleware

import (
	"fmt"
	"strings"

	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/token"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const authLocalsKey = "auth"

// VerifyBearer validates the Authorization header and stashes the caller
// identity in the request locals for GetUser.
func VerifyBearer(v *viper.Viper, logger log.Log) fiber.Handler {
	secret := []byte(v.GetString("jwt.secret"))

	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "missing or malformed authorization header"
			return utils.ResponseError(errObj, ctx)
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claim := new(token.Claim)
		parsed, err := jwt.ParseWithClaims(tokenString, claim, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !parsed.Valid {
			logger.Warn("middleware", "rejected bearer token", "VerifyBearer", fmt.Sprintf("%v", err))
			errObj := httpError.NewUnauthorized()
			errObj.Message = "invalid or expired token"
			return utils.ResponseError(errObj, ctx)
		}
		if claim.Metadata.UserID == "" {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "token has no subject"
			return utils.ResponseError(errObj, ctx)
		}

		ctx.Locals(authLocalsKey, &claim.Metadata)
		return ctx.Next()
	}
}

// RequireAdmin gates the admin surface. It must run after VerifyBearer.
func RequireAdmin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		auth := GetUser(ctx)
		if auth == nil || !auth.IsAdmin {
			errObj := httpError.NewForbidden()
			errObj.Message = "admin access required"
			return utils.ResponseError(errObj, ctx)
		}
		return ctx.Next()
	}
}

// VerifyWebhookKey authenticates the funding provider callback with the
// shared key agreed out of band.
func VerifyWebhookKey(v *viper.Viper) fiber.Handler {
	expected := v.GetString("webhook.key")

	return func(ctx *fiber.Ctx) error {
		if expected == "" || ctx.Get("X-Webhook-Key") != expected {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "invalid webhook key"
			return utils.ResponseError(errObj, ctx)
		}
		return ctx.Next()
	}
}

// GetUser returns the identity stored by VerifyBearer, or nil when the route
// is unauthenticated.
func GetUser(ctx *fiber.Ctx) *token.Metadata {
	metadata, ok := ctx.Locals(authLocalsKey).(*token.Metadata)
	if !ok {
		return nil
	}
	return metadata
}
