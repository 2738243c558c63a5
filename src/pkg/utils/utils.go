package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	httpError "wallet-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Result is the envelope every usecase returns to the delivery layer.
type Result struct {
	Data  interface{}
	Error error
}

type responseEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
}

func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(responseEnvelope{
		Success: true,
		Message: message,
		Code:    code,
		Data:    data,
	})
}

func ResponseError(err error, ctx *fiber.Ctx) error {
	if commonErr, ok := err.(httpError.CommonError); ok {
		return ctx.Status(commonErr.Code).JSON(responseEnvelope{
			Success: false,
			Message: commonErr.Message,
			Code:    commonErr.Code,
		})
	}
	return ctx.Status(fiber.StatusBadRequest).JSON(responseEnvelope{
		Success: false,
		Message: err.Error(),
		Code:    fiber.StatusBadRequest,
	})
}

// ConvertString renders any value as a string for log metadata.
func ConvertString(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case error:
		return value.Error()
	case []byte:
		return string(value)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%+v", v)
		}
		return string(data)
	}
}

func ConvertInt(v interface{}) int {
	switch value := v.(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	case string:
		n, _ := strconv.Atoi(value)
		return n
	default:
		return 0
	}
}

// NewReference builds a caller-generated unique transaction reference, e.g.
// "AIR-20260901-9f1c2ab4". One attempt gets exactly one reference; a retry by
// the user is a new attempt with a new reference.
func NewReference(prefix string) string {
	short := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(prefix), time.Now().Format("20060102"), short)
}
