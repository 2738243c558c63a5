package httpError

import "net/http"

// CommonError is the error shape carried inside utils.Result and translated
// by the http delivery layer into a response envelope.
type CommonError struct {
	Code         int    `json:"code"`
	ResponseCode int    `json:"responseCode,omitempty"`
	Message      string `json:"message"`
}

func (e CommonError) Error() string {
	return e.Message
}

func NewBadRequest() CommonError {
	return CommonError{
		Code:    http.StatusBadRequest,
		Message: "bad request",
	}
}

func NewUnauthorized() CommonError {
	return CommonError{
		Code:    http.StatusUnauthorized,
		Message: "unauthorized",
	}
}

func NewForbidden() CommonError {
	return CommonError{
		Code:    http.StatusForbidden,
		Message: "forbidden",
	}
}

func NewNotFound() CommonError {
	return CommonError{
		Code:    http.StatusNotFound,
		Message: "not found",
	}
}

func NewConflict() CommonError {
	return CommonError{
		Code:    http.StatusConflict,
		Message: "conflict",
	}
}

// NewUnprocessableEntity covers business rejections such as insufficient
// wallet balance or an upstream provider declining the request.
func NewUnprocessableEntity() CommonError {
	return CommonError{
		Code:    http.StatusUnprocessableEntity,
		Message: "unprocessable entity",
	}
}

func NewInternalServerError() CommonError {
	return CommonError{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
	}
}

func NewServiceUnavailable() CommonError {
	return CommonError{
		Code:    http.StatusServiceUnavailable,
		Message: "service unavailable",
	}
}

// NewGatewayTimeout marks an ambiguous upstream outcome. The transaction it
// relates to stays pending until an admin resolves it.
func NewGatewayTimeout() CommonError {
	return CommonError{
		Code:    http.StatusGatewayTimeout,
		Message: "gateway timeout",
	}
}
