package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/hiyoshi/pos-register/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = map[error]ErrorMapping{
	domainErrors.ErrProductNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Product code not registered in catalog",
	},
	domainErrors.ErrInvalidQuantity: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Quantity must be between 1 and 99",
	},
	domainErrors.ErrQuantityLimit: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Cart line is at maximum quantity",
	},
	domainErrors.ErrLineNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Cart line not found",
	},
	domainErrors.ErrSessionNotReady: {
		HTTPStatus: http.StatusPreconditionFailed,
		Status:     StatusPreconditionFailed,
		Message:    "Draft transaction is not open yet",
	},
	domainErrors.ErrBackendUnavailable: {
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusServiceUnavailable,
		Message:    "Register backend request failed",
	},
	domainErrors.ErrScannerBusy: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Scanner is already running",
	},
	domainErrors.ErrScannerNotActive: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Scanner is not running",
	},
	domainErrors.ErrCameraUnavailable: {
		HTTPStatus: http.StatusServiceUnavailable,
		Status:     StatusServiceUnavailable,
		Message:    "Camera stream unavailable",
	},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for domainErr, mapping := range errorMappings {
		if errors.Is(err, domainErr) {
			return mapping.HTTPStatus, Error(mapping.Status, mapping.Message, err.Error())
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error", err.Error())
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
