package errors

import (
	"errors"
)

var (
	ErrProductNotFound = errors.New("product code not registered in catalog")

	ErrInvalidQuantity = errors.New("quantity must be between 1 and 99")
	ErrQuantityLimit   = errors.New("cart line is at maximum quantity")
	ErrLineNotFound    = errors.New("cart line not found")

	ErrSessionNotReady = errors.New("draft transaction is not open")

	ErrBackendUnavailable = errors.New("register backend request failed")

	ErrScannerBusy       = errors.New("scanner is already running")
	ErrScannerNotActive  = errors.New("scanner is not running")
	ErrCameraUnavailable = errors.New("camera stream unavailable")
)
