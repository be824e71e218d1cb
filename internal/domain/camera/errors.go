package camera

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrPermissionDenied = errors.New("camera permission denied")
	ErrDeviceNotFound   = errors.New("camera device not found")
	ErrNoFrame          = errors.New("camera has not produced a frame yet")
	ErrStopped          = errors.New("camera stream stopped")
)

type FailureKind string

const (
	FailurePermissionDenied FailureKind = "permission_denied"
	FailureNotFound         FailureKind = "not_found"
	FailureGeneric          FailureKind = "generic"
)

const (
	MessagePermissionDenied = "Camera access denied. Please allow camera access and try again."
	MessageNotFound         = "No camera found on this device."
	MessageGeneric          = "Unable to access camera. Please try again."
)

// Failure es la forma que ve el usuario de un error de adquisición.
type Failure struct {
	Kind    FailureKind
	Message string
}

// Classify mapea cualquier error de adquisición a uno de los tres mensajes.
func Classify(err error) Failure {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return Failure{Kind: FailurePermissionDenied, Message: MessagePermissionDenied}
	case errors.Is(err, ErrDeviceNotFound):
		return Failure{Kind: FailureNotFound, Message: MessageNotFound}
	default:
		return Failure{Kind: FailureGeneric, Message: MessageGeneric}
	}
}

// PlatformError es el rechazo tal como lo reporta el navegador (DOMException.name).
type PlatformError struct {
	Name string
	err  error
}

func (e *PlatformError) Error() string {
	if e.Name == "" {
		return "camera platform error"
	}
	return "camera platform error: " + e.Name
}

func (e *PlatformError) Unwrap() error { return e.err }

// FromPlatformName traduce el nombre de error del navegador a los sentinels.
func FromPlatformName(name string) error {
	name = strings.TrimSpace(name)

	var cause error
	switch name {
	case "NotAllowedError", "SecurityError", "PermissionDeniedError":
		cause = ErrPermissionDenied
	case "NotFoundError", "OverconstrainedError", "DevicesNotFoundError":
		cause = ErrDeviceNotFound
	}
	return &PlatformError{Name: name, err: cause}
}

// IsCanceled distingue una adquisición abandonada (cambio de paso, teardown)
// de un fallo real; las canceladas no se muestran al usuario.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
