package camera

import (
	"context"
	"image"
)

// Facing indica qué sensor se pide al dispositivo.
type Facing string

const (
	FacingEnvironment Facing = "environment" // cámara trasera
	FacingUser        Facing = "user"
)

// Constraints es lo que se pide al abrir la cámara; el dispositivo puede
// entregar otra resolución (ideal, no exacta).
type Constraints struct {
	Facing      Facing
	IdealWidth  int
	IdealHeight int
}

// DefaultConstraints: cámara trasera a 1280x720.
func DefaultConstraints() Constraints {
	return Constraints{
		Facing:      FacingEnvironment,
		IdealWidth:  1280,
		IdealHeight: 720,
	}
}

// Device abre streams de cámara por sesión.
// Open bloquea hasta que la plataforma concede o rechaza el acceso, o hasta que ctx se cancela.
type Device interface {
	Open(ctx context.Context, sessionID string, c Constraints) (Stream, error)
}

// Stream es un stream activo. Stop libera todos los tracks y es idempotente.
type Stream interface {
	Frame() (image.Image, error)
	Stop()
}
