package synthetic

import (
	"context"
	"image"
	"image/color"
	"sync"

	"livestock-assessment/internal/domain/camera"
)

// Device genera frames sintéticos (gradiente que se desplaza por frame).
// Sirve para demo sin navegador y para tests.
type Device struct {
	failWith error
}

type Option func(*Device)

// FailWith hace que Open falle siempre con err (p.ej. camera.ErrPermissionDenied).
func FailWith(err error) Option {
	return func(d *Device) { d.failWith = err }
}

func New(opts ...Option) *Device {
	d := &Device{}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *Device) Open(ctx context.Context, _ string, c camera.Constraints) (camera.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.failWith != nil {
		return nil, d.failWith
	}

	w, h := c.IdealWidth, c.IdealHeight
	if w <= 0 || h <= 0 {
		def := camera.DefaultConstraints()
		w, h = def.IdealWidth, def.IdealHeight
	}
	return &stream{width: w, height: h}, nil
}

type stream struct {
	mu      sync.Mutex
	width   int
	height  int
	seq     uint64
	stopped bool
}

func (s *stream) Frame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, camera.ErrStopped
	}
	s.seq++

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	shift := int(s.seq % 256)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8((x + shift) % 256),
				G: uint8((y + shift) % 256),
				B: 128,
				A: 255,
			})
		}
	}
	return img, nil
}

func (s *stream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}
