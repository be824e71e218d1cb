package feed

import (
	"context"
	"errors"
	"image"
	"strings"
	"sync"

	"livestock-assessment/internal/domain/camera"
)

var (
	ErrSessionRequired = errors.New("session id required")
	ErrNilFrame        = errors.New("frame is nil")
)

// Device implementa camera.Device para streams que vienen del navegador:
// el cliente sube frames (acceso concedido) o reporta el rechazo de getUserMedia.
// Open queda bloqueado hasta que llega uno de los dos, o hasta que ctx se cancela.
type Device struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ready   chan struct{} // se cierra al resolverse (concedido o rechazado)
	settled bool
	err     error
	latest  image.Image
}

func newSlot() *slot {
	return &slot{ready: make(chan struct{})}
}

func New() *Device {
	return &Device{slots: make(map[string]*slot)}
}

func (d *Device) Open(ctx context.Context, sessionID string, _ camera.Constraints) (camera.Stream, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	d.mu.Lock()
	s := d.slotFor(sessionID)
	d.mu.Unlock()

	select {
	case <-s.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if s.err != nil {
		// El rechazo se consume: un reintento vuelve a esperar.
		if d.slots[sessionID] == s {
			delete(d.slots, sessionID)
		}
		return nil, s.err
	}
	return &stream{d: d, sessionID: sessionID, s: s}, nil
}

// PushFrame registra el último frame de la sesión. El primero concede el acceso.
func (d *Device) PushFrame(sessionID string, img image.Image) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrSessionRequired
	}
	if img == nil {
		return ErrNilFrame
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.slotFor(sessionID)
	if s.settled && s.err != nil {
		s = newSlot()
		d.slots[sessionID] = s
	}
	s.latest = img
	if !s.settled {
		s.settled = true
		close(s.ready)
	}
	return nil
}

// Reject resuelve la adquisición pendiente con err.
func (d *Device) Reject(sessionID string, err error) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrSessionRequired
	}
	if err == nil {
		err = camera.FromPlatformName("")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.slotFor(sessionID)
	if s.settled {
		s = newSlot()
		d.slots[sessionID] = s
	}
	s.err = err
	s.settled = true
	close(s.ready)
	return nil
}

// Forget descarta lo que hubiera para la sesión (teardown).
func (d *Device) Forget(sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.slots, strings.TrimSpace(sessionID))
}

func (d *Device) slotFor(sessionID string) *slot {
	s, ok := d.slots[sessionID]
	if !ok {
		s = newSlot()
		d.slots[sessionID] = s
	}
	return s
}

type stream struct {
	d         *Device
	sessionID string
	s         *slot
	stopped   bool
}

func (st *stream) Frame() (image.Image, error) {
	st.d.mu.Lock()
	defer st.d.mu.Unlock()

	if st.stopped {
		return nil, camera.ErrStopped
	}
	if st.s.latest == nil {
		return nil, camera.ErrNoFrame
	}
	return st.s.latest, nil
}

func (st *stream) Stop() {
	st.d.mu.Lock()
	defer st.d.mu.Unlock()

	if st.stopped {
		return
	}
	st.stopped = true
	if st.d.slots[st.sessionID] == st.s {
		delete(st.d.slots, st.sessionID)
	}
}
