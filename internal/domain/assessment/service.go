package assessment

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"livestock-assessment/internal/domain/camera"
	"livestock-assessment/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrStepMismatch      = errors.New("operation not allowed in current step")
	ErrCameraUnavailable = errors.New("camera is not streaming")
	ErrFeedUnsupported   = errors.New("camera device does not accept frames")
)

const (
	DefaultProcessingDelay = 3 * time.Second
	DefaultAcquireTimeout  = 2 * time.Minute
	DefaultSessionTTL      = 30 * time.Minute
)

// FrameSink lo implementan los dispositivos alimentados por el cliente (feed).
type FrameSink interface {
	PushFrame(sessionID string, img image.Image) error
	Reject(sessionID string, err error) error
	Forget(sessionID string)
}

type Options struct {
	Device      camera.Device
	Constraints camera.Constraints
	JPEGQuality int

	ProcessingDelay time.Duration
	AcquireTimeout  time.Duration
	SessionTTL      time.Duration

	Logger logger.Logger
}

// Service aplica las transiciones del wizard y es dueño de los recursos
// vivos de cada sesión (stream de cámara, adquisición pendiente, timer).
type Service struct {
	repo   Repository
	device camera.Device
	sink   FrameSink
	log    logger.Logger
	now    func() time.Time

	constraints     camera.Constraints
	jpegQuality     int
	processingDelay time.Duration
	acquireTimeout  time.Duration
	sessionTTL      time.Duration

	mu   sync.Mutex
	live map[string]*liveState
	wg   sync.WaitGroup
}

// liveState no se guarda en el repo: son recursos del proceso.
type liveState struct {
	stream        camera.Stream
	cancelAcquire context.CancelFunc
	acquireGen    uint64

	timer    *time.Timer
	timerGen uint64
}

func NewService(repo Repository, opts Options) *Service {
	s := &Service{
		repo:            repo,
		device:          opts.Device,
		log:             opts.Logger,
		now:             time.Now,
		constraints:     opts.Constraints,
		jpegQuality:     opts.JPEGQuality,
		processingDelay: opts.ProcessingDelay,
		acquireTimeout:  opts.AcquireTimeout,
		sessionTTL:      opts.SessionTTL,
		live:            make(map[string]*liveState),
	}

	if s.log == nil {
		s.log = logger.NewNop()
	}
	if s.constraints == (camera.Constraints{}) {
		s.constraints = camera.DefaultConstraints()
	}
	if s.jpegQuality <= 0 {
		s.jpegQuality = camera.DefaultJPEGQuality
	}
	if s.processingDelay <= 0 {
		s.processingDelay = DefaultProcessingDelay
	}
	if s.acquireTimeout <= 0 {
		s.acquireTimeout = DefaultAcquireTimeout
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = DefaultSessionTTL
	}
	if sink, ok := opts.Device.(FrameSink); ok {
		s.sink = sink
	}

	return s
}

// Outcome es el resultado de una acción: la sesión actualizada, o una
// redirección si la acción sacó al usuario del wizard.
type Outcome struct {
	Session  Session
	Redirect string
}

func (s *Service) Constraints() camera.Constraints {
	return s.constraints
}

func (s *Service) Start(ctx context.Context) (Session, error) {
	now := s.now()
	sess := Session{
		ID:        uuid.NewString(),
		Step:      StepIdentity,
		Draft:     AnimalDraft{Species: SpeciesCattle},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("assessment started", map[string]any{"session_id": sess.ID})
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// DraftPatch: nil = no tocar.
type DraftPatch struct {
	Name    *string
	Species *string
	Age     *string
	Sex     *string
	Breed   *string
}

// UpdateDraft solo se permite en el paso identity.
func (s *Service) UpdateDraft(ctx context.Context, id string, p DraftPatch) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Step != StepIdentity {
		return Session{}, ErrStepMismatch
	}

	d := sess.Draft
	if p.Species != nil {
		sp, ok := ParseSpecies(*p.Species)
		if !ok {
			return Session{}, fmt.Errorf("%w: species must be cattle or buffalo", ErrInvalidInput)
		}
		d.Species = sp
	}
	if p.Name != nil {
		d.Name = strings.TrimSpace(*p.Name)
	}
	if p.Age != nil {
		d.Age = strings.TrimSpace(*p.Age)
	}
	if p.Sex != nil {
		d.Sex = strings.TrimSpace(*p.Sex)
	}
	if p.Breed != nil {
		d.Breed = strings.TrimSpace(*p.Breed)
	}

	sess.Draft = d
	sess.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Service) Next(ctx context.Context, id string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	tr, err := Forward(sess.Step, sess.Image != nil)
	if err != nil {
		return Outcome{}, err
	}
	return s.applyLocked(ctx, sess, tr)
}

func (s *Service) Back(ctx context.Context, id string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	return s.applyLocked(ctx, sess, Backward(sess.Step))
}

func (s *Service) Retake(ctx context.Context, id string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	tr, err := Retake(sess.Step)
	if err != nil {
		return Outcome{}, err
	}
	return s.applyLocked(ctx, sess, tr)
}

// RetryCamera vuelve a pedir la cámara aunque antes se haya denegado.
func (s *Service) RetryCamera(ctx context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Step != StepCamera {
		return Session{}, ErrStepMismatch
	}

	live := s.liveFor(sess.ID)
	if live.stream != nil {
		return sess, nil
	}
	s.beginAcquireLocked(&sess, live, true)

	sess.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Capture congela el frame actual, libera la cámara y pasa a review.
func (s *Service) Capture(ctx context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	tr, err := Captured(sess.Step)
	if err != nil {
		return Session{}, ErrStepMismatch
	}

	live := s.liveFor(sess.ID)
	if live.stream == nil {
		return Session{}, ErrCameraUnavailable
	}

	still, err := camera.CaptureStill(live.stream, s.jpegQuality)
	if err != nil {
		if errors.Is(err, camera.ErrNoFrame) || errors.Is(err, camera.ErrStopped) {
			return Session{}, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
		}
		return Session{}, fmt.Errorf("capture still: %w", err)
	}

	sess.Image = &CapturedImage{
		DataURI:    still.DataURI,
		Width:      still.Width,
		Height:     still.Height,
		Bytes:      still.Bytes,
		CapturedAt: s.now(),
	}

	out, err := s.applyLocked(ctx, sess, tr)
	if err != nil {
		return Session{}, err
	}

	s.log.Info("photo captured", map[string]any{
		"session_id": sess.ID,
		"width":      still.Width,
		"height":     still.Height,
		"bytes":      still.Bytes,
	})
	return out.Session, nil
}

// PushFrame recibe un frame del cliente mientras la sesión está en camera.
func (s *Service) PushFrame(ctx context.Context, id string, img image.Image) error {
	if s.sink == nil {
		return ErrFeedUnsupported
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if sess.Step != StepCamera {
		return ErrStepMismatch
	}
	if err := s.sink.PushFrame(sess.ID, img); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Mantener viva la sesión para el sweeper mientras llegan frames.
	sess.UpdatedAt = s.now()
	return s.repo.Update(ctx, sess)
}

// ReportCameraFailure recibe el rechazo de getUserMedia (nombre del DOMException).
func (s *Service) ReportCameraFailure(ctx context.Context, id, name string) error {
	if s.sink == nil {
		return ErrFeedUnsupported
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if sess.Step != StepCamera {
		return ErrStepMismatch
	}

	cause := camera.FromPlatformName(name)
	live := s.liveFor(sess.ID)
	if live.stream == nil {
		return s.sink.Reject(sess.ID, cause)
	}

	// La cámara se cayó con el stream ya concedido: no se puede seguir capturando de él.
	s.releaseLocked(sess.ID, live)

	f := camera.Classify(cause)
	sess.Permission = PermissionDenied
	sess.CameraError = f.Message
	sess.CameraFailure = f.Kind
	sess.UpdatedAt = s.now()

	s.log.Warn("camera lost while streaming", map[string]any{
		"session_id": sess.ID,
		"kind":       string(f.Kind),
		"err":        cause,
	})
	return s.repo.Update(ctx, sess)
}

// End es el teardown explícito (el cliente abandonó la pantalla).
func (s *Service) End(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.teardownLocked(ctx, sess.ID)
}

// Sweep hace teardown de las sesiones inactivas más allá del TTL.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idle, err := s.repo.ListIdleSince(ctx, s.now().Add(-s.sessionTTL))
	if err != nil {
		return 0, fmt.Errorf("list idle sessions: %w", err)
	}

	n := 0
	for _, sess := range idle {
		if err := s.teardownLocked(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return n, err
		}
		n++
	}
	if n > 0 {
		s.log.Info("idle assessments swept", map[string]any{"count": n})
	}
	return n, nil
}

// RunSweeper ejecuta Sweep cada interval hasta que ctx se cancela.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.log.Error("sweep failed", map[string]any{"err": err})
			}
		}
	}
}

// Close libera todos los recursos vivos y espera a las adquisiciones en curso.
func (s *Service) Close() {
	s.mu.Lock()
	for id, live := range s.live {
		s.releaseLocked(id, live)
		s.stopTimerLocked(live)
	}
	s.live = make(map[string]*liveState)
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Service) applyLocked(ctx context.Context, sess Session, tr Transition) (Outcome, error) {
	live := s.liveFor(sess.ID)

	if tr.Has(EffectReleaseCamera) {
		s.releaseLocked(sess.ID, live)
	}
	if tr.Has(EffectExit) {
		if err := s.teardownLocked(ctx, sess.ID); err != nil {
			return Outcome{}, err
		}
		return Outcome{Redirect: tr.ExitTo}, nil
	}
	if tr.Has(EffectDropImage) {
		sess.Image = nil
	}

	sess.Step = tr.To
	sess.UpdatedAt = s.now()

	if tr.Has(EffectAcquireCamera) {
		s.beginAcquireLocked(&sess, live, false)
	}
	if tr.Has(EffectStartProcessing) {
		s.armProcessingLocked(sess.ID, live)
	}

	if err := s.repo.Update(ctx, sess); err != nil {
		return Outcome{}, err
	}

	s.log.Debug("assessment step changed", map[string]any{
		"session_id": sess.ID,
		"from":       string(tr.From),
		"to":         string(tr.To),
	})
	return Outcome{Session: sess}, nil
}

func (s *Service) liveFor(id string) *liveState {
	live, ok := s.live[id]
	if !ok {
		live = &liveState{}
		s.live[id] = live
	}
	return live
}

// beginAcquireLocked arranca la adquisición en segundo plano. Con force=false
// no se vuelve a pedir si el permiso ya fue denegado.
func (s *Service) beginAcquireLocked(sess *Session, live *liveState, force bool) {
	if live.stream != nil {
		return
	}
	if !force && sess.Permission == PermissionDenied {
		return
	}
	if s.device == nil {
		f := camera.Classify(camera.ErrDeviceNotFound)
		sess.Permission = PermissionDenied
		sess.CameraError = f.Message
		sess.CameraFailure = f.Kind
		return
	}

	if live.cancelAcquire != nil {
		live.cancelAcquire()
	}
	live.acquireGen++
	gen := live.acquireGen

	ctx, cancel := context.WithTimeout(context.Background(), s.acquireTimeout)
	live.cancelAcquire = cancel

	sess.Permission = PermissionPrompt
	sess.CameraError = ""
	sess.CameraFailure = ""

	s.wg.Add(1)
	go s.acquire(ctx, cancel, sess.ID, gen)
}

func (s *Service) acquire(ctx context.Context, cancel context.CancelFunc, id string, gen uint64) {
	defer s.wg.Done()
	defer cancel()

	st, openErr := s.device.Open(ctx, id, s.constraints)

	s.mu.Lock()
	defer s.mu.Unlock()

	live, ok := s.live[id]
	if !ok || live.acquireGen != gen {
		// La sesión salió de camera o se reintentó: el resultado ya no aplica.
		if st != nil {
			st.Stop()
		}
		return
	}
	live.cancelAcquire = nil

	sess, err := s.repo.Get(context.Background(), id)
	if err != nil || sess.Step != StepCamera {
		if st != nil {
			st.Stop()
		}
		return
	}

	if openErr != nil {
		if camera.IsCanceled(openErr) {
			return
		}
		f := camera.Classify(openErr)
		sess.Permission = PermissionDenied
		sess.CameraError = f.Message
		sess.CameraFailure = f.Kind
		s.log.Warn("camera acquisition failed", map[string]any{
			"session_id": id,
			"kind":       string(f.Kind),
			"err":        openErr,
		})
	} else {
		live.stream = st
		sess.Permission = PermissionGranted
		sess.CameraError = ""
		sess.CameraFailure = ""
		s.log.Info("camera acquired", map[string]any{"session_id": id})
	}

	sess.UpdatedAt = s.now()
	if err := s.repo.Update(context.Background(), sess); err != nil {
		s.log.Error("update session after acquisition", map[string]any{"session_id": id, "err": err})
	}
}

// releaseLocked detiene el stream y cancela cualquier adquisición pendiente.
func (s *Service) releaseLocked(id string, live *liveState) {
	if live.cancelAcquire != nil {
		live.cancelAcquire()
		live.cancelAcquire = nil
	}
	live.acquireGen++

	if live.stream != nil {
		live.stream.Stop()
		live.stream = nil
		s.log.Debug("camera released", map[string]any{"session_id": id})
	}
	if s.sink != nil {
		s.sink.Forget(id)
	}
}

func (s *Service) armProcessingLocked(id string, live *liveState) {
	s.stopTimerLocked(live)
	gen := live.timerGen

	live.timer = time.AfterFunc(s.processingDelay, func() {
		s.finishProcessing(id, gen)
	})
}

func (s *Service) stopTimerLocked(live *liveState) {
	if live.timer != nil {
		live.timer.Stop()
		live.timer = nil
	}
	live.timerGen++
}

func (s *Service) finishProcessing(id string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, ok := s.live[id]
	if !ok || live.timerGen != gen {
		return
	}
	live.timer = nil

	sess, err := s.repo.Get(context.Background(), id)
	if err != nil {
		return
	}
	tr, err := Completed(sess.Step)
	if err != nil {
		return
	}

	now := s.now()
	sess.Step = tr.To
	sess.Result = mockResult(sess.Draft, now)
	sess.UpdatedAt = now
	if err := s.repo.Update(context.Background(), sess); err != nil {
		s.log.Error("update session after processing", map[string]any{"session_id": id, "err": err})
		return
	}

	s.log.Info("assessment analysis complete", map[string]any{
		"session_id": id,
		"score":      sess.Result.OverallScore,
	})
}

func (s *Service) teardownLocked(ctx context.Context, id string) error {
	if live, ok := s.live[id]; ok {
		s.releaseLocked(id, live)
		s.stopTimerLocked(live)
		delete(s.live, id)
	} else if s.sink != nil {
		s.sink.Forget(id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("assessment ended", map[string]any{"session_id": id})
	return nil
}
