package assessment

import (
	"context"
	"errors"
	"image"
	"sort"
	"sync"
	"testing"
	"time"

	"livestock-assessment/internal/adapters/camera/feed"
	"livestock-assessment/internal/adapters/camera/synthetic"
	"livestock-assessment/internal/domain/camera"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	mu   sync.Mutex
	byID map[string]Session
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Session{}}
}

func (r *testRepo) Create(ctx context.Context, s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) Get(ctx context.Context, id string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) Update(ctx context.Context, s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; !ok {
		return ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) ListIdleSince(ctx context.Context, cutoff time.Time) ([]Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Session, 0)
	for _, s := range r.byID {
		if s.UpdatedAt.Before(cutoff) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}

func (r *testRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// -------------------------
// Test camera (controlled)
// -------------------------

type openResult struct {
	stream camera.Stream
	err    error
}

// pendingDevice deja cada Open colgado hasta que el test lo resuelve.
type pendingDevice struct {
	mu       sync.Mutex
	opens    int
	canceled int
	last     camera.Constraints
	results  chan openResult
}

func newPendingDevice() *pendingDevice {
	return &pendingDevice{results: make(chan openResult, 4)}
}

func (d *pendingDevice) Open(ctx context.Context, _ string, c camera.Constraints) (camera.Stream, error) {
	d.mu.Lock()
	d.opens++
	d.last = c
	d.mu.Unlock()

	select {
	case r := <-d.results:
		return r.stream, r.err
	case <-ctx.Done():
		d.mu.Lock()
		d.canceled++
		d.mu.Unlock()
		return nil, ctx.Err()
	}
}

func (d *pendingDevice) counts() (opens, canceled int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opens, d.canceled
}

type testStream struct {
	mu      sync.Mutex
	stopped int
}

func (s *testStream) Frame() (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 16, 9)), nil
}

func (s *testStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped++
}

func (s *testStream) stops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// -------------------------
// Helpers
// -------------------------

func newTestService(t *testing.T, dev camera.Device) (*Service, *testRepo) {
	t.Helper()
	repo := newTestRepo()
	svc := NewService(repo, Options{
		Device:          dev,
		Constraints:     camera.Constraints{Facing: camera.FacingEnvironment, IdealWidth: 32, IdealHeight: 18},
		ProcessingDelay: 20 * time.Millisecond,
	})
	t.Cleanup(svc.Close)
	return svc, repo
}

func strPtr(s string) *string { return &s }

func waitFor(t *testing.T, svc *Service, id string, cond func(Session) bool) Session {
	t.Helper()
	var last Session
	require.Eventually(t, func() bool {
		s, err := svc.Get(context.Background(), id)
		if err != nil {
			return false
		}
		last = s
		return cond(s)
	}, 2*time.Second, 5*time.Millisecond)
	return last
}

func advanceToCamera(t *testing.T, svc *Service, id string) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := svc.Next(ctx, id)
		require.NoError(t, err)
	}
}

func granted(s Session) bool { return s.Permission == PermissionGranted }

// -------------------------
// Tests
// -------------------------

func TestService_FullFlow_ShowsAnimalNameOnComplete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, synthetic.New())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepIdentity, sess.Step)
	assert.Equal(t, SpeciesCattle, sess.Draft.Species)

	sess, err = svc.UpdateDraft(ctx, sess.ID, DraftPatch{
		Name:    strPtr("Brownie"),
		Species: strPtr("buffalo"),
	})
	require.NoError(t, err)
	assert.Equal(t, SpeciesBuffalo, sess.Draft.Species)

	advanceToCamera(t, svc, sess.ID)
	waitFor(t, svc, sess.ID, granted)

	sess, err = svc.Capture(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepReview, sess.Step)
	require.NotNil(t, sess.Image)
	assert.Equal(t, 32, sess.Image.Width)
	assert.Equal(t, 18, sess.Image.Height)

	out, err := svc.Next(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepProcessing, out.Session.Step)

	done := waitFor(t, svc, sess.ID, func(s Session) bool { return s.Step == StepComplete })
	require.NotNil(t, done.Result)
	assert.Equal(t, MockOverallScore, done.Result.OverallScore)
	assert.Equal(t, "Brownie shows excellent health indicators", done.Result.Headline)

	out, err = svc.Next(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, ExitDashboard, out.Redirect)
	assert.Equal(t, 0, repo.len())
}

func TestService_Complete_FallsBackToGenericName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, synthetic.New())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	advanceToCamera(t, svc, sess.ID)
	waitFor(t, svc, sess.ID, granted)
	_, err = svc.Capture(ctx, sess.ID)
	require.NoError(t, err)
	_, err = svc.Next(ctx, sess.ID)
	require.NoError(t, err)

	done := waitFor(t, svc, sess.ID, func(s Session) bool { return s.Step == StepComplete })
	assert.Equal(t, "Your animal shows excellent health indicators", done.Result.Headline)
}

func TestService_CameraNext_RequiresCapture(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, synthetic.New())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	advanceToCamera(t, svc, sess.ID)

	_, err = svc.Next(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrImageRequired)

	got, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepCamera, got.Step)
}

func TestService_AcquireUsesRearCameraConstraints(t *testing.T) {
	ctx := context.Background()
	dev := newPendingDevice()
	svc, _ := newTestService(t, dev)

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	advanceToCamera(t, svc, sess.ID)

	got, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, PermissionPrompt, got.Permission)

	require.Eventually(t, func() bool { o, _ := dev.counts(); return o == 1 }, time.Second, 5*time.Millisecond)
	dev.mu.Lock()
	assert.Equal(t, camera.FacingEnvironment, dev.last.Facing)
	dev.mu.Unlock()
}

func TestService_BackFromCamera_ReleasesStream(t *testing.T) {
	ctx := context.Background()
	dev := newPendingDevice()
	svc, _ := newTestService(t, dev)

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	advanceToCamera(t, svc, sess.ID)

	st := &testStream{}
	dev.results <- openResult{stream: st}
	waitFor(t, svc, sess.ID, granted)

	out, err := svc.Back(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepGuidance, out.Session.Step)
	assert.Equal(t, 1, st.stops())
}

func TestService_CaptureReleasesStream(t *testing.T) {
	ctx := context.Background()
	dev := newPendingDevice()
	svc, _ := newTestService(t, dev)

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	advanceToCamera(t, svc, sess.ID)

	st := &testStream{}
	dev.results <- openResult{stream: st}
	waitFor(t, svc, sess.ID, granted)

	got, err := svc.Capture(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepReview, got.Step)
	assert.Equal(t, 1, st.stops())
}

func TestService_LeavingCamera_CancelsPendingAcquisition(t *testing.T) {
	ctx := context.Background()
	dev := newPendingDevice()
	svc, _ := newTestService(t, dev)

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	advanceToCamera(t, svc, sess.ID)
	require.Eventually(t, func() bool { o, _ := dev.counts(); return o == 1 }, time.Second, 5*time.Millisecond)

	_, err = svc.Back(ctx, sess.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool { _, c := dev.counts(); return c == 1 }, time.Second, 5*time.Millisecond)

	got, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepGuidance, got.Step)
	assert.NotEqual(t, PermissionGranted, got.Permission)
}

func TestService_PermissionDenied_ShowsMessageAndRetryReacquires(t *testing.T) {
	ctx := context.Background()
	dev := newPendingDevice()
	svc, _ := newTestService(t, dev)

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	advanceToCamera(t, svc, sess.ID)

	dev.results <- openResult{err: camera.FromPlatformName("NotAllowedError")}
	denied := waitFor(t, svc, sess.ID, func(s Session) bool { return s.Permission == PermissionDenied })
	assert.Equal(t, camera.MessagePermissionDenied, denied.CameraError)
	assert.Equal(t, camera.FailurePermissionDenied, denied.CameraFailure)

	retried, err := svc.RetryCamera(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, PermissionPrompt, retried.Permission)
	assert.Empty(t, retried.CameraError)

	require.Eventually(t, func() bool { o, _ := dev.counts(); return o == 2 }, time.Second, 5*time.Millisecond)

	dev.results <- openResult{stream: &testStream{}}
	waitFor(t, svc, sess.ID, granted)
}

func TestService_NotFoundAndGenericFailures(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		err  error
		want string
	}{
		{camera.FromPlatformName("NotFoundError"), camera.MessageNotFound},
		{errors.New("usb hub on fire"), camera.MessageGeneric},
	}
	for _, tc := range cases {
		svc, _ := newTestService(t, synthetic.New(synthetic.FailWith(tc.err)))

		sess, err := svc.Start(ctx)
		require.NoError(t, err)
		advanceToCamera(t, svc, sess.ID)

		got := waitFor(t, svc, sess.ID, func(s Session) bool { return s.Permission == PermissionDenied })
		assert.Equal(t, tc.want, got.CameraError)
	}
}

func TestService_DeniedPermission_NotRequestedAgainAutomatically(t *testing.T) {
	ctx := context.Background()
	dev := newPendingDevice()
	svc, _ := newTestService(t, dev)

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	advanceToCamera(t, svc, sess.ID)
	dev.results <- openResult{err: camera.ErrPermissionDenied}
	waitFor(t, svc, sess.ID, func(s Session) bool { return s.Permission == PermissionDenied })

	_, err = svc.Back(ctx, sess.ID)
	require.NoError(t, err)
	_, err = svc.Next(ctx, sess.ID)
	require.NoError(t, err)

	opens, _ := dev.counts()
	assert.Equal(t, 1, opens)
}

func TestService_Retake_DropsImageAndRequiresNewCapture(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, synthetic.New())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	advanceToCamera(t, svc, sess.ID)
	waitFor(t, svc, sess.ID, granted)
	_, err = svc.Capture(ctx, sess.ID)
	require.NoError(t, err)

	out, err := svc.Retake(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepCamera, out.Session.Step)
	assert.Nil(t, out.Session.Image)

	_, err = svc.Next(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrImageRequired)

	waitFor(t, svc, sess.ID, granted)
	again, err := svc.Capture(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StepReview, again.Step)
	assert.NotNil(t, again.Image)
}

func TestService_Capture_WithoutStream(t *testing.T) {
	ctx := context.Background()
	dev := newPendingDevice()
	svc, _ := newTestService(t, dev)

	sess, err := svc.Start(ctx)
	require.NoError(t, err)

	_, err = svc.Capture(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrStepMismatch)

	advanceToCamera(t, svc, sess.ID)
	_, err = svc.Capture(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrCameraUnavailable)
}

func TestService_UpdateDraft_Rules(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, synthetic.New())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)

	_, err = svc.UpdateDraft(ctx, sess.ID, DraftPatch{Species: strPtr("goat")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	got, err := svc.UpdateDraft(ctx, sess.ID, DraftPatch{
		Name:  strPtr("  Tag-109 "),
		Age:   strPtr("3 years"),
		Sex:   strPtr("Female"),
		Breed: strPtr("Gir"),
	})
	require.NoError(t, err)
	assert.Equal(t, AnimalDraft{Name: "Tag-109", Species: SpeciesCattle, Age: "3 years", Sex: "Female", Breed: "Gir"}, got.Draft)

	_, err = svc.Next(ctx, sess.ID)
	require.NoError(t, err)
	_, err = svc.UpdateDraft(ctx, sess.ID, DraftPatch{Name: strPtr("late")})
	assert.ErrorIs(t, err, ErrStepMismatch)
}

func TestService_Back_ExitsFromIdentity(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, synthetic.New())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)

	out, err := svc.Back(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, ExitHome, out.Redirect)
	assert.Equal(t, 0, repo.len())

	_, err = svc.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ProcessingHasNoManualNext(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewService(repo, Options{Device: synthetic.New(), ProcessingDelay: time.Hour})
	t.Cleanup(svc.Close)

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	advanceToCamera(t, svc, sess.ID)
	waitFor(t, svc, sess.ID, granted)
	_, err = svc.Capture(ctx, sess.ID)
	require.NoError(t, err)
	_, err = svc.Next(ctx, sess.ID)
	require.NoError(t, err)

	_, err = svc.Next(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_End_CancelsProcessingTimer(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, synthetic.New())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	advanceToCamera(t, svc, sess.ID)
	waitFor(t, svc, sess.ID, granted)
	_, err = svc.Capture(ctx, sess.ID)
	require.NoError(t, err)
	_, err = svc.Next(ctx, sess.ID)
	require.NoError(t, err)

	require.NoError(t, svc.End(ctx, sess.ID))
	assert.ErrorIs(t, svc.End(ctx, sess.ID), ErrNotFound)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, repo.len())
}

func TestService_Sweep_TearsDownIdleSessions(t *testing.T) {
	ctx := context.Background()
	dev := newPendingDevice()
	repo := newTestRepo()
	svc := NewService(repo, Options{Device: dev, SessionTTL: 10 * time.Minute})
	t.Cleanup(svc.Close)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	idle, err := svc.Start(ctx)
	require.NoError(t, err)
	advanceToCamera(t, svc, idle.ID)

	svc.now = func() time.Time { return base.Add(9 * time.Minute) }
	fresh, err := svc.Start(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(11 * time.Minute) }
	n, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = svc.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, fresh.ID)
	assert.NoError(t, err)

	// la adquisición pendiente de la sesión barrida se cancela
	require.Eventually(t, func() bool { _, c := dev.counts(); return c == 1 }, time.Second, 5*time.Millisecond)
}

func TestService_FeedIngress_RequiresSink(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, synthetic.New())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.PushFrame(ctx, sess.ID, image.NewRGBA(image.Rect(0, 0, 1, 1))), ErrFeedUnsupported)
	assert.ErrorIs(t, svc.ReportCameraFailure(ctx, sess.ID, "NotAllowedError"), ErrFeedUnsupported)
}

func TestService_FailureWhileStreaming_ReleasesCameraAndOffersRetry(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, feed.New())

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	advanceToCamera(t, svc, sess.ID)

	require.NoError(t, svc.PushFrame(ctx, sess.ID, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	waitFor(t, svc, sess.ID, granted)

	require.NoError(t, svc.ReportCameraFailure(ctx, sess.ID, "NotReadableError"))

	got, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, PermissionDenied, got.Permission)
	assert.Equal(t, camera.MessageGeneric, got.CameraError)
	assert.Equal(t, camera.FailureGeneric, got.CameraFailure)

	// El frame viejo ya no se puede capturar.
	_, err = svc.Capture(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrCameraUnavailable)

	// Un frame nuevo no reabre la cámara por sí solo: hace falta el retry.
	require.NoError(t, svc.PushFrame(ctx, sess.ID, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	got, err = svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, PermissionDenied, got.Permission)

	_, err = svc.RetryCamera(ctx, sess.ID)
	require.NoError(t, err)
	waitFor(t, svc, sess.ID, granted)

	captured, err := svc.Capture(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, captured.Image)
	assert.Equal(t, 8, captured.Image.Width)
	assert.Equal(t, 8, captured.Image.Height)
}
