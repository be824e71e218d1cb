package feed

import (
	"context"
	"image"
	"testing"
	"time"

	"livestock-assessment/internal/domain/camera"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openAsync(d *Device, ctx context.Context, id string) <-chan result {
	out := make(chan result, 1)
	go func() {
		st, err := d.Open(ctx, id, camera.DefaultConstraints())
		out <- result{st, err}
	}()
	return out
}

type result struct {
	stream camera.Stream
	err    error
}

func TestOpen_WaitsForFirstFrame(t *testing.T) {
	d := New()
	pending := openAsync(d, context.Background(), "s-1")

	select {
	case <-pending:
		t.Fatalf("Open resolved before any frame")
	case <-time.After(20 * time.Millisecond):
	}

	frame := image.NewRGBA(image.Rect(0, 0, 4, 3))
	require.NoError(t, d.PushFrame("s-1", frame))

	res := <-pending
	require.NoError(t, res.err)

	got, err := res.stream.Frame()
	require.NoError(t, err)
	assert.Equal(t, frame.Bounds(), got.Bounds())

	res.stream.Stop()
	res.stream.Stop()
	_, err = res.stream.Frame()
	assert.ErrorIs(t, err, camera.ErrStopped)
}

func TestOpen_RejectionIsConsumedOnce(t *testing.T) {
	d := New()
	require.NoError(t, d.Reject("s-1", camera.FromPlatformName("NotAllowedError")))

	_, err := d.Open(context.Background(), "s-1", camera.DefaultConstraints())
	assert.ErrorIs(t, err, camera.ErrPermissionDenied)

	// el retry vuelve a esperar
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = d.Open(ctx, "s-1", camera.DefaultConstraints())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOpen_CancelReturnsContextError(t *testing.T) {
	d := New()
	ctx, cancel := context.WithCancel(context.Background())
	pending := openAsync(d, ctx, "s-1")

	cancel()
	res := <-pending
	assert.ErrorIs(t, res.err, context.Canceled)
}

func TestPushFrame_AfterRejectionGrantsFreshSlot(t *testing.T) {
	d := New()
	require.NoError(t, d.Reject("s-1", camera.FromPlatformName("NotFoundError")))
	require.NoError(t, d.PushFrame("s-1", image.NewRGBA(image.Rect(0, 0, 2, 2))))

	st, err := d.Open(context.Background(), "s-1", camera.DefaultConstraints())
	require.NoError(t, err)
	defer st.Stop()

	_, err = st.Frame()
	assert.NoError(t, err)
}

func TestPushFrame_Validation(t *testing.T) {
	d := New()
	assert.ErrorIs(t, d.PushFrame(" ", image.NewRGBA(image.Rect(0, 0, 1, 1))), ErrSessionRequired)
	assert.ErrorIs(t, d.PushFrame("s-1", nil), ErrNilFrame)
}

func TestForget_DropsPendingFrames(t *testing.T) {
	d := New()
	require.NoError(t, d.PushFrame("s-1", image.NewRGBA(image.Rect(0, 0, 2, 2))))
	d.Forget("s-1")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := d.Open(ctx, "s-1", camera.DefaultConstraints())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
