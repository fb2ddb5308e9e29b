package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dreamcanvas/server/internal/model"
)

type fakeStore struct {
	pingErr error
}

func (f *fakeStore) Dreams() Dreams                       { return fakeDreams{} }
func (f *fakeStore) HealthPing(ctx context.Context) error { return f.pingErr }

type fakeDreams struct{}

func (fakeDreams) List(ctx context.Context, userID string) ([]*model.Dream, error) {
	return nil, nil
}
func (fakeDreams) Get(ctx context.Context, id int64, userID string) (*model.Dream, error) {
	return nil, model.ErrNotFound
}
func (fakeDreams) Create(ctx context.Context, d *model.Dream) (*model.Dream, error) {
	return d, nil
}
func (fakeDreams) SetFavorite(ctx context.Context, id int64, userID string, fav bool) (*model.Dream, error) {
	return nil, model.ErrNotFound
}

func TestStoreHealthChecker_Probes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := zerolog.Nop()

	hc := NewStoreHealthChecker(&fakeStore{}, logger, 50*time.Millisecond)
	if hc.IsHealthy() {
		t.Fatalf("checker should start unhealthy")
	}
	go hc.Start(ctx, 10*time.Millisecond)
	waitTrue(t, func() bool { return hc.IsHealthy() })

	bad := NewStoreHealthChecker(&fakeStore{pingErr: errors.New("down")}, logger, 50*time.Millisecond)
	go bad.Start(ctx, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	if bad.IsHealthy() {
		t.Fatalf("checker should stay unhealthy when pings fail")
	}
}

func waitTrue(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before timeout")
}
