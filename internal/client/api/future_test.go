package api

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture_AwaitReturnsResult(t *testing.T) {
	f := Go(context.Background(), func(ctx context.Context) (int, error) { return 42, nil })

	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestFuture_ThenCalledExactlyOnce(t *testing.T) {
	boom := errors.New("boom")
	f := Go(context.Background(), func(ctx context.Context) (string, error) { return "", boom })

	var calls atomic.Int32
	got := make(chan error, 2)
	f.Then(func(_ string, err error) {
		calls.Add(1)
		got <- err
	})

	select {
	case err := <-got:
		assert.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("callback not invoked")
	}

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFuture_AwaitHonorsContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	f := Go(context.Background(), func(ctx context.Context) (int, error) {
		<-block
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case <-f.Done():
		t.Fatal("future must not be done yet")
	default:
	}
}
