package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vozciudadana/civic-core/internal/infrastructure/queue"
)

func TestServe_WorkersOutliveDrainingRequests(t *testing.T) {
	workCtx, stopWork := context.WithCancel(context.Background())
	defer stopWork()
	d := queue.NewDispatcher(2, zerolog.Nop())
	d.Start(workCtx)

	entered := make(chan struct{})
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/vote", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		err := d.Do(context.Background(), "post:1", func(context.Context) error { return nil })
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	served := make(chan error, 1)
	go func() {
		served <- serve(ctx, ln, &http.Server{Handler: mux}, stopWork, zerolog.Nop())
	}()

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/vote")
		if err != nil {
			status <- 0
			return
		}
		resp.Body.Close()
		status <- resp.StatusCode
	}()

	<-entered
	cancel()
	// Let Shutdown start while the request is still in flight.
	time.Sleep(100 * time.Millisecond)
	assert.NoError(t, workCtx.Err(), "workers stopped before the drain finished")
	close(release)

	assert.Equal(t, http.StatusOK, <-status)
	require.NoError(t, <-served)
	assert.Error(t, workCtx.Err(), "workers should stop after the drain")
}
