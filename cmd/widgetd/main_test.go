package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ServesAndShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stderr bytes.Buffer
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"-log-format", "json"}, envMap(nil), &stderr, ln)
	}()

	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Post(base+"/widgets", "application/json", strings.NewReader(`{"x":1,"y":1,"width":2,"height":2}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = client.Get(base + "/healthz")
	require.NoError(t, err)
	var health struct {
		Widgets int `json:"widgets"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	_ = resp.Body.Close()
	assert.Equal(t, 1, health.Widgets)

	resp, err = client.Get(base + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "widgetstore_widgets 1")
	assert.Contains(t, string(body), `widgetstore_operations_total{op="create",status="success"} 1`)

	cancel()

	select {
	case code := <-done:
		assert.Equal(t, 0, code, stderr.String())
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-log-level", "loud"}, envMap(nil), &stderr, nil)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "log level")
}

func TestRun_UnknownCodec(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-codec", "xml"}, envMap(nil), &stderr, nil)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "unknown codec")
}
