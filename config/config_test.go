package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, []string{defaultListenAddress}, cfg.ListenAddresses)
	assert.Equal(t, defaultKeepAlive, cfg.KeepAlive)
	assert.Greater(t, cfg.WorkerProcesses, 0)
}

func TestLoadReadsListenAddresses(t *testing.T) {
	t.Setenv("LISTEN_ADDRESSES", "0.0.0.0:3000, 0.0.0.0:3001")
	cfg := Load()
	assert.Equal(t, []string{"0.0.0.0:3000", "0.0.0.0:3001"}, cfg.ListenAddresses)
}

func TestLoadReadsKeepAliveSeconds(t *testing.T) {
	t.Setenv("KEEP_ALIVE_SECONDS", "30")
	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.KeepAlive)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("WORKER_PROCESSES", "not-a-number")
	cfg := Load()
	assert.Greater(t, cfg.WorkerProcesses, 0)
}
