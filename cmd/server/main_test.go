package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tigerkidtools/calc-engine/config"
	"github.com/tigerkidtools/calc-engine/engine"
	"github.com/tigerkidtools/calc-engine/engine/store"
	"github.com/tigerkidtools/calc-engine/store/sqlite"
)

func TestSetupLogging(t *testing.T) {
	defer func(prev zerolog.Logger, lvl zerolog.Level) {
		log.Logger = prev
		zerolog.SetGlobalLevel(lvl)
	}(log.Logger, zerolog.GlobalLevel())

	var buf bytes.Buffer
	require.NoError(t, setupLogging(&buf, "warn", "json"))
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	assert.Error(t, setupLogging(&buf, "loud", "json"))
	assert.Error(t, setupLogging(&buf, "info", "xml"))
}

func TestOpenCache(t *testing.T) {
	cache, closeFn, err := openCache(config.CacheConfig{Driver: config.CacheMemory})
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, cache)
	assert.NoError(t, closeFn())

	cache, closeFn, err = openCache(config.CacheConfig{Driver: config.CacheNone})
	require.NoError(t, err)
	assert.IsType(t, engine.NopCache{}, cache)
	assert.NoError(t, closeFn())

	cache, closeFn, err = openCache(config.CacheConfig{
		Driver: config.CacheSQLite,
		Path:   filepath.Join(t.TempDir(), "results.db"),
	})
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, cache)
	require.NoError(t, cache.Put(context.Background(), "k", []byte("v")))
	assert.NoError(t, closeFn())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := versionCmd()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)
	assert.Equal(t, "calc-engine dev\n", out.String())
}
