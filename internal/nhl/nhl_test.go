package nhl

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/nhl-stats-crawler/internal/config"
	"github.com/JakeFAU/nhl-stats-crawler/internal/storage"
)

func defaultConfig(t *testing.T) config.Config {
	t.Helper()

	v := viper.New()
	config.InitViper(v)
	cfg, err := config.Load(v)
	require.NoError(t, err)
	return cfg
}

func TestRegistryListsSupportedVersions(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	assert.Equal(t, []string{"v1"}, registry.Versions())
}

func TestAdapterForSupportedVersion(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	adapter, err := registry.AdapterFor("v1")
	require.NoError(t, err)

	store := storage.New(storage.NoOpPutter{}, "data", "jobs")
	crawler := adapter.NewCrawler(defaultConfig(t), store, zap.NewNop())
	assert.NotNil(t, crawler)
}

func TestAdapterForIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	_, err := registry.AdapterFor("V1")
	assert.NoError(t, err)
}

func TestAdapterForUnsupportedVersion(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	_, err := registry.AdapterFor("v2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "v1")
}
