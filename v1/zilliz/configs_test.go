package zilliz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("ZILLIZ_CLOUD_URI", "https://in01-test.api.region.zillizcloud.com")
	t.Setenv("ZILLIZ_CLOUD_TOKEN", "secret-token")
	t.Setenv("ZILLIZ_CLOUD_COLLECTION", "")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://in01-test.api.region.zillizcloud.com", cfg.URI)
	assert.Equal(t, "secret-token", cfg.Token)
	assert.Equal(t, "embedchain_store", cfg.Collection, "default collection must be used when none is configured")
	assert.Equal(t, uint64(defaultVectorDim), cfg.VectorDim)
	assert.Positive(t, cfg.ConnectTimeout)
}

func TestNewConfigMissingURI(t *testing.T) {
	t.Setenv("ZILLIZ_CLOUD_URI", "")
	t.Setenv("ZILLIZ_CLOUD_TOKEN", "secret-token")

	_, err := NewConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingURI)
	assert.True(t, IsConfigError(err))
}

func TestNewConfigMissingToken(t *testing.T) {
	t.Setenv("ZILLIZ_CLOUD_URI", "https://in01-test.api.region.zillizcloud.com")
	t.Setenv("ZILLIZ_CLOUD_TOKEN", "")

	_, err := NewConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.True(t, IsConfigError(err))
}

func TestNewConfigCollectionFromEnv(t *testing.T) {
	t.Setenv("ZILLIZ_CLOUD_URI", "https://in01-test.api.region.zillizcloud.com")
	t.Setenv("ZILLIZ_CLOUD_TOKEN", "secret-token")
	t.Setenv("ZILLIZ_CLOUD_COLLECTION", "custom_collection")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "custom_collection", cfg.Collection)
}

func TestConfigBuilders(t *testing.T) {
	cfg := &Config{Collection: DefaultCollection, VectorDim: defaultVectorDim, ConnectTimeout: 5 * time.Second}

	cfg = cfg.WithCollection("test_collection").
		WithVectorDim(768).
		WithConnectTimeout(10 * time.Second)

	assert.Equal(t, "test_collection", cfg.Collection)
	assert.Equal(t, uint64(768), cfg.VectorDim)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)

	// Zero values leave the config untouched.
	cfg = cfg.WithCollection("").WithVectorDim(0).WithConnectTimeout(0)
	assert.Equal(t, "test_collection", cfg.Collection)
	assert.Equal(t, uint64(768), cfg.VectorDim)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
}
