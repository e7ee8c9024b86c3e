package openai

import (
	"sync"
	"testing"

	"github.com/poiesic/clinassist/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		provider, err := NewProvider(ai.DefaultConfig())
		require.NoError(t, err)
		require.NotNil(t, provider)
		assert.NotNil(t, provider.Embedder())
		assert.NotNil(t, provider.Generator())
		assert.NoError(t, provider.Close())
	})

	t.Run("invalid configuration", func(t *testing.T) {
		config := ai.NewConfig(ai.WithEmbeddingHost(""))
		provider, err := NewProvider(config)
		assert.Error(t, err)
		assert.Nil(t, provider)
	})
}

func TestProviderCacheInitializesOnce(t *testing.T) {
	var cache providerCache

	const callers = 16
	providers := make([]ai.Provider, callers)
	errs := make([]error, callers)

	var start sync.WaitGroup
	var done sync.WaitGroup
	start.Add(1)
	for i := 0; i < callers; i++ {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			start.Wait()
			providers[i], errs[i] = cache.get(ai.DefaultConfig())
		}(i)
	}
	start.Done()
	done.Wait()

	require.NoError(t, errs[0])
	require.NotNil(t, providers[0])
	for i := 1; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, providers[0], providers[i], "caller %d should see the shared instance", i)
	}
}

func TestProviderCacheIgnoresLaterConfigs(t *testing.T) {
	var cache providerCache

	first, err := cache.get(ai.DefaultConfig())
	require.NoError(t, err)

	// A different (even invalid) config after initialization has no effect
	second, err := cache.get(ai.NewConfig(ai.WithEmbeddingHost("")))
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestProviderCacheCachesFailure(t *testing.T) {
	var cache providerCache

	invalid := ai.NewConfig(ai.WithEmbeddingHost(""))
	_, firstErr := cache.get(invalid)
	require.Error(t, firstErr)

	// The failed first initialization sticks; a valid config cannot revive it
	provider, err := cache.get(ai.DefaultConfig())
	assert.Nil(t, provider)
	assert.Equal(t, firstErr, err)
}

func TestSharedProviderReturnsSameInstance(t *testing.T) {
	first, err := SharedProvider(ai.DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := SharedProvider(ai.DefaultConfig())
	require.NoError(t, err)
	assert.Same(t, first, second)
}