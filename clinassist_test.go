package clinassist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssistant(t *testing.T) {
	t.Run("create new assistant", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		assistant, err := NewAssistant(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, assistant)
		defer assistant.Close()

		// Verify components are initialized
		assert.NotNil(t, assistant.NoteRepository())
		assert.NotNil(t, assistant.Provider())
		assert.NotNil(t, assistant.backend)
		assert.NotNil(t, assistant.logger)
	})

	t.Run("in-memory store", func(t *testing.T) {
		assistant, err := NewAssistant("", WithInMemoryStore())
		require.NoError(t, err)
		require.NotNil(t, assistant)
		assert.NoError(t, assistant.Close())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a store at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		assistant, err := NewAssistant(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, assistant)
	})
}

func TestAssistant_Close(t *testing.T) {
	assistant, err := NewAssistant(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, assistant)

	err = assistant.Close()
	assert.NoError(t, err)
}

func TestAssistant_FactoryMethods(t *testing.T) {
	assistant, err := NewAssistant(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, assistant)
	defer assistant.Close()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := assistant.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create search engine", func(t *testing.T) {
		engine, err := assistant.NewSearchEngine()
		require.NoError(t, err)
		require.NotNil(t, engine)
	})

	t.Run("can create answer pipeline", func(t *testing.T) {
		pipeline, err := assistant.NewAnswerPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
	})
}
