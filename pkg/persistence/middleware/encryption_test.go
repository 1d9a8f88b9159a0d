package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/turbo-editor/pkg/adapters/memory"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/persistence/middleware"
	"github.com/aretw0/turbo-editor/pkg/ports"
	"github.com/aretw0/turbo-editor/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func secretScene(t *testing.T) *domain.Scene {
	t.Helper()
	s := scene.New("vault")
	id, err := s.AddNode(s.RootID(), "hero", domain.NodeTypeSprite)
	require.NoError(t, err)
	require.NoError(t, s.SetProperty(id, "path", domain.Text("my-secret-sauce.png")))
	return s.Scene()
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := NewMockStore()
	key := generateKey(t)
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	original := secretScene(t)

	require.NoError(t, secureStore.Save(ctx, original.ID, original))

	// The underlying document carries only the envelope.
	stored, err := underlyingStore.Load(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original.ID, stored.ID)
	assert.Empty(t, stored.Nodes)
	assert.Empty(t, stored.Name)
	require.NotEmpty(t, stored.Sealed)
	raw, err := base64.StdEncoding.DecodeString(stored.Sealed)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "my-secret-sauce")

	loaded, err := secureStore.Load(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original.Name, loaded.Name)
	assert.Equal(t, original.RootID, loaded.RootID)
	assert.Equal(t, original.Nodes, loaded.Nodes)
	assert.Empty(t, scene.Validate(loaded))
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	store := NewMockStore()
	ctx := context.Background()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	original := secretScene(t)

	oldStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(store)
	require.NoError(t, oldStore.Save(ctx, original.ID, original))

	// New key only: cannot read.
	newOnly := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey})(store)
	_, err := newOnly.Load(ctx, original.ID)
	require.Error(t, err)

	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(store)
	loaded, err := rotated.Load(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original.Nodes, loaded.Nodes)

	// Re-saving migrates to the new key.
	require.NoError(t, rotated.Save(ctx, original.ID, loaded))
	_, err = newOnly.Load(ctx, original.ID)
	require.NoError(t, err)
}

func TestEncryptionMiddleware_RejectsPlainDocument(t *testing.T) {
	store := NewMockStore()
	ctx := context.Background()
	plain := secretScene(t)
	require.NoError(t, store.Save(ctx, plain.ID, plain))

	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(store)
	_, err := secure.Load(ctx, plain.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "envelope")
}

func TestEncryptionMiddleware_PropagatesNotFound(t *testing.T) {
	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(NewMockStore())
	_, err := secure.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	})
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunSceneStoreContract(t, mw(memory.NewStore()))
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)

	got, err := middleware.ParseKey(hex.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, got)

	got, err = middleware.ParseKey("  " + base64.StdEncoding.EncodeToString(key) + "\n")
	require.NoError(t, err)
	assert.Equal(t, key, got)

	_, err = middleware.ParseKey(hex.EncodeToString(key[:16]))
	assert.Error(t, err)
	_, err = middleware.ParseKey(strings.Repeat("z", 44))
	assert.Error(t, err)
}
