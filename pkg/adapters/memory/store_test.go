package memory_test

import (
	"testing"

	"github.com/aretw0/turbo-editor/pkg/adapters/memory"
	"github.com/aretw0/turbo-editor/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSceneStoreContract(t, store)
}
