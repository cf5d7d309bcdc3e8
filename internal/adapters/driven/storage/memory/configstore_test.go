package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()

	require.NotNil(t, store)
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestNewConfigStoreWith_CopiesValues(t *testing.T) {
	seed := map[string]any{"llm.provider": "ollama"}

	store := NewConfigStoreWith(seed)
	seed["llm.provider"] = "openai"

	assert.Equal(t, "ollama", store.GetString("llm.provider"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("llm.model", "gpt-4o-mini"))
	require.NoError(t, store.Set("llm.model", "gpt-4o"))

	val, ok := store.Get("llm.model")
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetInt(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"int":        90000,
		"int64":      int64(15000),
		"whole":      1200.0,
		"fractional": 0.2,
		"string":     "12",
	})

	tests := []struct {
		key  string
		want int
	}{
		{"int", 90000},
		{"int64", 15000},
		{"whole", 1200},
		{"fractional", 0},
		{"string", 0},
		{"missing", 0},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, store.GetInt(tt.key))
		})
	}
}

func TestConfigStore_TypedGetters_WrongType(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{"n": 1, "s": "x"})

	assert.Equal(t, "", store.GetString("n"))
	assert.False(t, store.GetBool("s"))
	assert.Nil(t, store.GetStringSlice("s"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"typed": []string{"смета", "ТЗ"},
		"mixed": []any{"договор", 42, "спецификация"},
	})

	assert.Equal(t, []string{"смета", "ТЗ"}, store.GetStringSlice("typed"))
	assert.Equal(t, []string{"договор", "спецификация"}, store.GetStringSlice("mixed"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{"on": true, "off": false})

	assert.True(t, store.GetBool("on"))
	assert.False(t, store.GetBool("off"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("key%d", id%5)
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		_, ok := store.Get(fmt.Sprintf("key%d", i))
		assert.True(t, ok)
	}
}
