package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySlotStore_EmptySlot(t *testing.T) {
	store := NewMemorySlotStore()

	payload, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestMemorySlotStore_SaveAndLoad(t *testing.T) {
	store := NewMemorySlotStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []byte(`{"events":[]}`)))

	payload, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"events":[]}`), payload)
}

func TestMemorySlotStore_SaveReplacesPreviousPayload(t *testing.T) {
	store := NewMemorySlotStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []byte("first")))
	require.NoError(t, store.Save(ctx, []byte("second")))

	payload, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), payload)
}

func TestMemorySlotStore_LoadReturnsCopy(t *testing.T) {
	store := NewMemorySlotStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []byte("original")))

	payload, err := store.Load(ctx)
	require.NoError(t, err)
	payload[0] = 'X'

	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestStoreError(t *testing.T) {
	inner := assert.AnError
	err := &StoreError{Op: "save", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "save")
}
