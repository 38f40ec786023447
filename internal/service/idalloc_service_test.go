package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSequenceRepo struct {
	values map[string]int64
}

func (f *fakeSequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	if f.values == nil {
		f.values = make(map[string]int64)
	}
	f.values[name]++
	return f.values[name], nil
}

func TestAllocateIsMonotonicPerClass(t *testing.T) {
	alloc := NewIDAllocator(&fakeSequenceRepo{})

	first, err := alloc.Allocate(context.Background(), ClassLearner)
	require.NoError(t, err)
	second, err := alloc.Allocate(context.Background(), ClassLearner)
	require.NoError(t, err)
	assert.Equal(t, "LRN-0001", first)
	assert.Equal(t, "LRN-0002", second)

	// Other classes run their own counters.
	staffID, err := alloc.Allocate(context.Background(), ClassStaff)
	require.NoError(t, err)
	assert.Equal(t, "STF-0001", staffID)
}

func TestAllocateUnknownClass(t *testing.T) {
	alloc := NewIDAllocator(&fakeSequenceRepo{})

	_, err := alloc.Allocate(context.Background(), EntityClass("rooms"))
	require.Error(t, err)
}

func TestFormatIDWidensBeyondFourDigits(t *testing.T) {
	assert.Equal(t, "FEE-0007", FormatID("FEE", 7))
	assert.Equal(t, "FEE-9999", FormatID("FEE", 9999))
	assert.Equal(t, "FEE-12345", FormatID("FEE", 12345))
}
