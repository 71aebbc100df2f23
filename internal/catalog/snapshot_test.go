package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptrFloat(v float64) *float64 { return &v }

func TestLoadSnapshotReturnsCopies(t *testing.T) {
	store := NewMemoryStore(
		[]Product{{ID: 1, Name: "Bleu de Chanel", Price: 3500000, InStock: true, AverageRating: ptrFloat(4.8)}},
		[]OrderLine{{OrderID: 1, ProductID: 1, Quantity: 2, UnitPrice: 3500000}},
	)

	snap, err := LoadSnapshot(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, snap.Products, 1)
	require.Len(t, snap.Lines, 1)

	snap.Products[0].Name = "mutated"
	again, err := LoadSnapshot(context.Background(), store)
	require.NoError(t, err)
	require.Equal(t, "Bleu de Chanel", again.Products[0].Name)
}

func TestLoadSnapshotPropagatesProviderError(t *testing.T) {
	store := NewMemoryStore(nil, nil)
	boom := errors.New("db down")
	store.FailWith(boom)

	_, err := LoadSnapshot(context.Background(), store)
	require.ErrorIs(t, err, boom)

	_, err = LoadSnapshot(context.Background(), nil)
	require.Error(t, err)
}

func TestParseTags(t *testing.T) {
	g, ok := ParseGender(" nu ")
	require.True(t, ok)
	require.Equal(t, GenderFemale, g)
	_, ok = ParseGender("other")
	require.False(t, ok)

	v, ok := ParseVolume("100 ml")
	require.True(t, ok)
	require.Equal(t, Volume("100ML"), v)
	_, ok = ParseVolume("42ml")
	require.False(t, ok)

	p := Product{}
	require.Zero(t, p.Rating())
	require.Zero(t, p.Reviews())
	require.False(t, p.IsHotTrend())
	require.Equal(t, "Không rõ", p.Gender.Label())
}
