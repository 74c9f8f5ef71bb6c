package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthService_DiagnoseWithoutStore(t *testing.T) {
	svc := NewHealthService(nil, "", "", nopLogger())

	d := svc.Diagnose(context.Background())
	assert.Equal(t, "✅ Running", d.Backend)
	assert.Equal(t, "⚠️  Available but not initialized", d.Database)
	assert.Equal(t, "Not Connected", d.ConnectionStatus)
	assert.Equal(t, "❌ Not Set", d.DatabaseURL)
	assert.Equal(t, "❌ Not Set", d.DatabaseName)
	assert.Empty(t, d.Collections)
	assert.False(t, svc.Available())

	err := svc.Probe(context.Background())
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestHealthService_DiagnoseConnected(t *testing.T) {
	svc := NewHealthService(setupStore(t), "postgres://localhost/sneaksync", "sneaksync", nopLogger())

	d := svc.Diagnose(context.Background())
	assert.Equal(t, "✅ Connected & Working", d.Database)
	assert.Equal(t, "Connected", d.ConnectionStatus)
	assert.Equal(t, "✅ Set", d.DatabaseURL)
	assert.Equal(t, "✅ Set", d.DatabaseName)
	assert.Equal(t, []string{"listings", "offers", "orders", "products"}, d.Collections)
	assert.True(t, svc.Available())
}

func TestHealthService_ProbeTogglesAvailability(t *testing.T) {
	m := newMockStore(t)
	svc := NewHealthService(m.store, "postgres://x", "", nopLogger())
	ctx := context.Background()

	m.store.EXPECT().Ping(ctx).Return(errors.New("dial tcp: connection refused"))
	assert.ErrorIs(t, svc.Probe(ctx), ErrServiceUnavailable)
	assert.False(t, svc.Available())

	m.store.EXPECT().Ping(ctx).Return(nil)
	require.NoError(t, svc.Probe(ctx))
	assert.True(t, svc.Available())
}

func TestHealthService_DiagnoseErrors(t *testing.T) {
	m := newMockStore(t)
	svc := NewHealthService(m.store, "", "", nopLogger())
	ctx := context.Background()

	m.store.EXPECT().Ping(ctx).Return(errors.New("password authentication failed for user \"sneaksync\" (SQLSTATE 28P01)"))
	d := svc.Diagnose(ctx)
	assert.Equal(t, "Not Connected", d.ConnectionStatus)
	assert.Equal(t, "❌ Error: password authentication failed for user \"sneaksync", d.Database)

	m.store.EXPECT().Ping(ctx).Return(nil)
	m.store.EXPECT().CollectionNames(ctx).Return(nil, errors.New("permission denied"))
	d = svc.Diagnose(ctx)
	assert.Equal(t, "Connected", d.ConnectionStatus)
	assert.Equal(t, "⚠️  Connected but Error: permission denied", d.Database)
}

func TestHealthService_CollectionsCapped(t *testing.T) {
	m := newMockStore(t)
	svc := NewHealthService(m.store, "", "", nopLogger())
	ctx := context.Background()

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	m.store.EXPECT().Ping(ctx).Return(nil)
	m.store.EXPECT().CollectionNames(ctx).Return(names, nil)

	d := svc.Diagnose(ctx)
	assert.Len(t, d.Collections, 10)
}
