// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/freidok/internal/tree"
	"github.com/pdiddy/freidok/pkg/types"
)

type memStore struct {
	data   map[string][]byte
	getErr error
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Put(_ context.Context, key string, payload []byte) error {
	m.data[key] = payload
	return nil
}

func countingServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Write([]byte(payload))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestCached_ServesRepeatedQueryFromStore(t *testing.T) {
	var calls int32
	ts := countingServer(t, &calls)
	store := &memStore{data: map[string][]byte{}}
	c := &Cached{Client: newTestClient(t, ts, types.ClientConfig{}), Store: store, Log: zap.NewNop()}
	q := PublicationQuery{PersIDs: []int{1}}

	first, err := c.Publications(context.Background(), q)
	require.NoError(t, err)
	second, err := c.Publications(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, tree.Equal(first, second))
	assert.Len(t, store.data, 1)

	_, err = c.Publications(context.Background(), PublicationQuery{PersIDs: []int{2}})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "different query misses")
}

func TestCached_InstitutionsUseSeparateKeys(t *testing.T) {
	var calls int32
	ts := countingServer(t, &calls)
	store := &memStore{data: map[string][]byte{}}
	c := &Cached{Client: newTestClient(t, ts, types.ClientConfig{}), Store: store}

	_, err := c.Institutions(context.Background(), InstitutionQuery{IDs: []int{1}})
	require.NoError(t, err)
	_, err = c.Publications(context.Background(), PublicationQuery{InstIDs: []int{1}})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Len(t, store.data, 2)
}

func TestCached_StoreErrorFallsBackToNetwork(t *testing.T) {
	var calls int32
	ts := countingServer(t, &calls)
	store := &memStore{data: map[string][]byte{}, getErr: errors.New("disk gone")}
	c := &Cached{Client: newTestClient(t, ts, types.ClientConfig{}), Store: store}

	_, err := c.Publications(context.Background(), PublicationQuery{IDs: []int{3}})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCached_CorruptEntryIsRefetched(t *testing.T) {
	var calls int32
	ts := countingServer(t, &calls)
	client := newTestClient(t, ts, types.ClientConfig{})
	key := client.URL("publications", map[string][]string{"publicationId": {"3"}})
	store := &memStore{data: map[string][]byte{key: []byte("{broken")}}
	c := &Cached{Client: client, Store: store}

	_, err := c.Publications(context.Background(), PublicationQuery{IDs: []int{3}})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.JSONEq(t, payload, string(store.data[key]))
}

func TestCached_ValidatesBeforeLookup(t *testing.T) {
	c := &Cached{Client: &APIClient{}, Store: &memStore{data: map[string][]byte{}}}
	_, err := c.Publications(context.Background(), PublicationQuery{})
	assert.ErrorIs(t, err, ErrMissingSelector)
}
