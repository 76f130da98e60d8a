package storage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"conclave.network/conclave/lib/errors"
)

func TestStorageNewAndGet(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	type record struct {
		Name  string
		Count uint64
	}

	input := record{Name: "showme", Count: 10}
	require.Nil(t, st.New("r-showme", input))

	var fetched record
	require.Nil(t, st.Get("r-showme", &fetched))
	require.Equal(t, input, fetched)

	// `New` with the same key must fail
	err := st.New("r-showme", input)
	require.Equal(t, errors.StorageRecordAlreadyExists, err)
}

func TestStorageSetRequiresExisting(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	err := st.Set("r-unknown", 10)
	require.Equal(t, errors.StorageRecordDoesNotExist, err)

	require.Nil(t, st.New("r-known", 10))
	require.Nil(t, st.Set("r-known", 20))

	var fetched int
	require.Nil(t, st.Get("r-known", &fetched))
	require.Equal(t, 20, fetched)
}

func TestStorageRemove(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	require.Nil(t, st.New("r-0", "findme"))
	require.Nil(t, st.Remove("r-0"))

	exists, err := st.Has("r-0")
	require.Nil(t, err)
	require.False(t, exists)

	require.Equal(t, errors.StorageRecordDoesNotExist, st.Remove("r-0"))
}

func TestStorageIterator(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	var inserted []string
	for i := 0; i < 30; i++ {
		key := fmt.Sprintf("it-%03d", i)
		require.Nil(t, st.New(key, i))
		inserted = append(inserted, key)
	}
	require.Nil(t, st.New("other-0", 0))

	{ // forward, over the whole prefix
		var fetched []string
		iterFunc, closeFunc := st.GetIterator("it-", NewDefaultListOptions(false, nil, 0))
		for {
			item, hasNext := iterFunc()
			if !hasNext {
				break
			}
			fetched = append(fetched, string(item.Key))
		}
		closeFunc()

		require.Equal(t, inserted, fetched)
	}

	{ // limited
		var fetched []string
		iterFunc, closeFunc := st.GetIterator("it-", NewDefaultListOptions(false, nil, 10))
		for {
			item, hasNext := iterFunc()
			if !hasNext {
				break
			}
			fetched = append(fetched, string(item.Key))
		}
		closeFunc()

		require.Equal(t, inserted[:10], fetched)
	}

	{ // reverse
		iterFunc, closeFunc := st.GetIterator("it-", NewDefaultListOptions(true, nil, 1))
		item, _ := iterFunc()
		closeFunc()

		require.Equal(t, inserted[len(inserted)-1], string(item.Key))
	}
}

func TestStorageTransaction(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	{ // committed writes are visible
		ts, err := st.OpenTransaction()
		require.Nil(t, err)
		require.Nil(t, ts.New("tx-0", "committed"))
		require.Nil(t, ts.Commit())

		var fetched string
		require.Nil(t, st.Get("tx-0", &fetched))
		require.Equal(t, "committed", fetched)
	}

	{ // discarded writes are not
		ts, err := st.OpenTransaction()
		require.Nil(t, err)
		require.Nil(t, ts.New("tx-1", "discarded"))
		require.Nil(t, ts.Discard())

		exists, err := st.Has("tx-1")
		require.Nil(t, err)
		require.False(t, exists)
	}
}
