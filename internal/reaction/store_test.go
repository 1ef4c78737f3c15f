package reaction

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreDefaultVector(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// 未见过的文章返回全零向量
	vector, err := store.Get(ctx, "post-1")
	require.NoError(t, err)
	require.Equal(t, Vector{0, 0, 0, 0}, vector)

	// 后续自增在这个基线上进行
	vector, err = store.IncrementAt(ctx, "post-1", 2)
	require.NoError(t, err)
	require.Equal(t, Vector{0, 0, 1, 0}, vector)
}

func TestMemoryStoreInvalidIndex(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.IncrementAt(ctx, "post-1", 1)
	require.NoError(t, err)

	for _, index := range []int{-1, 4, 100} {
		_, err := store.IncrementAt(ctx, "post-1", index)
		require.ErrorIs(t, err, ErrInvalidIndex)
	}

	// 越界调用不应改变向量
	vector, err := store.Get(ctx, "post-1")
	require.NoError(t, err)
	require.Equal(t, Vector{0, 1, 0, 0}, vector)
}

func TestMemoryStoreConcurrentIncrements(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// 对同一下标的并发自增不允许丢失更新
	const workers = 8
	const perWorker = 100
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := store.IncrementAt(ctx, "post-1", 0)
				require.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	vector, err := store.Get(ctx, "post-1")
	require.NoError(t, err)
	require.Equal(t, int64(workers*perWorker), vector[0])
}

func TestMemoryStoreFirstAccessRaceKeepsIncrements(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// 首次访问的缺省值落库不允许抹掉并发到达的自增：
	// Get和IncrementAt交错执行后，终值必须恰好等于自增次数
	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := store.Get(ctx, "post-1")
			require.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := store.IncrementAt(ctx, "post-1", 0)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	vector, err := store.Get(ctx, "post-1")
	require.NoError(t, err)
	require.Equal(t, int64(n), vector[0])
}

func TestMemoryStoreIndependentItems(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.IncrementAt(ctx, "post-a", 0)
	require.NoError(t, err)

	vector, err := store.Get(ctx, "post-b")
	require.NoError(t, err)
	require.Equal(t, Vector{0, 0, 0, 0}, vector)
}
