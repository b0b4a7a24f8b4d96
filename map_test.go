package nbhm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbhm-go/nbhm"
)

func Test_Get_Returns_False_On_Empty_Map(t *testing.T) {
	m := nbhm.New[string, int]()

	v, ok := m.Get("missing")

	assert.False(t, ok)
	assert.Zero(t, v)
}

func Test_Put_Then_Get_Roundtrips(t *testing.T) {
	m := nbhm.New[string, int]()

	prev, hadPrev := m.Put("a", 1)
	assert.False(t, hadPrev)
	assert.Zero(t, prev)

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, m.Len())
}

func Test_Put_Overwrites_And_Returns_Previous_Value(t *testing.T) {
	m := nbhm.New[string, int]()
	m.Put("a", 1)

	prev, hadPrev := m.Put("a", 2)
	assert.True(t, hadPrev)
	assert.Equal(t, 1, prev)

	v, _ := m.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, m.Len())
}

func Test_PutIfAbsent_Only_Writes_When_Key_Missing(t *testing.T) {
	m := nbhm.New[string, int]()

	prev, hadPrev := m.PutIfAbsent("a", 1)
	assert.False(t, hadPrev)
	assert.Zero(t, prev)

	prev, hadPrev = m.PutIfAbsent("a", 2)
	assert.True(t, hadPrev)
	assert.Equal(t, 1, prev)

	v, _ := m.Get("a")
	assert.Equal(t, 1, v)
}

func Test_PutIfAbsent_Writes_Again_After_Remove(t *testing.T) {
	m := nbhm.New[string, int]()
	m.Put("a", 1)
	m.Remove("a")

	prev, hadPrev := m.PutIfAbsent("a", 2)
	assert.False(t, hadPrev)
	assert.Zero(t, prev)

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func Test_Replace_Only_Writes_When_Key_Present(t *testing.T) {
	m := nbhm.New[string, int]()

	prev, hadPrev := m.Replace("a", 1)
	assert.False(t, hadPrev)

	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Put("a", 1)
	prev, hadPrev = m.Replace("a", 2)
	assert.True(t, hadPrev)
	assert.Equal(t, 1, prev)

	v, _ := m.Get("a")
	assert.Equal(t, 2, v)
}

func Test_Replace_Does_Not_Resurrect_A_Removed_Key(t *testing.T) {
	m := nbhm.New[string, int]()
	m.Put("a", 1)
	m.Remove("a")

	_, hadPrev := m.Replace("a", 2)
	assert.False(t, hadPrev)

	_, ok := m.Get("a")
	assert.False(t, ok)
}

func Test_ReplaceIf_Requires_Matching_Old_Value(t *testing.T) {
	m := nbhm.New[string, int]()
	m.Put("a", 1)

	assert.False(t, m.ReplaceIf("a", 99, 2))
	v, _ := m.Get("a")
	assert.Equal(t, 1, v)

	assert.True(t, m.ReplaceIf("a", 1, 2))
	v, _ = m.Get("a")
	assert.Equal(t, 2, v)
}

func Test_Remove_Deletes_Key_And_Returns_Prior_Value(t *testing.T) {
	m := nbhm.New[string, int]()
	m.Put("a", 1)

	prev, hadPrev := m.Remove("a")
	assert.True(t, hadPrev)
	assert.Equal(t, 1, prev)

	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func Test_Remove_On_Missing_Key_Is_A_NoOp(t *testing.T) {
	m := nbhm.New[string, int]()

	prev, hadPrev := m.Remove("missing")
	assert.False(t, hadPrev)
	assert.Zero(t, prev)
}

func Test_RemoveIf_Requires_Matching_Value(t *testing.T) {
	m := nbhm.New[string, int]()
	m.Put("a", 1)

	assert.False(t, m.RemoveIf("a", 99))
	_, ok := m.Get("a")
	assert.True(t, ok)

	assert.True(t, m.RemoveIf("a", 1))
	_, ok = m.Get("a")
	assert.False(t, ok)
}

func Test_Len_Tracks_Inserts_And_Removes(t *testing.T) {
	m := nbhm.New[int, int]()

	for i := 0; i < 50; i++ {
		m.Put(i, i*i)
	}
	assert.Equal(t, 50, m.Len())

	for i := 0; i < 25; i++ {
		m.Remove(i)
	}
	assert.Equal(t, 25, m.Len())
}

func Test_Map_Grows_Past_Initial_Capacity_And_Migrates(t *testing.T) {
	m := nbhm.NewWithConfig[int, int](nbhm.Config[int]{InitialCapacity: 4})

	const n = 5000
	for i := 0; i < n; i++ {
		m.Put(i, i)
	}

	nbhm.DrainMigrationForTesting(m)

	assert.Equal(t, n, m.Len())
	assert.Equal(t, 1, nbhm.TableChainDepthForTesting(m))

	for i := 0; i < n; i++ {
		v, ok := m.Get(i)
		require.True(t, ok, "key %d missing after resize", i)
		assert.Equal(t, i, v)
	}
}

func Test_NewWithConfig_Clamps_Nonsense_Capacity_Instead_Of_Failing(t *testing.T) {
	m := nbhm.NewWithConfig[int, int](nbhm.Config[int]{InitialCapacity: -7})
	m.Put(1, 1)
	v, ok := m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func Test_Custom_Hasher_Is_Used(t *testing.T) {
	calls := 0
	m := nbhm.NewWithConfig[int, string](nbhm.Config[int]{
		Hasher: func(k int) uint64 {
			calls++
			return uint64(k)
		},
	})

	m.Put(1, "one")
	m.Get(1)

	assert.Positive(t, calls)
}
