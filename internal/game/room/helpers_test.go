package room

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/palemoky/word-imposter/internal/words"
)

func newTestManager(t *testing.T, opts Options) *RoomManager {
	t.Helper()
	if opts.Random == nil {
		opts.Random = NewLockedRandom(rand.New(rand.NewPCG(1, 2)))
	}
	rm := NewRoomManager(opts)
	t.Cleanup(rm.Close)
	return rm
}

func singlePair(t *testing.T) words.Supplier {
	t.Helper()
	list, err := words.NewList([]words.Pair{{Word: "apple", Hint: "fruit"}})
	require.NoError(t, err)
	return list
}

// mustJoin 加入房间并断言成功
func mustJoin(t *testing.T, rm *RoomManager, code, id, name string) *JoinResult {
	t.Helper()
	res, err := rm.Join(code, id, name, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

// zeroRandom 总是抽到 0，排列为恒等排列
type zeroRandom struct{}

func (zeroRandom) IntN(int) int { return 0 }

func (zeroRandom) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func strPtr(s string) *string { return &s }
