// internal/srs/shuffle_test.go
package srs

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShuffle(t *testing.T) {
	t.Run("正常系: 出力は入力と同じ要素の並べ替えになる", func(t *testing.T) {
		in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
		out := Shuffle(in)

		sortedOut := append([]int(nil), out...)
		sort.Ints(sortedOut)
		assert.Equal(t, in, sortedOut)
		// 入力は変更されない
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, in)
	})

	t.Run("正常系: 要素が1以下なら入力と等しい", func(t *testing.T) {
		assert.Empty(t, Shuffle([]string{}))
		assert.Equal(t, []string{"only"}, Shuffle([]string{"only"}))
	})

	t.Run("正常系: 呼び出しごとに独立した並びが得られる", func(t *testing.T) {
		in := make([]int, 32)
		for i := range in {
			in[i] = i
		}
		// 32要素が複数回連続で恒等順になる確率は無視できる
		same := 0
		for trial := 0; trial < 5; trial++ {
			out := Shuffle(in)
			if assert.ObjectsAreEqual(in, out) {
				same++
			}
		}
		assert.Less(t, same, 5)
	})
}
