// internal/srs/shuffle.go
package srs

import "math/rand/v2"

// Shuffle は一様ランダムな並べ替え (Fisher–Yates) を新しいスライスとして返します。
// 入力は変更しません。クイズ出題とフラッシュカード両方の表示側で使われ、
// 採点の意味 (正解値) には影響しません。
func Shuffle[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
