// internal/srs/srs.go
package srs

import (
	"strings"
	"time"
)

// Grade は復習時の想起難易度シグナルです
type Grade string

const (
	GradeAgain Grade = "again" // もう一度
	GradeHard  Grade = "hard"  // 難しい
	GradeGood  Grade = "good"  // 普通
	GradeEasy  Grade = "easy"  // 簡単
)

// 評価ごとの次回復習までの間隔。ユーザーごとの調整は現時点では行いません。
const (
	DelayAgain = 10 * time.Second
	DelayHard  = 6 * time.Minute
	DelayGood  = 15 * time.Minute
	DelayEasy  = 5 * 24 * time.Hour

	// DelayDefault は未知の評価値に適用される既定の間隔です。
	// 評価値の検証エラーにはせず、寛容に受け付けます。
	DelayDefault = 24 * time.Hour
)

// ParseGrade は評価値文字列を正規化します。未知の値か否かを第2戻り値で返しますが、
// 未知でもエラーにはなりません (既定の間隔が使われます)。
func ParseGrade(raw string) (Grade, bool) {
	g := Grade(strings.ToLower(strings.TrimSpace(raw)))
	switch g {
	case GradeAgain, GradeHard, GradeGood, GradeEasy:
		return g, true
	}
	return g, false
}

// Delay は評価に対応する次回復習までの間隔を返します。
func Delay(grade Grade) time.Duration {
	switch grade {
	case GradeAgain:
		return DelayAgain
	case GradeHard:
		return DelayHard
	case GradeGood:
		return DelayGood
	case GradeEasy:
		return DelayEasy
	}
	return DelayDefault
}

// Progress はスケジューラが扱うカード1枚分の復習状態です。
// 永続化レコードとの変換は呼び出し側で行います。
type Progress struct {
	NextReviewAt   *time.Time // nil = 即時復習対象
	LastReviewedAt *time.Time
	ReviewCount    int
}

// Review は採点イベントを次回復習時刻へ写します。
// (progress, grade, now) のみに依存する純粋関数で、失敗しません。
// now はテスト可能性のため必ず引数で受け取ります。
func Review(p Progress, grade Grade, now time.Time) Progress {
	next := now.Add(Delay(grade))
	last := now
	return Progress{
		NextReviewAt:   &next,
		LastReviewedAt: &last,
		ReviewCount:    p.ReviewCount + 1,
	}
}

// IsDue は復習時期が到来しているかを判定します。
// 次回時刻が未設定 (nil) のカードは常に対象で、境界 (== now) も対象に含みます。
func IsDue(nextReviewAt *time.Time, now time.Time) bool {
	return nextReviewAt == nil || !nextReviewAt.After(now)
}

// Schedulable は復習対象の判定に必要な最小のインターフェースです
type Schedulable interface {
	NextReviewTime() *time.Time
}

// DueCards は復習時期が到来したカードだけを返します。
// 入力は変更せず、出力は入力の相対順を保ちます。
func DueCards[T Schedulable](cards []T, now time.Time) []T {
	var due []T
	for _, c := range cards {
		if IsDue(c.NextReviewTime(), now) {
			due = append(due, c)
		}
	}
	return due
}
