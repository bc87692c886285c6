// internal/quizformat/correct.go
package quizformat

import "strings"

// IsCorrect は設問タイプごとの規則で回答の正誤を判定します。
// 未回答・タイプと合わない形の回答は常に不正解で、パニックや
// エラーにはなりません。
//
//   - MCQ:   単一回答が正解値と完全一致 (トリムなしの文字列比較)
//   - YESNO: 単一回答を小文字に正規化して正解値 ("yes"/"no") と比較
//   - MULTI: 回答集合が正解集合と完全一致 (過不足はどちらも不正解)
func IsCorrect(q Question, answer Answer) bool {
	switch q.Type {
	case TypeMCQ:
		return answer.Kind == AnswerSingle && answer.Value == q.Correct

	case TypeYesNo:
		if answer.Kind != AnswerSingle {
			return false
		}
		// 正解値はパース時に小文字へ正規化済み。回答側も同じ規約で揃える。
		return strings.ToLower(strings.TrimSpace(answer.Value)) == q.Correct

	case TypeMulti:
		if answer.Kind != AnswerMulti || len(answer.Values) == 0 {
			return false
		}
		given := make(map[string]bool, len(answer.Values))
		for _, v := range answer.Values {
			given[v] = true
		}
		if len(given) != len(q.CorrectSet) {
			return false
		}
		for _, v := range q.CorrectSet {
			if !given[v] {
				return false
			}
		}
		return true
	}
	return false
}
