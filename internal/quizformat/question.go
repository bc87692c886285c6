// internal/quizformat/question.go
package quizformat

import "fmt"

// QuestionType は設問タイプの閉じた列挙です
type QuestionType string

const (
	TypeMCQ   QuestionType = "MCQ"   // 単一選択
	TypeMulti QuestionType = "MULTI" // 複数選択
	TypeYesNo QuestionType = "YESNO" // 二択
)

// SlideRef は設問の参照情報です。Page > 0 ならページ番号参照、
// それ以外は Note の自由記述参照として扱います。
type SlideRef struct {
	Page int
	Note string
}

// Question はパース済みの設問1件を表します。パース後は不変として扱います。
type Question struct {
	ID      int          // パース内での連番 (1始まり)
	Type    QuestionType
	Text    string
	Options []string // MCQ/MULTI: 2〜4件 / YESNO: {"Yes","No"} 固定
	Correct string   // MCQ/YESNO の正解値 (YESNO は小文字 "yes"/"no" に正規化)
	// CorrectSet は MULTI の正解集合。CSVに書かれた順を保持しますが、
	// 採点は順序に依存しません。
	CorrectSet []string
	Slide      *SlideRef // 参照情報 (なければ nil)
}

// AnswerKind は回答の形を表すタグです。
// 回答の形を値から推測せず、タグで明示します。
type AnswerKind int

const (
	AnswerNone   AnswerKind = iota // 未回答
	AnswerSingle                   // MCQ/YESNO 用の単一回答
	AnswerMulti                    // MULTI 用の複数回答
)

// Answer はユーザー回答のタグ付きユニオンです
type Answer struct {
	Kind   AnswerKind
	Value  string   // Kind == AnswerSingle のとき有効
	Values []string // Kind == AnswerMulti のとき有効
}

// SingleAnswer は単一回答を作ります
func SingleAnswer(value string) Answer {
	return Answer{Kind: AnswerSingle, Value: value}
}

// MultiAnswer は複数回答を作ります
func MultiAnswer(values []string) Answer {
	return Answer{Kind: AnswerMulti, Values: values}
}

// FormatError はCSVが構造・値の契約に違反したことを表します。
// 学習者が該当行を特定して直せるよう、行番号と列名を必ず持ちます。
// Row はヘッダーを除いたデータ行の1始まり番号です (ヘッダー自体のエラーは 0)。
type FormatError struct {
	Row    int
	Column string
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("CSV形式エラー (ヘッダー): %s", e.Reason)
	}
	if e.Value != "" {
		return fmt.Sprintf("CSV形式エラー (%d行目, %s列, 値 %q): %s", e.Row, e.Column, e.Value, e.Reason)
	}
	return fmt.Sprintf("CSV形式エラー (%d行目, %s列): %s", e.Row, e.Column, e.Reason)
}
