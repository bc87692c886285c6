// internal/quizformat/parse.go
package quizformat

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

// CSVヘッダーの列名 (大文字小文字は区別しない)
const (
	colType     = "Type"
	colQuestion = "Question"
	colCorrect  = "Correct"
	colSlide    = "Slide"
)

var optionColumns = []string{"Option1", "Option2", "Option3", "Option4"}

// multiSeparator は MULTI の正解インデックスの区切り文字です
const multiSeparator = ";"

// yesNo系の別表記。正規形は小文字の "yes" / "no" です。
var yesAliases = map[string]bool{"y": true, "yes": true, "true": true, "1": true}
var noAliases = map[string]bool{"n": true, "no": true, "false": true, "0": true}

// Parse はCSVテキストをパースし、検証済みの設問リストを返します。
// 不正な行が1つでもあれば *FormatError を返し、部分的な結果は返しません
// (途中まで取り込まれたクイズを作らないための fail-fast 方針)。
// 同じ入力に対して常に同じ結果を返します (決定的)。
func Parse(csvText string) ([]Question, error) {
	reader := csv.NewReader(strings.NewReader(stripBOM(csvText)))
	reader.FieldsPerRecord = -1 // 行ごとの列数の差は許容し、値の検証で弾く

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &FormatError{Row: 0, Reason: "ヘッダー行がありません"}
		}
		return nil, &FormatError{Row: 0, Reason: "ヘッダー行を読み取れません: " + err.Error()}
	}

	cols, missing := indexColumns(header)
	if len(missing) > 0 {
		return nil, &FormatError{
			Row:    0,
			Column: strings.Join(missing, ", "),
			Reason: "必須列がありません: " + strings.Join(missing, ", "),
		}
	}

	var questions []Question
	row := 0 // データ行の1始まり番号
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, &FormatError{Row: row, Reason: "行を読み取れません: " + err.Error()}
		}

		q, ferr := parseRow(cols, record, row)
		if ferr != nil {
			return nil, ferr
		}
		questions = append(questions, *q)
	}

	return questions, nil
}

// columnIndex はヘッダー内の列位置を保持します。存在しない任意列は -1 です。
type columnIndex struct {
	typ      int
	question int
	correct  int
	options  [4]int
	slide    int
}

// indexColumns はヘッダーから列位置を解決し、欠けている必須列名を返します。
func indexColumns(header []string) (columnIndex, []string) {
	cols := columnIndex{typ: -1, question: -1, correct: -1, slide: -1}
	for i := range cols.options {
		cols.options[i] = -1
	}

	for i, name := range header {
		switch {
		case strings.EqualFold(strings.TrimSpace(name), colType):
			cols.typ = i
		case strings.EqualFold(strings.TrimSpace(name), colQuestion):
			cols.question = i
		case strings.EqualFold(strings.TrimSpace(name), colCorrect):
			cols.correct = i
		case strings.EqualFold(strings.TrimSpace(name), colSlide):
			cols.slide = i
		default:
			for j, opt := range optionColumns {
				if strings.EqualFold(strings.TrimSpace(name), opt) {
					cols.options[j] = i
				}
			}
		}
	}

	var missing []string
	if cols.typ < 0 {
		missing = append(missing, colType)
	}
	if cols.question < 0 {
		missing = append(missing, colQuestion)
	}
	if cols.correct < 0 {
		missing = append(missing, colCorrect)
	}
	return cols, missing
}

// field は record から安全に値を取り出し、前後の空白を除きます。
func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseRow(cols columnIndex, record []string, row int) (*Question, *FormatError) {
	rawType := field(record, cols.typ)
	qType, ok := parseType(rawType)
	if !ok {
		return nil, &FormatError{Row: row, Column: colType, Value: rawType, Reason: "設問タイプは MCQ / MULTI / YESNO のいずれかです"}
	}

	text := field(record, cols.question)
	if text == "" {
		return nil, &FormatError{Row: row, Column: colQuestion, Reason: "設問文が空です"}
	}

	correct := field(record, cols.correct)
	if correct == "" {
		return nil, &FormatError{Row: row, Column: colCorrect, Reason: "正解が指定されていません"}
	}

	q := &Question{ID: row, Type: qType, Text: text}

	switch qType {
	case TypeMCQ, TypeMulti:
		for _, idx := range cols.options {
			if v := field(record, idx); v != "" {
				q.Options = append(q.Options, v)
			}
		}
		if len(q.Options) < 2 {
			return nil, &FormatError{Row: row, Column: "Option1..Option4", Reason: "選択肢は2つ以上必要です"}
		}

		if qType == TypeMCQ {
			n, err := strconv.Atoi(correct)
			if err != nil || n < 1 || n > len(q.Options) {
				return nil, &FormatError{Row: row, Column: colCorrect, Value: correct,
					Reason: "正解は 1〜" + strconv.Itoa(len(q.Options)) + " の選択肢番号で指定します"}
			}
			q.Correct = q.Options[n-1]
		} else {
			set, ferr := parseMultiCorrect(correct, q.Options, row)
			if ferr != nil {
				return nil, ferr
			}
			q.CorrectSet = set
		}

	case TypeYesNo:
		norm, ok := normalizeYesNo(correct)
		if !ok {
			return nil, &FormatError{Row: row, Column: colCorrect, Value: correct,
				Reason: "YESNO の正解は yes / no (または y, n, true, false, 1, 0) で指定します"}
		}
		q.Correct = norm
		q.Options = []string{"Yes", "No"}
	}

	if cols.slide >= 0 {
		if v := field(record, cols.slide); v != "" {
			if page, err := strconv.Atoi(v); err == nil {
				q.Slide = &SlideRef{Page: page}
			} else {
				q.Slide = &SlideRef{Note: v}
			}
		}
	}

	return q, nil
}

func parseType(raw string) (QuestionType, bool) {
	switch strings.ToUpper(raw) {
	case string(TypeMCQ):
		return TypeMCQ, true
	case string(TypeMulti):
		return TypeMulti, true
	case string(TypeYesNo):
		return TypeYesNo, true
	}
	return "", false
}

// parseMultiCorrect は ";" 区切りの1始まりインデックス列を解決します。
// 重複したインデックスも全て妥当である必要がありますが、集合としては1つに畳みます。
func parseMultiCorrect(correct string, options []string, row int) ([]string, *FormatError) {
	parts := strings.Split(correct, multiSeparator)
	seen := make(map[string]bool, len(parts))
	var set []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > len(options) {
			return nil, &FormatError{Row: row, Column: colCorrect, Value: correct,
				Reason: "正解は 1〜" + strconv.Itoa(len(options)) + " の選択肢番号を ; 区切りで指定します"}
		}
		v := options[n-1]
		if !seen[v] {
			seen[v] = true
			set = append(set, v)
		}
	}
	return set, nil
}

// normalizeYesNo は別表記を正規形 "yes" / "no" に揃えます。
func normalizeYesNo(raw string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if yesAliases[lower] {
		return "yes", true
	}
	if noAliases[lower] {
		return "no", true
	}
	return "", false
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
