// internal/quizformat/normalize.go
package quizformat

import (
	"encoding/csv"
	"strings"
)

// DefaultHeader は手書き・生成CSVでヘッダーが省略された場合に補う既定ヘッダーです
const DefaultHeader = "Type,Question,Option1,Option2,Option3,Option4,Correct"

// Normalize はパース前の救済用プリパスです。ベストエフォートで
//   - ヘッダー行が無ければ既定ヘッダーを補い、
//   - クォートが壊れている行をセル単位で引用し直します。
//
// 出力が妥当なCSVであることは保証しません (再パースで失敗し得ます)。
// 既に妥当なCSVに対しては入力をそのまま返します (冪等)。
func Normalize(csvText string) string {
	text := stripBOM(csvText)

	if isValidCSV(text) && hasHeader(text) {
		return csvText
	}

	lines := splitLines(text)
	var out []string

	if !hasHeader(text) {
		out = append(out, DefaultHeader)
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isValidCSVLine(line) {
			out = append(out, line)
			continue
		}
		out = append(out, requoteLine(line))
	}

	return strings.Join(out, "\n") + "\n"
}

// hasHeader は先頭の非空行が必須列を含むヘッダーかどうかを判定します。
func hasHeader(text string) bool {
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := csv.NewReader(strings.NewReader(line)).Read()
		if err != nil {
			// クォートの壊れたヘッダー行はカンマ区切りで代替判定
			record = strings.Split(line, ",")
		}
		_, missing := indexColumns(record)
		return len(missing) == 0
	}
	return false
}

func isValidCSV(text string) bool {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	_, err := r.ReadAll()
	return err == nil
}

func isValidCSVLine(line string) bool {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	_, err := r.ReadAll()
	return err == nil
}

// requoteLine はクォートの壊れた行を救済します。カンマでセルに分割し、
// 内部のクォートをエスケープした上で各セルを引用し直します。
// テキスト中の生のカンマはセル区切りとして扱われてしまいますが、
// そもそも引用が壊れた行に対する推測なので許容します。
func requoteLine(line string) string {
	cells := strings.Split(line, ",")
	quoted := make([]string, len(cells))
	for i, cell := range cells {
		cell = strings.Trim(cell, `"`)
		cell = strings.ReplaceAll(cell, `"`, `""`)
		quoted[i] = `"` + cell + `"`
	}
	return strings.Join(quoted, ",")
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}
