// internal/quizformat/normalize_test.go
package quizformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("正常系: 妥当なCSVはそのまま返す (冪等)", func(t *testing.T) {
		assert.Equal(t, validCSV, Normalize(validCSV))
		assert.Equal(t, Normalize(validCSV), Normalize(Normalize(validCSV)))
	})

	t.Run("正常系: ヘッダーが無ければ既定ヘッダーを補う", func(t *testing.T) {
		in := "MCQ,Q1,a,b,,,1\n"
		out := Normalize(in)

		qs, err := Parse(out)
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.Equal(t, TypeMCQ, qs[0].Type)
		assert.Equal(t, "a", qs[0].Correct)
	})

	t.Run("正常系: クォートの壊れた行は引用し直されて再パースできる", func(t *testing.T) {
		in := "Type,Question,Option1,Option2,Correct\n" +
			"MCQ,What is \"CSV\"?,a,b,1\n"
		out := Normalize(in)

		qs, err := Parse(out)
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.Contains(t, qs[0].Text, "CSV")
	})

	t.Run("正常系: 救済後も不正な内容ならパース側で失敗する", func(t *testing.T) {
		// ヘッダー補完はされるが、設問タイプが不正なのでパースは通らない
		in := "ESSAY,Q1,a,b,,,1\n"
		out := Normalize(in)

		_, err := Parse(out)
		require.Error(t, err)
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
	})
}
