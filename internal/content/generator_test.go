package content_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonesrussell/north-cloud/postbot/internal/content"
	"github.com/jonesrussell/north-cloud/postbot/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	text    string
	err     error
	prompts []string
}

func (s *stubLLM) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.text, s.err
}

func TestGenerate_AllCategoriesWithinLimit(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"short tip #go",
		strings.Repeat("x", 281),
		strings.Repeat("é", 500),
		`"` + strings.Repeat("q", 290) + `"`,
	}

	for _, c := range content.AllCategories() {
		for _, in := range inputs {
			g := content.NewGenerator(&stubLLM{text: in}, logger.NewNop())
			got := g.Generate(context.Background(), c)

			assert.LessOrEqual(t, utf8.RuneCountInString(got.Text), content.MaxLength, "category %s", c)
			assert.False(t, got.UsedFallback)
			assert.Equal(t, c, got.Category)
		}
	}
}

func TestGenerate_FallbackOnProviderError(t *testing.T) {
	t.Parallel()

	providerErr := errors.New("503 service unavailable")

	for _, c := range content.AllCategories() {
		g := content.NewGenerator(&stubLLM{err: providerErr}, logger.NewNop())
		got := g.Generate(context.Background(), c)

		assert.True(t, got.UsedFallback)
		assert.Equal(t, content.Fallback(c), got.Text)
		require.ErrorIs(t, got.FallbackReason, content.ErrGeneration)
		require.ErrorIs(t, got.FallbackReason, providerErr)
		assert.LessOrEqual(t, utf8.RuneCountInString(got.Text), content.MaxLength)
	}
}

func TestGenerate_NilProviderFallsBack(t *testing.T) {
	t.Parallel()

	got := content.NewGenerator(nil, nil).Generate(context.Background(), content.MotivationalQuote)

	assert.True(t, got.UsedFallback)
	assert.Equal(t, content.Fallback(content.MotivationalQuote), got.Text)
}

func TestGenerate_UnknownCategoryUsesDefault(t *testing.T) {
	t.Parallel()

	for _, c := range []content.Category{"", "poetry"} {
		llm := &stubLLM{text: "tip"}
		got := content.NewGenerator(llm, logger.NewNop()).Generate(context.Background(), c)

		assert.Equal(t, content.DefaultCategory, got.Category)
		require.Len(t, llm.prompts, 1)
		assert.Equal(t, content.Prompt(content.DefaultCategory), llm.prompts[0])

		failed := content.NewGenerator(&stubLLM{err: errors.New("down")}, logger.NewNop()).Generate(context.Background(), c)
		assert.Equal(t, content.Fallback(content.DefaultCategory), failed.Text)
	}
}

func TestGenerate_EmptyResponsePassedThrough(t *testing.T) {
	t.Parallel()

	got := content.NewGenerator(&stubLLM{text: ""}, logger.NewNop()).Generate(context.Background(), content.CodingTip)

	assert.Empty(t, got.Text)
	assert.False(t, got.UsedFallback)
	assert.NoError(t, got.FallbackReason)
}

func TestGenerate_CodingTipFallbackLiteral(t *testing.T) {
	t.Parallel()

	got := content.NewGenerator(&stubLLM{err: errors.New("unavailable")}, logger.NewNop()).
		Generate(context.Background(), content.CodingTip)

	assert.Equal(t,
		"💡 Code Tip: Write tests first, code second. It clarifies your thinking and prevents bugs! #TDD #CodeTip #Testing #Programming",
		got.Text)
}

func TestTruncate_300Characters(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := range 300 {
		b.WriteByte(byte('a' + i%26))
	}
	in := b.String()

	got := content.Truncate(in)

	assert.Equal(t, content.MaxLength, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, content.Ellipsis))
	assert.Equal(t, in[:277], got[:277])
}

func TestTruncate_ExactlyMaxUnchanged(t *testing.T) {
	t.Parallel()

	in := strings.Repeat("z", content.MaxLength)
	assert.Equal(t, in, content.Truncate(in))
}

func TestTruncate_CountsRunes(t *testing.T) {
	t.Parallel()

	in := strings.Repeat("🚀", 281)
	got := content.Truncate(in)

	assert.Equal(t, content.MaxLength, utf8.RuneCountInString(got))
	assert.Equal(t, strings.Repeat("🚀", 277)+"...", got)
}

func TestStripQuotes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "double quoted", in: `"Ship small."`, want: "Ship small."},
		{name: "single quoted", in: `'Ship small.'`, want: "Ship small."},
		{name: "only leading", in: `"Ship small.`, want: "Ship small."},
		{name: "only trailing", in: `Ship small.'`, want: "Ship small."},
		{name: "inner quotes kept", in: `He said "ship it" today`, want: `He said "ship it" today`},
		{name: "one layer only", in: `""nested""`, want: `"nested"`},
		{name: "lone quote", in: `"`, want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, content.StripQuotes(tc.in))
		})
	}
}

func TestNormalize_TrimsBeforeStripping(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Refactor often. #CleanCode", content.Normalize("\"Refactor often. #CleanCode\"\n"))
}
