package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Render(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name     string
		template string
		data     map[string]interface{}
		want     string
	}{
		{
			name:     "plain variable",
			template: "spec={{spec}}",
			data:     map[string]interface{}{"spec": "is-new"},
			want:     "spec=is-new",
		},
		{
			name:     "uppercase and lowercase",
			template: "{{uppercase a}} {{lowercase b}}",
			data:     map[string]interface{}{"a": "new", "b": "OLD"},
			want:     "NEW old",
		},
		{
			name:     "default for empty value",
			template: "{{default color \"n/a\"}}",
			data:     map[string]interface{}{"color": ""},
			want:     "n/a",
		},
		{
			name:     "join and len",
			template: "{{len items}}: {{join items \"; \"}}",
			data:     map[string]interface{}{"items": []string{"a", "b", "c"}},
			want:     "3: a; b; c",
		},
		{
			name:     "price",
			template: "{{price amount}}",
			data:     map[string]interface{}{"amount": 1234567},
			want:     "1,234,567",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Render(tt.template, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_DefaultReport(t *testing.T) {
	e := NewEngine()

	t.Run("with matches", func(t *testing.T) {
		got, err := e.Render(DefaultReport, map[string]interface{}{
			"spec":    "is-new",
			"total":   4,
			"matched": []string{"피카츄", "꼬북이"},
			"skipped": []string{},
		})
		require.NoError(t, err)
		assert.Equal(t, "is-new: 2 of 4 products matched (피카츄, 꼬북이)", got)
	})

	t.Run("no matches with skipped", func(t *testing.T) {
		got, err := e.Render(DefaultReport, map[string]interface{}{
			"spec":    "is-high-price",
			"total":   2,
			"matched": []string{},
			"skipped": []string{"broken"},
		})
		require.NoError(t, err)
		assert.Equal(t, "is-high-price: 0 of 2 products matched, 1 skipped", got)
	})
}

func TestEngine_Cache(t *testing.T) {
	e := NewEngine()
	data := map[string]interface{}{"spec": "x"}

	first, err := e.Render("{{uppercase spec}}", data)
	require.NoError(t, err)
	second, err := e.Render("{{uppercase spec}}", data)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, e.cache, 1)

	e.ClearCache()
	assert.Empty(t, e.cache)

	// a second engine registers its helpers independently
	other, err := NewEngine().Render("{{uppercase spec}}", data)
	require.NoError(t, err)
	assert.Equal(t, "X", other)
}

func TestEngine_InvalidTemplate(t *testing.T) {
	e := NewEngine()

	assert.Error(t, e.ValidateTemplate("{{#if x}}unclosed"))
	assert.NoError(t, e.ValidateTemplate(DefaultReport))

	_, err := e.Render("{{#if x}}unclosed", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile template")
}

func TestFormatThousands(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		200000:   "200,000",
		-1500:    "-1,500",
		12345678: "12,345,678",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatThousands(in), "%d", in)
	}
}
