package filter

import (
	"context"
	"testing"

	"github.com/aescanero/dago-spec/internal/catalog"
	"github.com/aescanero/dago-spec/pkg/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestFilter(t *testing.T, reportTemplate string) (*Filter, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)

	specs := catalog.Specs(catalog.DefaultHighPriceThreshold)
	specs["panics-on-red"] = spec.Named("panics-on-red", func(p catalog.Product) bool {
		if p.Color == "red" {
			panic("red products are not supported")
		}
		return true
	})

	return New(specs, reportTemplate, zap.New(core)), logs
}

func TestFilter_Apply(t *testing.T) {
	f, _ := newTestFilter(t, "")

	tests := []struct {
		spec    string
		want    []string
		summary string
	}{
		{catalog.SpecNew, []string{"피카츄", "꼬북이"}, "is-new: 2 of 4 products matched (피카츄, 꼬북이)"},
		{catalog.SpecHighPrice, []string{"파이리", "꼬북이"}, "is-high-price: 2 of 4 products matched (파이리, 꼬북이)"},
		{catalog.SpecOriginalAndHighPrice, []string{"파이리"}, "is-original-and-high-price: 1 of 4 products matched (파이리)"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			result, err := f.Apply(context.Background(), &Request{
				RequestID: "req-1",
				Spec:      tt.spec,
				Products:  catalog.Sample(),
			})
			require.NoError(t, err)

			assert.Equal(t, "req-1", result.RequestID)
			assert.Equal(t, 4, result.Total)
			assert.Equal(t, tt.want, catalog.Names(result.Matched))
			assert.Empty(t, result.Skipped)
			assert.Equal(t, tt.summary, result.Summary)
		})
	}
}

func TestFilter_ApplyRecordsExpression(t *testing.T) {
	f, _ := newTestFilter(t, "{{expression}}")

	result, err := f.Apply(context.Background(), &Request{Spec: catalog.SpecOriginalAndHighPrice})
	require.NoError(t, err)

	assert.Equal(t, "and(not(is-new), is-high-price)", result.Expression)
	assert.Equal(t, "and(not(is-new), is-high-price)", result.Summary)
	assert.NotEmpty(t, result.RequestID, "request id is generated when missing")
	assert.Empty(t, result.Matched)
}

func TestFilter_ApplySkipsFailingCandidates(t *testing.T) {
	f, logs := newTestFilter(t, "")

	result, err := f.Apply(context.Background(), &Request{
		RequestID: "req-2",
		Spec:      "panics-on-red",
		Products:  catalog.Sample(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"피카츄", "파이리", "꼬북이"}, catalog.Names(result.Matched))
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 1, result.Skipped[0].Index)
	assert.Equal(t, "라이츄", result.Skipped[0].Name)
	assert.Contains(t, result.Skipped[0].Error, "red products are not supported")
	assert.Equal(t, "panics-on-red: 3 of 4 products matched (피카츄, 파이리, 꼬북이), 1 skipped", result.Summary)

	warnings := logs.FilterMessage("candidate evaluation failed").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, zapcore.WarnLevel, warnings[0].Level)
	assert.Equal(t, "라이츄", warnings[0].ContextMap()["product"])
}

func TestFilter_ApplyErrors(t *testing.T) {
	f, _ := newTestFilter(t, "")

	t.Run("unknown spec", func(t *testing.T) {
		_, err := f.Apply(context.Background(), &Request{Spec: "no-such-spec"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownSpec)
	})

	t.Run("nil request", func(t *testing.T) {
		_, err := f.Apply(context.Background(), nil)
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.Apply(ctx, &Request{Spec: catalog.SpecNew, Products: catalog.Sample()})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("broken report template", func(t *testing.T) {
		broken, _ := newTestFilter(t, "{{#if matched}}unclosed")

		_, err := broken.Apply(context.Background(), &Request{Spec: catalog.SpecNew})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to render report")
	})
}

func TestFilter_SpecNames(t *testing.T) {
	f, _ := newTestFilter(t, "")

	assert.Equal(t, []string{
		catalog.SpecHighPrice,
		catalog.SpecNew,
		catalog.SpecOriginalAndHighPrice,
		"panics-on-red",
	}, f.SpecNames())
}
