package filter

import (
	"context"
	"errors"
	"fmt"

	"github.com/aescanero/dago-spec/internal/catalog"
	"github.com/aescanero/dago-spec/internal/eval/template"
	"github.com/aescanero/dago-spec/pkg/spec"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnknownSpec is returned when a request names an unregistered specification
var ErrUnknownSpec = errors.New("unknown specification")

// Request asks for the products satisfying a named specification
type Request struct {
	RequestID string            `json:"request_id"`
	Spec      string            `json:"spec"`
	Products  []catalog.Product `json:"products"`
}

// Skipped records a candidate whose evaluation failed
type Skipped struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// Result is the outcome of a filter request
type Result struct {
	RequestID  string            `json:"request_id"`
	Spec       string            `json:"spec"`
	Expression string            `json:"expression"`
	Total      int               `json:"total"`
	Matched    []catalog.Product `json:"matched"`
	Skipped    []Skipped         `json:"skipped,omitempty"`
	Summary    string            `json:"summary"`
}

// Filter evaluates requests against a fixed registry of specifications
type Filter struct {
	specs          map[string]spec.Specification[catalog.Product]
	reportTemplate string
	templateEngine *template.Engine
	logger         *zap.Logger
}

// New creates a filter. An empty reportTemplate selects template.DefaultReport.
func New(specs map[string]spec.Specification[catalog.Product], reportTemplate string, logger *zap.Logger) *Filter {
	if reportTemplate == "" {
		reportTemplate = template.DefaultReport
	}
	return &Filter{
		specs:          specs,
		reportTemplate: reportTemplate,
		templateEngine: template.NewEngine(),
		logger:         logger,
	}
}

// SpecNames returns the registered specification names in sorted order
func (f *Filter) SpecNames() []string {
	return catalog.SpecNames(f.specs)
}

// Lookup returns the specification registered under name
func (f *Filter) Lookup(name string) (spec.Specification[catalog.Product], error) {
	s, ok := f.specs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpec, name)
	}
	return s, nil
}

// Apply evaluates the request's specification against each product
func (f *Filter) Apply(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, fmt.Errorf("request is nil")
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	s, err := f.Lookup(req.Spec)
	if err != nil {
		return nil, err
	}

	f.logger.Info("filter request",
		zap.String("request_id", req.RequestID),
		zap.String("spec", req.Spec),
		zap.Int("candidates", len(req.Products)),
	)

	result := &Result{
		RequestID:  req.RequestID,
		Spec:       req.Spec,
		Expression: fmt.Sprint(s),
		Total:      len(req.Products),
		Matched:    make([]catalog.Product, 0, len(req.Products)),
	}

	for i, product := range req.Products {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("filter cancelled: %w", err)
		}

		ok, err := spec.Check(s, product)
		if err != nil {
			f.logger.Warn("candidate evaluation failed",
				zap.String("request_id", req.RequestID),
				zap.Int("index", i),
				zap.String("product", product.Name),
				zap.Error(err),
			)
			result.Skipped = append(result.Skipped, Skipped{Index: i, Name: product.Name, Error: err.Error()})
			continue
		}

		f.logger.Debug("candidate evaluated",
			zap.Int("index", i),
			zap.String("product", product.Name),
			zap.Bool("satisfied", ok),
		)

		if ok {
			result.Matched = append(result.Matched, product)
		}
	}

	summary, err := f.templateEngine.Render(f.reportTemplate, reportData(result))
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	result.Summary = summary

	f.logger.Info("filter decision",
		zap.String("request_id", req.RequestID),
		zap.String("spec", req.Spec),
		zap.Int("matched", len(result.Matched)),
		zap.Int("skipped", len(result.Skipped)),
	)

	return result, nil
}

// reportData converts a result into the template context
func reportData(result *Result) map[string]interface{} {
	skipped := make([]string, len(result.Skipped))
	for i, s := range result.Skipped {
		skipped[i] = s.Name
	}

	return map[string]interface{}{
		"request_id": result.RequestID,
		"spec":       result.Spec,
		"expression": result.Expression,
		"total":      result.Total,
		"matched":    catalog.Names(result.Matched),
		"skipped":    skipped,
	}
}
