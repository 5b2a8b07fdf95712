package template

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/aymerick/raymond"
)

// DefaultReport is the report template used when none is configured
const DefaultReport = `{{spec}}: {{len matched}} of {{total}} products matched{{#if matched}} ({{join matched ", "}}){{/if}}{{#if skipped}}, {{len skipped}} skipped{{/if}}`

// Engine renders Handlebars templates
type Engine struct {
	cache   map[string]*raymond.Template
	helpers map[string]interface{}
	mu      sync.RWMutex
}

// NewEngine creates a new template engine
func NewEngine() *Engine {
	return &Engine{
		cache:   make(map[string]*raymond.Template),
		helpers: helpers(),
	}
}

// Render renders a template with the given data
func (e *Engine) Render(templateStr string, data interface{}) (string, error) {
	tmpl, err := e.getTemplate(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}

	result, err := tmpl.Exec(data)
	if err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return result, nil
}

// getTemplate gets a compiled template from cache or compiles it
func (e *Engine) getTemplate(templateStr string) (*raymond.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.cache[templateStr]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if tmpl, ok := e.cache[templateStr]; ok {
		return tmpl, nil
	}

	tmpl, err := raymond.Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	// Helpers are bound per template; raymond's global registry panics on re-registration
	tmpl.RegisterHelpers(e.helpers)

	e.cache[templateStr] = tmpl

	return tmpl, nil
}

// ValidateTemplate validates a template without rendering it
func (e *Engine) ValidateTemplate(templateStr string) error {
	_, err := raymond.Parse(templateStr)
	return err
}

// ClearCache clears the compiled template cache
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*raymond.Template)
}

func helpers() map[string]interface{} {
	return map[string]interface{}{
		"uppercase": func(str string) string {
			return strings.ToUpper(str)
		},
		"lowercase": func(str string) string {
			return strings.ToLower(str)
		},
		"default": func(value interface{}, defaultValue interface{}) interface{} {
			if value == nil || value == "" {
				return defaultValue
			}
			return value
		},
		"join": func(list interface{}, sep string) string {
			return strings.Join(toStrings(list), sep)
		},
		"len": func(value interface{}) int {
			switch v := value.(type) {
			case string:
				return len(v)
			case []string:
				return len(v)
			case []interface{}:
				return len(v)
			case map[string]interface{}:
				return len(v)
			case map[string]string:
				return len(v)
			default:
				return 0
			}
		},
		"price": func(value interface{}) string {
			switch v := value.(type) {
			case int:
				return formatThousands(int64(v))
			case int64:
				return formatThousands(v)
			case float64:
				return formatThousands(int64(v))
			default:
				return fmt.Sprint(value)
			}
		},
	}
}

func toStrings(list interface{}) []string {
	switch v := list.(type) {
	case []string:
		return v
	case []interface{}:
		strs := make([]string, len(v))
		for i, item := range v {
			strs[i] = fmt.Sprint(item)
		}
		return strs
	case nil:
		return nil
	default:
		return []string{fmt.Sprint(v)}
	}
}

// formatThousands renders n with comma separators, e.g. 200000 -> "200,000"
func formatThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}
