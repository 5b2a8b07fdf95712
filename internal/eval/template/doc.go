// Package template provides a Handlebars template engine for rendering filter reports.
//
// The engine supports Handlebars syntax with custom helpers for common operations.
//
// Example usage:
//
//	engine := template.NewEngine()
//
//	data := map[string]interface{}{
//	    "spec":    "is-new",
//	    "matched": []string{"피카츄", "꼬북이"},
//	    "total":   4,
//	}
//
//	result, err := engine.Render("{{spec}}: {{len matched}}/{{total}} ({{join matched \", \"}})", data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Output: is-new: 2/4 (피카츄, 꼬북이)
//
// Built-in helpers:
//   - uppercase - Convert string to uppercase
//   - lowercase - Convert string to lowercase
//   - default - Return default value if first arg is empty
//   - join - Join list elements with separator
//   - len - Get length of list/string/map
//   - price - Format an integer with thousands separators
package template
