package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/content"
)

// serviceMetaQuestions appear in edit_submission manifests but describe the
// service record itself, not supplier-entered data; they are excluded from
// emitted schemas.
var serviceMetaQuestions = map[string]bool{"id": true, "lot": true, "lotName": true}

var priceUnits = []string{
	"Unit", "Person", "Licence", "User", "Device", "Instance", "Server",
	"Virtual machine", "Transaction", "Megabyte", "Gigabyte", "Terabyte",
}

var priceIntervals = []string{
	"Second", "Minute", "Hour", "Day", "Week", "Month", "Quarter", "6 months", "Year",
}

// Emit produces the JSON-Schema document describing every legal service
// submission for the builder's (already lot-filtered) content. Output is
// deterministic: sorted keys, two-space indent, trailing newline.
func Emit(builder *content.Builder, title string) ([]byte, error) {
	doc := map[string]any{
		"title":                title + " Service Schema",
		"$schema":              "http://json-schema.org/schema#",
		"type":                 "object",
		"additionalProperties": false,
	}

	properties := map[string]any{}
	required := []string{}
	anyOf := map[string]map[string]any{}
	dependencies := map[string]any{}

	for _, q := range builder.Questions() {
		if serviceMetaQuestions[q.ID] {
			continue
		}
		props, err := questionProperties(q)
		if err != nil {
			return nil, err
		}
		for name, schema := range props {
			properties[name] = schema
		}
		required = append(required, q.RequiredFormFields()...)

		if q.Type != content.TypeMultiquestion {
			continue
		}
		formFields := q.FormFields()
		if q.AnyOf != "" {
			fields := append([]string(nil), formFields...)
			sort.Strings(fields)
			anyOf[q.ID] = map[string]any{
				"title":    q.AnyOf,
				"required": fields,
			}
		}
		if len(formFields) > 1 {
			for _, field := range formFields {
				dependencies[field] = siblingsOf(field, formFields)
			}
		}
	}

	sort.Strings(required)
	doc["properties"] = properties
	doc["required"] = required

	if len(anyOf) > 0 {
		ids := make([]string, 0, len(anyOf))
		for id := range anyOf {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		entries := make([]map[string]any, len(ids))
		for i, id := range ids {
			entries[i] = anyOf[id]
		}
		doc["anyOf"] = entries
	}
	if len(dependencies) > 0 {
		doc["dependencies"] = dependencies
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func siblingsOf(field string, all []string) []string {
	siblings := make([]string, 0, len(all)-1)
	for _, other := range all {
		if other != field {
			siblings = append(siblings, other)
		}
	}
	sort.Strings(siblings)
	return siblings
}

// questionProperties dispatches on the question type, then wraps each
// generated value schema in the assurance envelope when the question names
// an assurance approach.
func questionProperties(q *content.Question) (map[string]any, error) {
	var props map[string]any
	switch q.Type {
	case content.TypeText, content.TypeTextboxLarge:
		props = map[string]any{q.ID: textProperty(q)}
	case content.TypeUpload:
		props = map[string]any{q.ID: map[string]any{"type": "string", "format": "uri"}}
	case content.TypeCheckboxes:
		props = map[string]any{q.ID: checkboxProperty(q)}
	case content.TypeRadios:
		props = map[string]any{q.ID: map[string]any{"enum": optionLabels(q)}}
	case content.TypeBoolean:
		props = map[string]any{q.ID: map[string]any{"type": "boolean"}}
	case content.TypeList:
		props = map[string]any{q.ID: listProperty(q)}
	case content.TypePricing:
		props = pricingProperties(q)
	case content.TypePercentage:
		props = map[string]any{q.ID: map[string]any{
			"type":             "number",
			"minimum":          0,
			"maximum":          100,
			"exclusiveMaximum": true,
		}}
	case content.TypeMultiquestion:
		props = map[string]any{}
		for _, nested := range q.Questions {
			nestedProps, err := questionProperties(nested)
			if err != nil {
				return nil, err
			}
			for name, schema := range nestedProps {
				props[name] = schema
			}
		}
		return props, nil
	default:
		return nil, fmt.Errorf("no schema generation for question type %q", q.Type)
	}

	if q.AssuranceApproach != "" {
		if _, ok := assuranceOptions[q.AssuranceApproach]; !ok {
			return nil, fmt.Errorf("question %q: unknown assurance approach %q", q.ID, q.AssuranceApproach)
		}
		for name, schema := range props {
			props[name] = wrapAssurance(schema.(map[string]any), q.AssuranceApproach)
		}
	}
	return props, nil
}

func textProperty(q *content.Question) map[string]any {
	minLength := 1
	if q.Optional {
		minLength = 0
	}
	prop := map[string]any{
		"type":      "string",
		"minLength": minLength,
	}
	if limit, ok := q.CharacterLimit(); ok {
		prop["maxLength"] = limit
	}
	if words, ok := q.WordLimit(); ok {
		pattern := fmt.Sprintf(`^(?:\S+\s+){0,%d}\S+$`, words-1)
		if q.Optional {
			pattern = `^$|(` + pattern + `)`
		}
		prop["pattern"] = pattern
	}
	return prop
}

func checkboxProperty(q *content.Question) map[string]any {
	minItems := 1
	if q.Optional {
		minItems = 0
	}
	return map[string]any{
		"type":        "array",
		"uniqueItems": true,
		"minItems":    minItems,
		"maxItems":    len(q.Options),
		"items":       map[string]any{"enum": optionLabels(q)},
	}
}

func listProperty(q *content.Question) map[string]any {
	minItems := 1
	if q.Optional {
		minItems = 0
	}
	return map[string]any{
		"type":     "array",
		"minItems": minItems,
		"maxItems": 10,
		"items": map[string]any{
			"type":      "string",
			"maxLength": 100,
			"pattern":   `^(?:\S+\s+){0,9}\S+$`,
		},
	}
}

func pricingProperties(q *content.Question) map[string]any {
	optional := q.OptionalFieldSet()
	props := map[string]any{}

	if name, ok := q.Fields["minimum_price"]; ok {
		props[name] = priceString(optional["minimum_price"])
	}
	if name, ok := q.Fields["maximum_price"]; ok {
		props[name] = priceString(optional["maximum_price"])
	}
	if name, ok := q.Fields["price_unit"]; ok {
		props[name] = enumProperty(priceUnits, optional["price_unit"])
	}
	if name, ok := q.Fields["price_interval"]; ok {
		props[name] = enumProperty(priceIntervals, optional["price_interval"])
	}
	return props
}

func priceString(optional bool) map[string]any {
	pattern := `^\d+(?:\.\d{1,5})?$`
	if optional {
		pattern = `^$|` + pattern
	}
	return map[string]any{
		"type":    "string",
		"pattern": pattern,
	}
}

func enumProperty(values []string, optional bool) map[string]any {
	enum := append([]string(nil), values...)
	if optional {
		enum = append([]string{""}, enum...)
	}
	return map[string]any{"enum": enum}
}

func optionLabels(q *content.Question) []string {
	labels := make([]string, len(q.Options))
	for i, o := range q.Options {
		labels[i] = o.Label
	}
	return labels
}
