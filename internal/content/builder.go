package content

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Manifest is an ordered list of sections naming a traversal order for a
// question set. It is referenced by (framework, manifest name).
type Manifest struct {
	Framework   string
	Name        string
	QuestionSet string
	Sections    []*Section
}

func (m *Manifest) copy() *Manifest {
	dup := &Manifest{
		Framework:   m.Framework,
		Name:        m.Name,
		QuestionSet: m.QuestionSet,
		Sections:    make([]*Section, len(m.Sections)),
	}
	for i, s := range m.Sections {
		dup.Sections[i] = s.copy()
	}
	return dup
}

// Builder is a filtered, ordered view over a manifest. Validators, the schema
// emitter and the rendering layer all traverse content through it.
type Builder struct {
	manifest *Manifest
}

// NewBuilder wraps a manifest. The builder does not mutate it; Filter works
// on copies.
func NewBuilder(m *Manifest) *Builder {
	return &Builder{manifest: m}
}

// Filter returns a new builder containing only sections and questions whose
// depends_on predicates are satisfied. Filtering is stable and idempotent.
func (b *Builder) Filter(criteria map[string]string) *Builder {
	filtered := &Manifest{
		Framework:   b.manifest.Framework,
		Name:        b.manifest.Name,
		QuestionSet: b.manifest.QuestionSet,
	}
	for _, s := range b.manifest.Sections {
		if kept := s.filter(criteria); kept != nil {
			filtered.Sections = append(filtered.Sections, kept)
		}
	}
	return &Builder{manifest: filtered}
}

// Sections returns the ordered sections of the (possibly filtered) manifest.
func (b *Builder) Sections() []*Section {
	return b.manifest.Sections
}

// Section returns a section by slug.
func (b *Builder) Section(slug string) (*Section, error) {
	for _, s := range b.manifest.Sections {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, fmt.Errorf("section %q: %w", slug, ErrContentNotFound)
}

// GetQuestion returns the question with the given id, searching nested
// multiquestion children.
func (b *Builder) GetQuestion(id string) (*Question, error) {
	for _, s := range b.manifest.Sections {
		if q, ok := s.Question(id); ok {
			return q, nil
		}
	}
	return nil, fmt.Errorf("question %q: %w", id, ErrQuestionNotFound)
}

// NextEditableSectionSlug returns the slug of the next section after current
// whose editable flag is set. An empty current returns the first editable
// section. The boolean is false when no such section exists.
func (b *Builder) NextEditableSectionSlug(current string) (string, bool) {
	seen := current == ""
	for _, s := range b.manifest.Sections {
		if seen && s.Editable {
			return s.Slug, true
		}
		if s.Slug == current {
			seen = true
		}
	}
	return "", false
}

// AllFields returns every answer field name in traversal order.
func (b *Builder) AllFields() []string {
	var fields []string
	for _, s := range b.manifest.Sections {
		fields = append(fields, s.QuestionIDs()...)
	}
	return fields
}

// Questions returns the ordered top-level questions across all sections.
func (b *Builder) Questions() []*Question {
	var questions []*Question
	for _, s := range b.manifest.Sections {
		questions = append(questions, s.Questions...)
	}
	return questions
}

// AllData collects answers from a flat form-encoded mapping, normalising
// list-typed questions to ordered sequences and typed questions to their
// primitive values. Empty values are treated as absent.
func (b *Builder) AllData(form url.Values) map[string]any {
	data := make(map[string]any)
	for _, s := range b.manifest.Sections {
		for _, q := range s.Questions {
			collectFormData(q, form, data)
		}
	}
	return data
}

func collectFormData(q *Question, form url.Values, data map[string]any) {
	switch q.Type {
	case TypeMultiquestion:
		for _, nested := range q.Questions {
			collectFormData(nested, form, data)
		}
	case TypeCheckboxes, TypeList:
		if values, ok := form[q.ID]; ok && len(values) > 0 {
			data[q.ID] = append([]string(nil), values...)
		}
	case TypeBoolean:
		switch strings.ToLower(form.Get(q.ID)) {
		case "true", "yes":
			data[q.ID] = true
		case "false", "no":
			data[q.ID] = false
		}
	case TypePercentage:
		if raw := form.Get(q.ID); raw != "" {
			if n, err := strconv.ParseFloat(raw, 64); err == nil {
				data[q.ID] = n
			} else {
				data[q.ID] = raw
			}
		}
	case TypePricing:
		for _, field := range q.FormFields() {
			if v := form.Get(field); v != "" {
				data[field] = v
			}
		}
	default:
		if v := form.Get(q.ID); v != "" {
			data[q.ID] = v
		}
	}
}
