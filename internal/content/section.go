package content

import (
	"regexp"
	"strings"
)

// Section groups questions rendered together on one page of a form.
type Section struct {
	Slug        string
	Name        string
	Description string
	Editable    bool
	Questions   []*Question
	DependsOn   []Condition
}

// QuestionIDs returns the ordered, post-expansion answer field names this
// section contributes: pricing questions expand into their sub-field names
// and multiquestions into the union of nested field names.
func (s *Section) QuestionIDs() []string {
	var ids []string
	for _, q := range s.Questions {
		ids = append(ids, q.FormFields()...)
	}
	return ids
}

// Question finds a question by id, searching one level of nesting.
func (s *Section) Question(id string) (*Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
		for _, nested := range q.Questions {
			if nested.ID == id {
				return nested, true
			}
		}
	}
	return nil, false
}

// filter returns a copy narrowed to the given criteria, or nil when the
// section itself is filtered out. Question order is preserved.
func (s *Section) filter(criteria map[string]string) *Section {
	for _, cond := range s.DependsOn {
		if !cond.matches(criteria) {
			return nil
		}
	}
	dup := s.copyShallow()
	for _, q := range s.Questions {
		if q.matches(criteria) {
			dup.Questions = append(dup.Questions, q.copy())
		}
	}
	if len(dup.Questions) == 0 {
		return nil
	}
	return dup
}

func (s *Section) copyShallow() *Section {
	return &Section{
		Slug:        s.Slug,
		Name:        s.Name,
		Description: s.Description,
		Editable:    s.Editable,
		DependsOn:   copyConditions(s.DependsOn),
	}
}

func (s *Section) copy() *Section {
	dup := s.copyShallow()
	dup.Questions = make([]*Question, len(s.Questions))
	for i, q := range s.Questions {
		dup.Questions[i] = q.copy()
	}
	return dup
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a section slug from its display name.
func Slugify(name string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
