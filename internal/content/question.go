package content

import (
	"fmt"
	"regexp"
	"strconv"
)

// QuestionType is the closed set of question variants. Schema emission and
// field expansion dispatch on it; adding a type means extending those tables.
type QuestionType string

const (
	TypeText          QuestionType = "text"
	TypeTextboxLarge  QuestionType = "textbox_large"
	TypeUpload        QuestionType = "upload"
	TypeCheckboxes    QuestionType = "checkboxes"
	TypeRadios        QuestionType = "radios"
	TypeBoolean       QuestionType = "boolean"
	TypeList          QuestionType = "list"
	TypePricing       QuestionType = "pricing"
	TypePercentage    QuestionType = "percentage"
	TypeMultiquestion QuestionType = "multiquestion"
)

var questionTypes = map[QuestionType]bool{
	TypeText: true, TypeTextboxLarge: true, TypeUpload: true,
	TypeCheckboxes: true, TypeRadios: true, TypeBoolean: true,
	TypeList: true, TypePricing: true, TypePercentage: true,
	TypeMultiquestion: true,
}

// ParseQuestionType validates a type string from a question definition.
func ParseQuestionType(s string) (QuestionType, error) {
	qt := QuestionType(s)
	if !questionTypes[qt] {
		return "", fmt.Errorf("unknown question type %q", s)
	}
	return qt, nil
}

// Option is one entry of an enumerated question. Negative marks answers that
// decline the question (e.g. "My organisation isn't submitting ... services");
// they do not satisfy a parent multiquestion's any-of requirement.
type Option struct {
	Label    string `yaml:"label"`
	Value    string `yaml:"value"`
	Negative bool   `yaml:"negative"`
}

// CanonicalValue is the value stored in an answer map for this option.
func (o Option) CanonicalValue() string {
	if o.Value != "" {
		return o.Value
	}
	return o.Label
}

// Validation pairs an error kind with the message shown for it.
type Validation struct {
	Name    string `yaml:"name"`
	Message string `yaml:"message"`
}

// Condition is a depends_on predicate: the value supplied for On must be one
// of Being for the question or section to survive filtering.
type Condition struct {
	On    string   `yaml:"on"`
	Being []string `yaml:"being"`
}

func (c Condition) matches(criteria map[string]string) bool {
	v, ok := criteria[c.On]
	if !ok {
		// Unconstrained criteria keep the question; filtering is only
		// ever narrowing.
		return true
	}
	for _, b := range c.Being {
		if b == v {
			return true
		}
	}
	return false
}

// pricingRoles is the canonical sub-field order for pricing questions.
var pricingRoles = []string{"minimum_price", "maximum_price", "price_unit", "price_interval"}

// Question is the central content entity. Nested questions (multiquestion)
// do not nest further.
type Question struct {
	ID                string
	Type              QuestionType
	Label             string
	Hint              string
	Number            int
	Optional          bool
	Options           []Option
	Validations       []Validation
	MaxLength         int
	MaxLengthInWords  int
	Fields            map[string]string // pricing role -> answer field name
	OptionalFields    []string          // pricing roles exempt from required
	Questions         []*Question       // multiquestion children
	AnyOf             string
	AssuranceApproach string
	DependsOn         []Condition
}

// FormFields returns the ordered answer field names this question consumes:
// pricing expands to its sub-field names, multiquestion to the union of its
// children's fields, anything else to just the question id.
func (q *Question) FormFields() []string {
	switch q.Type {
	case TypePricing:
		var fields []string
		for _, role := range pricingRoles {
			if name, ok := q.Fields[role]; ok {
				fields = append(fields, name)
			}
		}
		return fields
	case TypeMultiquestion:
		var fields []string
		for _, nested := range q.Questions {
			fields = append(fields, nested.FormFields()...)
		}
		return fields
	default:
		return []string{q.ID}
	}
}

// RequiredFormFields returns the form fields a complete answer must fill.
// Optional questions require nothing; an any-of multiquestion defers its
// children to the anyOf clause rather than requiring each of them.
func (q *Question) RequiredFormFields() []string {
	if q.Optional {
		return nil
	}
	switch q.Type {
	case TypePricing:
		optional := make(map[string]bool, len(q.OptionalFields))
		for _, role := range q.OptionalFields {
			optional[role] = true
		}
		var fields []string
		for _, role := range pricingRoles {
			if name, ok := q.Fields[role]; ok && !optional[role] {
				fields = append(fields, name)
			}
		}
		return fields
	case TypeMultiquestion:
		if q.AnyOf != "" {
			return nil
		}
		var fields []string
		for _, nested := range q.Questions {
			fields = append(fields, nested.RequiredFormFields()...)
		}
		return fields
	default:
		return []string{q.ID}
	}
}

// OptionalFieldSet reports whether a pricing role is marked optional.
func (q *Question) OptionalFieldSet() map[string]bool {
	set := make(map[string]bool, len(q.OptionalFields))
	for _, role := range q.OptionalFields {
		set[role] = true
	}
	return set
}

var wordLimitRe = regexp.MustCompile(`^under_(\d+)_words$`)
var charLimitRe = regexp.MustCompile(`\d+`)

// WordLimit extracts the word cap from max_length_in_words or an
// under_N_words validation rule.
func (q *Question) WordLimit() (int, bool) {
	if q.MaxLengthInWords > 0 {
		return q.MaxLengthInWords, true
	}
	for _, v := range q.Validations {
		if m := wordLimitRe.FindStringSubmatch(v.Name); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// CharacterLimit extracts the character cap from max_length or the numeric
// prefix of an under_character_limit validation message.
func (q *Question) CharacterLimit() (int, bool) {
	if q.MaxLength > 0 {
		return q.MaxLength, true
	}
	for _, v := range q.Validations {
		if v.Name != "under_character_limit" {
			continue
		}
		if m := charLimitRe.FindString(v.Message); m != "" {
			n, err := strconv.Atoi(m)
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// OptionFor returns the option matching an answer value.
func (q *Question) OptionFor(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.CanonicalValue() == value {
			return o, true
		}
	}
	return Option{}, false
}

func (q *Question) matches(criteria map[string]string) bool {
	for _, cond := range q.DependsOn {
		if !cond.matches(criteria) {
			return false
		}
	}
	return true
}

func (q *Question) copy() *Question {
	dup := *q
	dup.Options = append([]Option(nil), q.Options...)
	dup.Validations = append([]Validation(nil), q.Validations...)
	dup.OptionalFields = append([]string(nil), q.OptionalFields...)
	dup.DependsOn = copyConditions(q.DependsOn)
	if q.Fields != nil {
		dup.Fields = make(map[string]string, len(q.Fields))
		for k, v := range q.Fields {
			dup.Fields[k] = v
		}
	}
	if q.Questions != nil {
		dup.Questions = make([]*Question, len(q.Questions))
		for i, nested := range q.Questions {
			dup.Questions[i] = nested.copy()
		}
	}
	return &dup
}

func copyConditions(conds []Condition) []Condition {
	if conds == nil {
		return nil
	}
	dup := make([]Condition, len(conds))
	for i, c := range conds {
		dup[i] = Condition{On: c.On, Being: append([]string(nil), c.Being...)}
	}
	return dup
}
