package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/content"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@.\s]+(\.[^@.\s]+)+$`)

// Ruleset is the per-framework policy layered over the shared validation
// algorithm. Framework slug selects a rule bundle; no validator overrides
// the algorithm itself.
type Ruleset struct {
	CharacterLimit     int
	EmailFields        []string
	NumberStringFields []NumberStringRule
	NumberFields       []NumberRule
	OptionalFields     []string
	Discretionary      []DependencyRule
}

// NumberStringRule requires a string of exactly Digits decimal digits.
type NumberStringRule struct {
	Field  string
	Digits int
}

// NumberRule requires a numeric answer within [Min, Max]. A trailing percent
// sign on string answers is tolerated.
type NumberRule struct {
	Field    string
	Min, Max float64
}

// DependencyRule inspects the answers and marks additional fields required
// via the supplied callback. Rules only ever add requirements, so the
// required set is monotone in its trigger answers.
type DependencyRule func(a Answers, require func(fields ...string))

// Validator holds a filtered content view and a partial answer map and
// computes the complete error map for a declaration or submission.
type Validator struct {
	content *content.Builder
	answers Answers
	rules   Ruleset
}

func New(rules Ruleset, builder *content.Builder, answers Answers) *Validator {
	return &Validator{content: builder, answers: answers, rules: rules}
}

// Errors returns the full error map, ordered by field declaration order in
// the filtered manifest. The result is deterministic for fixed inputs.
func (v *Validator) Errors() *ErrorMap {
	raw := make(map[string]Kind)
	v.characterLimitErrors(raw)
	v.wordLimitErrors(raw)
	v.formatErrors(raw)
	v.numberErrors(raw)
	v.answerRequiredErrors(raw)
	v.dependentQuestionErrors(raw)

	errs := NewErrorMap()
	for _, field := range v.content.AllFields() {
		if kind, ok := raw[field]; ok {
			errs.Set(field, kind)
		}
	}
	return errs
}

// ErrorsForSection returns the subset of errors whose fields belong to the
// section, in the section's field order.
func (v *Validator) ErrorsForSection(section *content.Section) *ErrorMap {
	all := v.Errors()
	errs := NewErrorMap()
	for _, field := range section.QuestionIDs() {
		if kind, ok := all.Get(field); ok {
			errs.Set(field, kind)
		}
	}
	return errs
}

// RequiredFields computes the set of fields a complete submission must fill:
// every field in the filtered content, minus the ruleset's static optional
// fields, plus whatever the discretionary-dependency rules demand.
func (v *Validator) RequiredFields() map[string]bool {
	required := make(map[string]bool)
	for _, field := range v.content.AllFields() {
		required[field] = true
	}
	for _, field := range v.rules.OptionalFields {
		delete(required, field)
	}
	require := func(fields ...string) {
		for _, field := range fields {
			required[field] = true
		}
	}
	for _, rule := range v.rules.Discretionary {
		rule(v.answers, require)
	}
	return required
}

func (v *Validator) answerRequiredErrors(raw map[string]Kind) {
	for field := range v.RequiredFields() {
		if !v.answers.Present(field) {
			raw[field] = AnswerRequired
		}
	}
}

func (v *Validator) characterLimitErrors(raw map[string]Kind) {
	if v.rules.CharacterLimit <= 0 {
		return
	}
	for _, field := range v.content.AllFields() {
		q, err := v.content.GetQuestion(field)
		if err != nil {
			continue
		}
		if q.Type != content.TypeText && q.Type != content.TypeTextboxLarge {
			continue
		}
		if len(v.answers.String(field)) > v.rules.CharacterLimit {
			raw[field] = UnderCharacterLimit
		}
	}
}

func (v *Validator) wordLimitErrors(raw map[string]Kind) {
	for _, field := range v.content.AllFields() {
		q, err := v.content.GetQuestion(field)
		if err != nil {
			continue
		}
		limit, ok := q.WordLimit()
		if !ok {
			continue
		}
		if len(strings.Fields(v.answers.String(field))) > limit {
			raw[field] = UnderWordLimit
		}
	}
}

func (v *Validator) formatErrors(raw map[string]Kind) {
	for _, field := range v.rules.EmailFields {
		if !emailRe.MatchString(v.answers.String(field)) {
			raw[field] = InvalidFormat
		}
	}
	for _, rule := range v.rules.NumberStringFields {
		answer := v.answers.String(rule.Field)
		if len(answer) != rule.Digits || !allDigits(answer) {
			raw[rule.Field] = InvalidFormat
		}
	}
}

func (v *Validator) numberErrors(raw map[string]Kind) {
	for _, rule := range v.rules.NumberFields {
		if !v.answers.Present(rule.Field) {
			continue
		}
		n, ok := numericValue(v.answers[rule.Field])
		if !ok || n < rule.Min || n > rule.Max {
			raw[rule.Field] = NotANumber
		}
	}
}

// dependentQuestionErrors covers multiquestions carrying an any_of label.
// When every nested field is answered but none affirmatively (all answers
// match options flagged negative), each nested field gets a
// dependent_question_error; it supersedes any answer_required already
// recorded. A missing nested answer degrades to plain answer_required.
func (v *Validator) dependentQuestionErrors(raw map[string]Kind) {
	for _, q := range v.content.Questions() {
		if q.Type != content.TypeMultiquestion || q.AnyOf == "" {
			continue
		}
		allAnswered := true
		anyAffirmative := false
		for _, nested := range q.Questions {
			for _, field := range nested.FormFields() {
				if !v.answers.Present(field) {
					allAnswered = false
					continue
				}
				if isAffirmative(nested, v.answers.String(field)) {
					anyAffirmative = true
				}
			}
		}
		if !allAnswered || anyAffirmative {
			continue
		}
		for _, nested := range q.Questions {
			for _, field := range nested.FormFields() {
				raw[field] = DependentQuestionError
			}
		}
	}
}

func isAffirmative(q *content.Question, value string) bool {
	if value == "" {
		return false
	}
	if opt, ok := q.OptionFor(value); ok {
		return !opt.Negative
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func numericValue(v any) (float64, bool) {
	switch tv := v.(type) {
	case int:
		return float64(tv), true
	case float64:
		return tv, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(tv), "%"), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Message is a rendered error for display against one input.
type Message struct {
	InputName string
	Question  string
	Message   string
}

// ErrorMessages resolves every error to a human message using the question's
// validations list, in declaration order.
func (v *Validator) ErrorMessages() []Message {
	return v.MessagesFor(v.Errors())
}

// MessagesFor renders an already-computed error map, preserving its order.
// Section handlers use it with ErrorsForSection.
func (v *Validator) MessagesFor(errs *ErrorMap) []Message {
	var out []Message
	for _, field := range errs.Fields() {
		kind, _ := errs.Get(field)
		out = append(out, Message{
			InputName: field,
			Question:  v.questionLabel(field),
			Message:   v.ResolveMessage(field, kind),
		})
	}
	return out
}

// ResolveMessage walks the question's validations and returns the first
// message whose name matches the error kind, falling back to a per-kind
// default.
func (v *Validator) ResolveMessage(field string, kind Kind) string {
	if q, err := v.content.GetQuestion(field); err == nil {
		for _, rule := range q.Validations {
			if rule.Name == string(kind) {
				return rule.Message
			}
		}
	}
	if kind == AnswerRequired {
		return "Answer required"
	}
	return "There was a problem with the answer to this question"
}

func (v *Validator) questionLabel(field string) string {
	q, err := v.content.GetQuestion(field)
	if err != nil {
		return field
	}
	if q.Number > 0 {
		return fmt.Sprintf("Question %d", q.Number)
	}
	return q.Label
}
