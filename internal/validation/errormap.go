package validation

// Kind names a validation failure on a single answer field.
type Kind string

const (
	AnswerRequired         Kind = "answer_required"
	UnderCharacterLimit    Kind = "under_character_limit"
	UnderWordLimit         Kind = "under_word_limit"
	InvalidFormat          Kind = "invalid_format"
	DependentQuestionError Kind = "dependent_question_error"
	NotANumber             Kind = "not_a_number"
)

// ErrorMap is an insertion-ordered mapping from field name to error kind.
// A field carries at most one kind; later Set calls on the same field update
// the kind without changing its position.
type ErrorMap struct {
	fields []string
	kinds  map[string]Kind
}

func NewErrorMap() *ErrorMap {
	return &ErrorMap{kinds: make(map[string]Kind)}
}

func (m *ErrorMap) Set(field string, kind Kind) {
	if _, ok := m.kinds[field]; !ok {
		m.fields = append(m.fields, field)
	}
	m.kinds[field] = kind
}

func (m *ErrorMap) Get(field string) (Kind, bool) {
	kind, ok := m.kinds[field]
	return kind, ok
}

func (m *ErrorMap) Len() int { return len(m.fields) }

// Fields returns field names in insertion order.
func (m *ErrorMap) Fields() []string {
	return append([]string(nil), m.fields...)
}

// AsMap returns an unordered snapshot, convenient for equality checks.
func (m *ErrorMap) AsMap() map[string]Kind {
	out := make(map[string]Kind, len(m.kinds))
	for field, kind := range m.kinds {
		out[field] = kind
	}
	return out
}
