package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader materialises framework content from a directory tree laid out as
// <root>/<framework-slug>/{questions,manifests,messages,metadata}. A single
// loader is built at startup and treated as immutable; requests work on deep
// copies produced by Copy.
type Loader struct {
	root       string
	frameworks map[string]*frameworkContent
}

type frameworkContent struct {
	manifests map[string]*Manifest
	lazy      map[string]*lazyManifest
	messages  map[string]map[string]any
	metadata  map[string]map[string]any
}

// lazyManifest memoises a manifest parse. The pointer is shared between the
// master loader and every request copy, so the disk parse happens once per
// process; each copy then materialises its own deep copy of the result.
type lazyManifest struct {
	once     sync.Once
	load     func() (*Manifest, error)
	manifest *Manifest
	err      error
}

func (lm *lazyManifest) force() (*Manifest, error) {
	lm.once.Do(func() {
		lm.manifest, lm.err = lm.load()
	})
	return lm.manifest, lm.err
}

func NewLoader(root string) *Loader {
	return &Loader{
		root:       root,
		frameworks: make(map[string]*frameworkContent),
	}
}

func (l *Loader) framework(slug string) *frameworkContent {
	fw, ok := l.frameworks[slug]
	if !ok {
		fw = &frameworkContent{
			manifests: make(map[string]*Manifest),
			lazy:      make(map[string]*lazyManifest),
			messages:  make(map[string]map[string]any),
			metadata:  make(map[string]map[string]any),
		}
		l.frameworks[slug] = fw
	}
	return fw
}

// LoadManifest eagerly builds the named manifest, resolving every referenced
// question file. Malformed content surfaces here as a LoadError rather than
// at request time.
func (l *Loader) LoadManifest(framework, questionSet, manifest string) error {
	fw := l.framework(framework)
	if len(fw.lazy) > 0 {
		return fmt.Errorf("framework %q already has lazily registered manifests", framework)
	}
	m, err := l.parseManifest(framework, questionSet, manifest)
	if err != nil {
		return err
	}
	fw.manifests[manifest] = m
	return nil
}

// LazyLoadManifests registers manifest -> question-set thunks whose first
// read materialises the manifest. It cannot be combined with eager
// LoadManifest calls on the same framework.
func (l *Loader) LazyLoadManifests(framework string, manifests map[string]string) error {
	fw := l.framework(framework)
	if len(fw.manifests) > 0 {
		return fmt.Errorf("framework %q already has eagerly loaded manifests", framework)
	}
	if _, err := os.Stat(filepath.Join(l.root, framework)); err != nil {
		return fmt.Errorf("framework %q: %w", framework, ErrContentNotFound)
	}
	for manifest, questionSet := range manifests {
		manifest, questionSet := manifest, questionSet
		fw.lazy[manifest] = &lazyManifest{
			load: func() (*Manifest, error) {
				return l.parseManifest(framework, questionSet, manifest)
			},
		}
	}
	return nil
}

// LoadMessages loads freeform string dictionaries used by the UI layer.
func (l *Loader) LoadMessages(framework string, names []string) error {
	fw := l.framework(framework)
	for _, name := range names {
		doc, err := l.parseDocument(framework, "messages", name)
		if err != nil {
			return err
		}
		fw.messages[name] = doc
	}
	return nil
}

// LoadMetadata loads structured metadata documents for key lookup.
func (l *Loader) LoadMetadata(framework string, names []string) error {
	fw := l.framework(framework)
	for _, name := range names {
		doc, err := l.parseDocument(framework, "metadata", name)
		if err != nil {
			return err
		}
		fw.metadata[name] = doc
	}
	return nil
}

// GetBuilder returns a builder over the named manifest, materialising a lazy
// manifest into this loader's copy on first touch.
func (l *Loader) GetBuilder(framework, manifest string) (*Builder, error) {
	fw, ok := l.frameworks[framework]
	if !ok {
		return nil, fmt.Errorf("framework %q: %w", framework, ErrContentNotFound)
	}
	if m, ok := fw.manifests[manifest]; ok {
		return NewBuilder(m), nil
	}
	if lm, ok := fw.lazy[manifest]; ok {
		master, err := lm.force()
		if err != nil {
			return nil, err
		}
		m := master.copy()
		fw.manifests[manifest] = m
		return NewBuilder(m), nil
	}
	return nil, fmt.Errorf("manifest %q for framework %q: %w", manifest, framework, ErrContentNotFound)
}

// GetMessage looks up a key in a loaded message dictionary.
func (l *Loader) GetMessage(framework, name, key string) (any, error) {
	fw, ok := l.frameworks[framework]
	if !ok {
		return nil, fmt.Errorf("framework %q: %w", framework, ErrContentNotFound)
	}
	doc, ok := fw.messages[name]
	if !ok {
		return nil, fmt.Errorf("messages %q for framework %q: %w", name, framework, ErrContentNotFound)
	}
	return doc[key], nil
}

// GetMetadata returns the value under key in a loaded metadata document, nil
// when the document exists but the key is absent, and ErrContentNotFound when
// the framework has no metadata of that name.
func (l *Loader) GetMetadata(framework, name, key string) (any, error) {
	fw, ok := l.frameworks[framework]
	if !ok {
		return nil, fmt.Errorf("framework %q: %w", framework, ErrContentNotFound)
	}
	doc, ok := fw.metadata[name]
	if !ok {
		return nil, fmt.Errorf("metadata %q for framework %q: %w", name, framework, ErrContentNotFound)
	}
	return doc[key], nil
}

// Frameworks lists the framework slugs with registered content.
func (l *Loader) Frameworks() []string {
	slugs := make([]string, 0, len(l.frameworks))
	for slug := range l.frameworks {
		slugs = append(slugs, slug)
	}
	return slugs
}

// Copy returns an independent deep copy. Materialised manifests, messages and
// metadata are copied; lazy thunks are shared unforced, so an unused manifest
// stays unparsed across requests and a forced one is parsed once process-wide.
func (l *Loader) Copy() *Loader {
	dup := NewLoader(l.root)
	for slug, fw := range l.frameworks {
		dupFw := dup.framework(slug)
		for name, m := range fw.manifests {
			dupFw.manifests[name] = m.copy()
		}
		for name, lm := range fw.lazy {
			dupFw.lazy[name] = lm
		}
		for name, doc := range fw.messages {
			dupFw.messages[name] = copyDocument(doc)
		}
		for name, doc := range fw.metadata {
			dupFw.metadata[name] = copyDocument(doc)
		}
	}
	return dup
}

func copyDocument(doc map[string]any) map[string]any {
	dup := make(map[string]any, len(doc))
	for k, v := range doc {
		dup[k] = copyValue(v)
	}
	return dup
}

func copyValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return copyDocument(tv)
	case []any:
		dup := make([]any, len(tv))
		for i, item := range tv {
			dup[i] = copyValue(item)
		}
		return dup
	default:
		return v
	}
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

type sectionDoc struct {
	Name        string      `yaml:"name"`
	Slug        string      `yaml:"slug"`
	Description string      `yaml:"description"`
	Editable    bool        `yaml:"editable"`
	Questions   []string    `yaml:"questions"`
	DependsOn   []Condition `yaml:"depends_on"`
}

type questionDoc struct {
	Question          string            `yaml:"question"`
	Type              string            `yaml:"type"`
	Hint              string            `yaml:"hint"`
	Number            int               `yaml:"number"`
	Optional          bool              `yaml:"optional"`
	Options           []Option          `yaml:"options"`
	Validations       []Validation      `yaml:"validations"`
	MaxLength         int               `yaml:"max_length"`
	MaxLengthInWords  int               `yaml:"max_length_in_words"`
	Fields            map[string]string `yaml:"fields"`
	OptionalFields    []string          `yaml:"optional_fields"`
	Questions         []string          `yaml:"questions"`
	AnyOf             string            `yaml:"any_of"`
	AssuranceApproach string            `yaml:"assuranceApproach"`
	DependsOn         []Condition       `yaml:"depends_on"`
}

func (l *Loader) parseManifest(framework, questionSet, manifest string) (*Manifest, error) {
	path := filepath.Join(l.root, framework, "manifests", manifest+".yml")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("manifest %q for framework %q: %w", manifest, framework, ErrContentNotFound)
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	var docs []sectionDoc
	if err := yaml.Unmarshal(raw, &docs); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	m := &Manifest{Framework: framework, Name: manifest, QuestionSet: questionSet}
	for _, doc := range docs {
		section := &Section{
			Slug:        doc.Slug,
			Name:        doc.Name,
			Description: doc.Description,
			Editable:    doc.Editable,
			DependsOn:   doc.DependsOn,
		}
		if section.Slug == "" {
			section.Slug = Slugify(doc.Name)
		}
		for _, id := range doc.Questions {
			q, err := l.parseQuestion(framework, questionSet, id, false)
			if err != nil {
				return nil, err
			}
			section.Questions = append(section.Questions, q)
		}
		m.Sections = append(m.Sections, section)
	}
	return m, nil
}

func (l *Loader) parseQuestion(framework, questionSet, id string, nested bool) (*Question, error) {
	path := filepath.Join(l.root, framework, "questions", questionSet, id+".yml")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if nested {
				// A dangling nested reference is a content defect,
				// not a missing document.
				return nil, &LoadError{Path: path, Err: ErrContentNotFound}
			}
			return nil, fmt.Errorf("question %q in set %q for framework %q: %w",
				id, questionSet, framework, ErrContentNotFound)
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	var doc questionDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	qt, err := ParseQuestionType(doc.Type)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	q := &Question{
		ID:                id,
		Type:              qt,
		Label:             doc.Question,
		Hint:              doc.Hint,
		Number:            doc.Number,
		Optional:          doc.Optional,
		Options:           doc.Options,
		Validations:       doc.Validations,
		MaxLength:         doc.MaxLength,
		MaxLengthInWords:  doc.MaxLengthInWords,
		Fields:            doc.Fields,
		OptionalFields:    doc.OptionalFields,
		AnyOf:             doc.AnyOf,
		AssuranceApproach: doc.AssuranceApproach,
		DependsOn:         doc.DependsOn,
	}

	if qt == TypeMultiquestion {
		for _, nestedID := range doc.Questions {
			nestedQ, err := l.parseQuestion(framework, questionSet, nestedID, true)
			if err != nil {
				return nil, err
			}
			if nestedQ.Type == TypeMultiquestion {
				return nil, &LoadError{Path: path, Err: fmt.Errorf("multiquestion %q nests multiquestion %q", id, nestedID)}
			}
			q.Questions = append(q.Questions, nestedQ)
		}
	}
	return q, nil
}

func (l *Loader) parseDocument(framework, kind, name string) (map[string]any, error) {
	path := filepath.Join(l.root, framework, kind, name+".yml")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s %q for framework %q: %w", kind, name, framework, ErrContentNotFound)
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return doc, nil
}
