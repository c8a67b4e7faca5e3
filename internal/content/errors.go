package content

import (
	"errors"
	"fmt"
)

// Sentinel errors for content lookup facts. The loader and builder return
// these (optionally wrapped) so the transport layer can translate them into
// HTTP responses without inspecting messages.
var (
	// ErrContentNotFound means a framework, manifest, question file,
	// message or metadata document does not exist.
	ErrContentNotFound = errors.New("content not found")

	// ErrQuestionNotFound means a question id was looked up in a built
	// manifest that does not contain it.
	ErrQuestionNotFound = errors.New("question not found")
)

// LoadError reports a malformed content definition: broken YAML, an unknown
// question type, or a dangling nested-question reference. It is returned at
// load time for eagerly loaded manifests, never at request time.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load content %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
