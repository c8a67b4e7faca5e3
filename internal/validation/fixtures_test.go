package validation

import (
	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/content"
)

// Helpers building declaration content in memory. Handlers load the real
// frameworks checkout; these tests only need the question shapes the
// validator inspects.

func textQ(id string) *content.Question {
	return &content.Question{ID: id, Type: content.TypeText, Label: id}
}

func textboxQ(id string, words int) *content.Question {
	return &content.Question{ID: id, Type: content.TypeTextboxLarge, Label: id, MaxLengthInWords: words}
}

func boolQ(id string) *content.Question {
	return &content.Question{ID: id, Type: content.TypeBoolean, Label: id}
}

func checkboxQ(id string) *content.Question {
	return &content.Question{ID: id, Type: content.TypeCheckboxes, Label: id}
}

func radioQ(id string, options ...content.Option) *content.Question {
	return &content.Question{ID: id, Type: content.TypeRadios, Label: id, Options: options}
}

func declarationContent(questions ...*content.Question) *content.Builder {
	return content.NewBuilder(&content.Manifest{
		Name:        "declaration",
		QuestionSet: "declaration",
		Sections: []*content.Section{{
			Slug:      "declaration",
			Name:      "Declaration",
			Editable:  true,
			Questions: questions,
		}},
	})
}

func cloneAnswers(a Answers) Answers {
	dup := make(Answers, len(a))
	for k, v := range a {
		dup[k] = v
	}
	return dup
}
