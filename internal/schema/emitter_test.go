package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/content"
)

type EmitterSuite struct {
	suite.Suite
}

func TestEmitterSuite(t *testing.T) {
	suite.Run(t, new(EmitterSuite))
}

func (s *EmitterSuite) emit(questions ...*content.Question) map[string]any {
	builder := content.NewBuilder(&content.Manifest{
		Name: "edit_submission",
		Sections: []*content.Section{{
			Slug:      "section",
			Name:      "Section",
			Editable:  true,
			Questions: questions,
		}},
	})

	raw, err := Emit(builder, "G-Cloud 9 Cloud hosting")
	s.Require().NoError(err)

	var doc map[string]any
	s.Require().NoError(json.Unmarshal(raw, &doc))
	return doc
}

func (s *EmitterSuite) TestDocumentEnvelope() {
	doc := s.emit(&content.Question{ID: "serviceName", Type: content.TypeText})

	s.Equal("G-Cloud 9 Cloud hosting Service Schema", doc["title"])
	s.Equal("http://json-schema.org/schema#", doc["$schema"])
	s.Equal("object", doc["type"])
	s.Equal(false, doc["additionalProperties"])
	s.Equal([]any{"serviceName"}, doc["required"])
}

func (s *EmitterSuite) TestOutputFormat() {
	builder := content.NewBuilder(&content.Manifest{
		Name: "edit_submission",
		Sections: []*content.Section{{
			Slug:     "section",
			Name:     "Section",
			Editable: true,
			Questions: []*content.Question{
				{ID: "b", Type: content.TypeText},
				{ID: "a", Type: content.TypeText},
			},
		}},
	})

	raw, err := Emit(builder, "Sorted")
	s.Require().NoError(err)

	text := string(raw)
	s.True(strings.HasSuffix(text, "\n"), "document ends with a newline")
	s.Contains(text, "  \"$schema\"", "two-space indent")
	s.Less(strings.Index(text, `"$schema"`), strings.Index(text, `"title"`), "keys sorted")
	s.Less(strings.Index(text, `"a",`), strings.Index(text, `"b"`), "required list sorted")
	s.NotContains(text, `<`, "HTML escaping disabled")
}

func (s *EmitterSuite) TestServiceMetaQuestionsAreSkipped() {
	doc := s.emit(
		&content.Question{ID: "id", Type: content.TypeText},
		&content.Question{ID: "lot", Type: content.TypeText},
		&content.Question{ID: "lotName", Type: content.TypeText},
		&content.Question{ID: "serviceName", Type: content.TypeText},
	)

	properties := doc["properties"].(map[string]any)
	s.Len(properties, 1)
	s.Contains(properties, "serviceName")
	s.Equal([]any{"serviceName"}, doc["required"])
}

func (s *EmitterSuite) TestTextProperties() {
	s.Run("required text with limits", func() {
		doc := s.emit(&content.Question{
			ID:               "summary",
			Type:             content.TypeTextboxLarge,
			MaxLength:        500,
			MaxLengthInWords: 50,
		})
		prop := doc["properties"].(map[string]any)["summary"].(map[string]any)

		s.Equal("string", prop["type"])
		s.Equal(float64(1), prop["minLength"])
		s.Equal(float64(500), prop["maxLength"])
		s.Equal(`^(?:\S+\s+){0,49}\S+$`, prop["pattern"])
	})

	s.Run("optional text allows the empty string", func() {
		doc := s.emit(&content.Question{
			ID:               "summary",
			Type:             content.TypeText,
			Optional:         true,
			MaxLengthInWords: 10,
		})
		prop := doc["properties"].(map[string]any)["summary"].(map[string]any)

		s.Equal(float64(0), prop["minLength"])
		s.Equal(`^$|(^(?:\S+\s+){0,9}\S+$)`, prop["pattern"])
		s.Empty(doc["required"])
	})
}

func (s *EmitterSuite) TestEnumAndArrayProperties() {
	doc := s.emit(
		&content.Question{
			ID:   "deploymentModel",
			Type: content.TypeRadios,
			Options: []content.Option{
				{Label: "Public cloud"}, {Label: "Private cloud"},
			},
		},
		&content.Question{
			ID:   "standards",
			Type: content.TypeCheckboxes,
			Options: []content.Option{
				{Label: "ISO 27001"}, {Label: "Cyber Essentials"}, {Label: "None"},
			},
		},
		&content.Question{ID: "features", Type: content.TypeList},
	)
	properties := doc["properties"].(map[string]any)

	radios := properties["deploymentModel"].(map[string]any)
	s.Equal([]any{"Public cloud", "Private cloud"}, radios["enum"])

	checkboxes := properties["standards"].(map[string]any)
	s.Equal("array", checkboxes["type"])
	s.Equal(true, checkboxes["uniqueItems"])
	s.Equal(float64(1), checkboxes["minItems"])
	s.Equal(float64(3), checkboxes["maxItems"])

	list := properties["features"].(map[string]any)
	s.Equal(float64(10), list["maxItems"])
	items := list["items"].(map[string]any)
	s.Equal(float64(100), items["maxLength"])
	s.Equal(`^(?:\S+\s+){0,9}\S+$`, items["pattern"])
}

func (s *EmitterSuite) TestPricingProperties() {
	doc := s.emit(&content.Question{
		ID:   "price",
		Type: content.TypePricing,
		Fields: map[string]string{
			"minimum_price":  "priceMin",
			"maximum_price":  "priceMax",
			"price_unit":     "priceUnit",
			"price_interval": "priceInterval",
		},
		OptionalFields: []string{"maximum_price", "price_interval"},
	})
	properties := doc["properties"].(map[string]any)

	min := properties["priceMin"].(map[string]any)
	s.Equal(`^\d+(?:\.\d{1,5})?$`, min["pattern"])

	max := properties["priceMax"].(map[string]any)
	s.Equal(`^$|^\d+(?:\.\d{1,5})?$`, max["pattern"])

	unit := properties["priceUnit"].(map[string]any)
	s.Equal("Unit", unit["enum"].([]any)[0])
	s.Len(unit["enum"], 12)

	interval := properties["priceInterval"].(map[string]any)
	s.Equal("", interval["enum"].([]any)[0], "optional enum admits the empty string")
	s.Len(interval["enum"], 10)

	s.Equal([]any{"priceMin", "priceUnit"}, doc["required"])
}

func (s *EmitterSuite) TestAssuranceWrapping() {
	doc := s.emit(&content.Question{
		ID:                "dataProtection",
		Type:              content.TypeRadios,
		Options:           []content.Option{{Label: "TLS"}, {Label: "Legacy SSL"}},
		AssuranceApproach: "4answers-type1",
	})
	prop := doc["properties"].(map[string]any)["dataProtection"].(map[string]any)

	s.Equal("object", prop["type"])
	s.Equal([]any{"value", "assurance"}, prop["required"])

	nested := prop["properties"].(map[string]any)
	s.Equal([]any{"TLS", "Legacy SSL"}, nested["value"].(map[string]any)["enum"])
	s.Equal([]any{
		"Service provider assertion", "Independent validation of assertion",
		"Independent testing of implementation", "CESG-assured components",
	}, nested["assurance"].(map[string]any)["enum"])
}

func (s *EmitterSuite) TestUnknownAssuranceApproach() {
	builder := content.NewBuilder(&content.Manifest{
		Name: "edit_submission",
		Sections: []*content.Section{{
			Slug: "section", Name: "Section", Editable: true,
			Questions: []*content.Question{{
				ID:                "q",
				Type:              content.TypeBoolean,
				AssuranceApproach: "6answers-type9",
			}},
		}},
	})
	_, err := Emit(builder, "Broken")
	s.Error(err)
}

func (s *EmitterSuite) TestMultiquestionAnyOfAndDependencies() {
	doc := s.emit(&content.Question{
		ID:    "contactDetails",
		Type:  content.TypeMultiquestion,
		AnyOf: "Contact details",
		Questions: []*content.Question{
			{ID: "contactEmail", Type: content.TypeText},
			{ID: "contactName", Type: content.TypeText},
		},
	})

	anyOf := doc["anyOf"].([]any)
	s.Require().Len(anyOf, 1)
	entry := anyOf[0].(map[string]any)
	s.Equal("Contact details", entry["title"])
	s.Equal([]any{"contactEmail", "contactName"}, entry["required"])

	dependencies := doc["dependencies"].(map[string]any)
	s.Equal([]any{"contactName"}, dependencies["contactEmail"])
	s.Equal([]any{"contactEmail"}, dependencies["contactName"])

	s.Empty(doc["required"], "any-of members are not individually required")
}

func (s *EmitterSuite) TestPercentageAndBooleanAndUpload() {
	doc := s.emit(
		&content.Question{ID: "availability", Type: content.TypePercentage},
		&content.Question{ID: "freeTrial", Type: content.TypeBoolean},
		&content.Question{ID: "terms", Type: content.TypeUpload},
	)
	properties := doc["properties"].(map[string]any)

	availability := properties["availability"].(map[string]any)
	s.Equal("number", availability["type"])
	s.Equal(float64(0), availability["minimum"])
	s.Equal(float64(100), availability["maximum"])
	s.Equal(true, availability["exclusiveMaximum"])

	s.Equal("boolean", properties["freeTrial"].(map[string]any)["type"])

	upload := properties["terms"].(map[string]any)
	s.Equal("string", upload["type"])
	s.Equal("uri", upload["format"])
}
