package validation

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/content"
)

const (
	noHostingOrSoftware = "My organisation isn't submitting cloud hosting (lot 1) or cloud software (lot 2) services"
	noSupport           = "My organisation isn't submitting cloud support (lot 3) services"
)

var g12BoolFields = []string{
	"10WorkingDays", "GAAR", "MI", "accurateInformation", "accuratelyDescribed",
	"bankrupt", "canProvideFromDayOne", "confidentialInformation", "conflictOfInterest",
	"conspiracy", "corruptionBribery", "distortedCompetition", "distortingCompetition",
	"dunsNumberCompanyRegistrationNumber", "environmentalSocialLabourLaw",
	"environmentallyFriendly", "equalityAndDiversity", "fraudAndTheft",
	"fullAccountability", "graveProfessionalMisconduct",
	"helpBuyersComplyTechnologyCodesOfPractice", "influencedContractingAuthority",
	"informationChanges", "misleadingInformation", "modernSlaveryReportingRequirements",
	"modernSlaveryTurnover", "offerServicesYourselves", "organisedCrime",
	"proofOfClaims", "publishContracts", "readUnderstoodGuidance",
	"seriousMisrepresentation", "servicesDoNotInclude",
	"significantOrPersistentDeficiencies", "taxEvasion", "termsAndConditions",
	"termsOfParticipation", "terrorism", "understandHowToAskQuestions",
	"understandTool", "unfairCompetition", "unspentTaxConvictions",
	"witheldSupportingDocuments",
}

var g12TextFields = []string{
	"contactEmailContractNotice", "contactNameContractNotice", "dunsNumber",
	"modernSlaveryStatement", "primaryContact", "primaryContactEmail",
	"supplierCompanyRegistrationNumber", "supplierDunsNumber",
	"supplierRegisteredBuilding", "supplierRegisteredCountry",
	"supplierRegisteredName", "supplierRegisteredPostcode", "supplierRegisteredTown",
	"supplierTradingName",
}

var g12RadioFields = []string{
	"employersInsurance", "status", "supplierOrganisationSize", "supplierTradingStatus",
}

func g12Declaration(overrides Answers) Answers {
	declaration := Answers{
		"modernSlaveryTurnover":              true,
		"modernSlaveryReportingRequirements": false,
		"mitigatingFactors3":                 "Statement under review and not yet published.",
		"dunsNumber":                         "123456789",
		"contactEmailContractNotice":         "Test_Person-8@example.com",
		"contactNameContractNotice":          "Test Person-8",
		"primaryContact":                     "Test Person8B",
		"primaryContactEmail":                "Test_Person8A@EXAMPLE.com",
		"modernSlaveryStatement":             "https://example.com/modern-slavery-statement.pdf",
		"supplierCompanyRegistrationNumber":  "FC021012",
		"supplierDunsNumber":                 "611429481",
		"supplierRegisteredBuilding":         "999 Buckingham Palace",
		"supplierRegisteredCountry":          "country:GB",
		"supplierRegisteredName":             "TEST COMPANY 8",
		"supplierRegisteredPostcode":         "W1A 1AA",
		"supplierRegisteredTown":             "LONDON NODNOL",
		"supplierTradingName":                "TEST COMPANY 8 International Corp.",
		"supplierOrganisationSize":           "medium",
		"supplierTradingStatus":              "other",
		"status":                             "complete",
		"employersInsurance":                 "Yes – your organisation has employer’s liability insurance of at least £5 million.",
		"subcontracting":                     []string{"as a prime contractor, using third parties (subcontractors) to provide some services"},
		"servicesHaveOrSupportCloudHostingCloudSoftware": "Yes",
		"servicesHaveOrSupportCloudSupport":              "Yes",
	}
	for _, field := range g12BoolFields {
		if _, ok := declaration[field]; !ok {
			declaration[field] = false
		}
	}
	for _, field := range []string{
		"10WorkingDays", "MI", "accurateInformation", "accuratelyDescribed",
		"canProvideFromDayOne", "dunsNumberCompanyRegistrationNumber",
		"environmentallyFriendly", "equalityAndDiversity", "fullAccountability",
		"helpBuyersComplyTechnologyCodesOfPractice", "informationChanges",
		"offerServicesYourselves", "proofOfClaims", "publishContracts",
		"readUnderstoodGuidance", "servicesDoNotInclude", "termsAndConditions",
		"termsOfParticipation", "understandHowToAskQuestions", "understandTool",
		"unfairCompetition",
	} {
		declaration[field] = true
	}
	for field, value := range overrides {
		declaration[field] = value
	}
	return declaration
}

func g12Content() *content.Builder {
	var questions []*content.Question
	for _, id := range g12BoolFields {
		questions = append(questions, boolQ(id))
	}
	for _, id := range g12TextFields {
		questions = append(questions, textQ(id))
	}
	for _, id := range g12RadioFields {
		questions = append(questions, radioQ(id))
	}
	questions = append(questions,
		textboxQ("mitigatingFactors3", 500),
		checkboxQ("subcontracting"),
		&content.Question{
			ID:    "servicesHaveOrSupport",
			Type:  content.TypeMultiquestion,
			Label: "Services in scope",
			AnyOf: "Services in scope",
			Questions: []*content.Question{
				radioQ("servicesHaveOrSupportCloudHostingCloudSoftware",
					content.Option{Label: "Yes"},
					content.Option{Label: noHostingOrSoftware, Negative: true},
				),
				radioQ("servicesHaveOrSupportCloudSupport",
					content.Option{Label: "Yes"},
					content.Option{Label: noSupport, Negative: true},
				),
			},
		},
	)
	return declarationContent(questions...)
}

type G12ValidationSuite struct {
	suite.Suite
	content *content.Builder
}

func (s *G12ValidationSuite) SetupTest() {
	s.content = g12Content()
}

func TestG12ValidationSuite(t *testing.T) {
	suite.Run(t, new(G12ValidationSuite))
}

func (s *G12ValidationSuite) errors(declaration Answers) map[string]Kind {
	v, err := ForFramework("g-cloud-12", s.content, declaration)
	s.Require().NoError(err)
	return v.Errors().AsMap()
}

func (s *G12ValidationSuite) TestCompleteDeclaration() {
	s.Empty(s.errors(g12Declaration(nil)))
}

func (s *G12ValidationSuite) TestDependentQuestionsBothErrorWhenBothNegative() {
	errs := s.errors(g12Declaration(Answers{
		"servicesHaveOrSupportCloudHostingCloudSoftware": noHostingOrSoftware,
		"servicesHaveOrSupportCloudSupport":              noSupport,
	}))
	s.Equal(DependentQuestionError, errs["servicesHaveOrSupportCloudHostingCloudSoftware"])
	s.Equal(DependentQuestionError, errs["servicesHaveOrSupportCloudSupport"])
}

func (s *G12ValidationSuite) TestDependentQuestionsPassWhenAnyPositive() {
	cases := []Answers{
		{
			"servicesHaveOrSupportCloudHostingCloudSoftware": "Yes",
			"servicesHaveOrSupportCloudSupport":              noSupport,
		},
		{
			"servicesHaveOrSupportCloudHostingCloudSoftware": noHostingOrSoftware,
			"servicesHaveOrSupportCloudSupport":              "Yes",
		},
		{
			"servicesHaveOrSupportCloudHostingCloudSoftware": "Yes",
			"servicesHaveOrSupportCloudSupport":              "Yes",
		},
	}
	for _, overrides := range cases {
		errs := s.errors(g12Declaration(overrides))
		s.NotContains(errs, "servicesHaveOrSupportCloudHostingCloudSoftware")
		s.NotContains(errs, "servicesHaveOrSupportCloudSupport")
	}
}

func (s *G12ValidationSuite) TestMissingDependentAnswersFallBackToAnswerRequired() {
	cases := []Answers{
		{
			"servicesHaveOrSupportCloudHostingCloudSoftware": nil,
			"servicesHaveOrSupportCloudSupport":              noSupport,
		},
		{
			"servicesHaveOrSupportCloudHostingCloudSoftware": nil,
			"servicesHaveOrSupportCloudSupport":              "Yes",
		},
		{
			"servicesHaveOrSupportCloudHostingCloudSoftware": noHostingOrSoftware,
			"servicesHaveOrSupportCloudSupport":              nil,
		},
		{
			"servicesHaveOrSupportCloudHostingCloudSoftware": "Yes",
			"servicesHaveOrSupportCloudSupport":              nil,
		},
		{
			"servicesHaveOrSupportCloudHostingCloudSoftware": nil,
			"servicesHaveOrSupportCloudSupport":              nil,
		},
	}
	for _, overrides := range cases {
		errs := s.errors(g12Declaration(overrides))
		s.NotContains(kinds(errs), DependentQuestionError)
		s.Contains(kinds(errs), AnswerRequired)
	}
}

func (s *G12ValidationSuite) TestOtherValidationStillApplies() {
	errs := s.errors(g12Declaration(Answers{
		"servicesHaveOrSupportCloudHostingCloudSoftware": noHostingOrSoftware,
		"servicesHaveOrSupportCloudSupport":              noSupport,
		"servicesDoNotInclude":                           nil,
	}))
	s.Equal(AnswerRequired, errs["servicesDoNotInclude"])
}

func kinds(errs map[string]Kind) []Kind {
	out := make([]Kind, 0, len(errs))
	for _, kind := range errs {
		out = append(out, kind)
	}
	return out
}
