package validation

import (
	"fmt"

	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/content"
)

const otherTradingStatus = "other (please specify)"

// licenceOrMemberAnswers are the licenceOrMemberRequired choices that demand
// supporting details.
var licenceOrMemberAnswers = []string{"licensed", "a member of a relevant organisation"}

// discretionaryExclusionGrounds are the answers that, when any is truthy,
// oblige the supplier to provide mitigating factors (G-Cloud 8+ and DOS).
var discretionaryExclusionGrounds = []string{
	"misleadingInformation", "confidentialInformation", "influencedContractingAuthority",
	"witheldSupportingDocuments", "seriousMisrepresentation", "significantOrPersistentDeficiencies",
	"distortedCompetition", "conflictOfInterest", "distortingCompetition", "graveProfessionalMisconduct",
	"bankrupt", "environmentalSocialLabourLaw", "taxEvasion",
}

// g7DiscretionaryGrounds is the G-Cloud 7 equivalent (questions 39-51).
var g7DiscretionaryGrounds = []string{
	"SQ2-2a", "SQ3-1a", "SQ3-1b", "SQ3-1c", "SQ3-1d", "SQ3-1e", "SQ3-1f", "SQ3-1g",
	"SQ3-1h-i", "SQ3-1h-ii", "SQ3-1i-i", "SQ3-1i-ii", "SQ3-1j",
}

const primeContractorSubcontracting = "as a prime contractor, using third parties (subcontractors) to provide some services"

func anyTruthy(a Answers, fields []string) bool {
	for _, field := range fields {
		if a.Truthy(field) {
			return true
		}
	}
	return false
}

func g7Ruleset() Ruleset {
	return Ruleset{
		CharacterLimit: 5000,
		EmailFields:    []string{"SQ1-1o", "SQ1-2b"},
		OptionalFields: []string{
			"SQ1-1p-i", "SQ1-1p-ii", "SQ1-1p-iii", "SQ1-1p-iv",
			"SQ1-1q-i", "SQ1-1q-ii", "SQ1-1q-iii", "SQ1-1q-iv", "SQ1-1cii", "SQ1-1i-ii",
			"SQ1-1j-i", "SQ1-1j-ii", "SQ4-1c", "SQ3-1k", "SQ1-1i-i",
		},
		Discretionary: []DependencyRule{
			// Trading status answered "other".
			func(a Answers, require func(...string)) {
				if a.String("SQ1-1ci") == otherTradingStatus {
					require("SQ1-1cii")
				}
			},
			// Non-UK business registered in EU.
			func(a Answers, require func(...string)) {
				if a.Truthy("SQ1-1i-i") {
					require("SQ1-1i-ii")
				}
			},
			// Licensed or a member of a relevant organisation.
			func(a Answers, require func(...string)) {
				for _, answer := range licenceOrMemberAnswers {
					if a.Contains("SQ1-1j-i", answer) {
						require("SQ1-1j-ii")
						return
					}
				}
			},
			// Outstanding tax returns.
			func(a Answers, require func(...string)) {
				if a.Truthy("SQ4-1a") || a.Truthy("SQ4-1b") {
					require("SQ4-1c")
				}
			},
			// Grounds for discretionary exclusion.
			func(a Answers, require func(...string)) {
				if anyTruthy(a, g7DiscretionaryGrounds) {
					require("SQ3-1k")
				}
			},
			// Not established in the UK.
			func(a Answers, require func(...string)) {
				if _, ok := a["SQ5-2a"]; ok && !a.Truthy("SQ5-2a") {
					require("SQ1-1i-i", "SQ1-1j-i")
				}
			},
		},
	}
}

// dosRuleset is the Digital Outcomes and Specialists 1 bundle; sharedRuleset
// builds on it for every later framework.
func dosRuleset() Ruleset {
	return Ruleset{
		CharacterLimit: 5000,
		EmailFields:    []string{"primaryContactEmail", "contactEmailContractNotice"},
		OptionalFields: []string{
			"mitigatingFactors", "mitigatingFactors2", "tradingStatusOther",
			"appropriateTradeRegisters", "appropriateTradeRegistersNumber",
			"licenceOrMemberRequired", "licenceOrMemberRequiredDetails",
		},
		Discretionary: []DependencyRule{
			func(a Answers, require func(...string)) {
				if a.String("tradingStatus") == otherTradingStatus {
					require("tradingStatusOther")
				}
			},
			func(a Answers, require func(...string)) {
				if established, ok := a["establishedInTheUK"].(bool); !ok || established {
					return
				}
				require("appropriateTradeRegisters")
				if a.Truthy("appropriateTradeRegisters") {
					require("appropriateTradeRegistersNumber")
				}
				require("licenceOrMemberRequired")
				for _, answer := range licenceOrMemberAnswers {
					if a.String("licenceOrMemberRequired") == answer {
						require("licenceOrMemberRequiredDetails")
					}
				}
			},
			func(a Answers, require func(...string)) {
				if anyTruthy(a, discretionaryExclusionGrounds) {
					require("mitigatingFactors")
				}
			},
			func(a Answers, require func(...string)) {
				if anyTruthy(a, []string{"unspentTaxConvictions", "GAAR"}) {
					require("mitigatingFactors2")
				}
			},
		},
	}
}

// sharedRuleset covers G-Cloud 8 through 12 and DOS 2 through 4: the DOS
// bundle plus the DUNS format rule and the modern slavery requirements.
func sharedRuleset() Ruleset {
	rules := dosRuleset()
	rules.NumberStringFields = []NumberStringRule{{Field: "dunsNumber", Digits: 9}}
	rules.OptionalFields = append(rules.OptionalFields,
		"mitigatingFactors3", "modernSlaveryStatement", "modernSlaveryReportingRequirements",
	)
	rules.Discretionary = append(rules.Discretionary,
		func(a Answers, require func(...string)) {
			if !a.Truthy("modernSlaveryTurnover") {
				return
			}
			if a.Truthy("modernSlaveryReportingRequirements") {
				require("modernSlaveryStatement", "modernSlaveryReportingRequirements")
			} else {
				// Suppliers not yet caught by the reporting
				// requirements explain themselves instead.
				require("mitigatingFactors3")
			}
		},
	)
	return rules
}

// dos5Ruleset extends the shared bundle with the DOS 5 contact email checks
// and the subcontractor prompt-payment questions.
func dos5Ruleset() Ruleset {
	rules := sharedRuleset()
	rules.EmailFields = append(rules.EmailFields, "contactEmail")
	rules.NumberFields = []NumberRule{{Field: "subcontractingInvoicesPaid", Min: 0, Max: 100}}
	rules.OptionalFields = append(rules.OptionalFields,
		"subcontracting30DayPayments", "subcontractingInvoicesPaid",
	)
	rules.Discretionary = append(rules.Discretionary,
		func(a Answers, require func(...string)) {
			if a.Contains("subcontracting", primeContractorSubcontracting) {
				require("subcontracting30DayPayments", "subcontractingInvoicesPaid")
			}
		},
	)
	return rules
}

var frameworkRulesets = map[string]func() Ruleset{
	"g-cloud-7":                          g7Ruleset,
	"g-cloud-8":                          sharedRuleset,
	"g-cloud-9":                          sharedRuleset,
	"g-cloud-10":                         sharedRuleset,
	"g-cloud-11":                         sharedRuleset,
	"g-cloud-12":                         sharedRuleset,
	"digital-outcomes-and-specialists":   dosRuleset,
	"digital-outcomes-and-specialists-2": sharedRuleset,
	"digital-outcomes-and-specialists-3": sharedRuleset,
	"digital-outcomes-and-specialists-4": sharedRuleset,
	"digital-outcomes-and-specialists-5": dos5Ruleset,
}

// ForFramework builds a validator for the framework's rule bundle.
func ForFramework(slug string, builder *content.Builder, answers Answers) (*Validator, error) {
	rules, ok := frameworkRulesets[slug]
	if !ok {
		return nil, fmt.Errorf("no validator registered for framework %q", slug)
	}
	return New(rules(), builder, answers), nil
}
