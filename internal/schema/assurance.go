package schema

// assuranceOptions maps an assurance approach name to the answer set it
// accepts. The tables are fixed across frameworks and reproduced exactly.
var assuranceOptions = map[string][]string{
	"2answers-type1": {
		"Service provider assertion", "Independent validation of assertion",
	},
	"3answers-type1": {
		"Service provider assertion", "Contractual commitment", "Independent validation of assertion",
	},
	"3answers-type2": {
		"Service provider assertion", "Independent validation of assertion",
		"Independent testing of implementation",
	},
	"3answers-type3": {
		"Service provider assertion", "Independent testing of implementation", "CESG-assured components",
	},
	"3answers-type4": {
		"Service provider assertion", "Independent validation of assertion",
		"Independent testing of implementation",
	},
	"4answers-type1": {
		"Service provider assertion", "Independent validation of assertion",
		"Independent testing of implementation", "CESG-assured components",
	},
	"4answers-type2": {
		"Service provider assertion", "Contractual commitment",
		"Independent validation of assertion", "CESG-assured components",
	},
	"4answers-type3": {
		"Service provider assertion", "Independent testing of implementation",
		"Assurance of service design", "CESG-assured components",
	},
	"5answers-type1": {
		"Service provider assertion", "Contractual commitment", "Independent validation of assertion",
		"Independent testing of implementation", "CESG-assured components",
	},
}

// wrapAssurance nests a value schema inside the {value, assurance} envelope
// used by questions that carry an assurance approach.
func wrapAssurance(valueSchema map[string]any, approach string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"assurance": map[string]any{
				"enum": assuranceOptions[approach],
			},
			"value": valueSchema,
		},
		"required": []string{"value", "assurance"},
	}
}
