package quizgen

import "github.com/abhisek/dermaquiz/internal/llm"

// DraftSchema is the shape the model must answer in: a list of questions,
// each with at least two scored options.
var DraftSchema = &llm.Schema{
	Name:        "skin-quiz-questions",
	Description: "Draft questions for one section of a skin-type assessment quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"value": map[string]any{
							"type":        "string",
							"description": "The question as shown to the patient, one sentence",
						},
						"options": map[string]any{
							"type":     "array",
							"minItems": 2,
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"value": map[string]any{
										"type":        "string",
										"description": "Answer text",
									},
									"score": map[string]any{
										"type":        "integer",
										"description": "Points this answer adds to the section total",
									},
								},
								"required":             []string{"value", "score"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []string{"value", "options"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"questions"},
		"additionalProperties": false,
	},
}

// draftOutput mirrors DraftSchema.
type draftOutput struct {
	Questions []draftQuestion `json:"questions"`
}

type draftQuestion struct {
	Value   string        `json:"value"`
	Options []draftOption `json:"options"`
}

type draftOption struct {
	Value string `json:"value"`
	Score int    `json:"score"`
}
