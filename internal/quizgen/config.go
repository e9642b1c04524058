package quizgen

// Config tunes drafting. Validators run in order after the shape check;
// the first failure rejects the draft.
type Config struct {
	Validators  []Validator
	MaxTokens   int
	Temperature float64
	// MaxExisting caps how many existing questions go into the prompt.
	MaxExisting int
	// MaxCount caps Input.Count.
	MaxCount int
}

func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			DuplicateValidator{},
			OptionsValidator{MaxOptions: 5},
		},
		MaxTokens:   2048,
		Temperature: 0.7,
		MaxExisting: 20,
		MaxCount:    10,
	}
}
