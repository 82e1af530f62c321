package flatqa

import "fmt"

// Control tokens shared by the question and program vocabularies.
const (
	TokenNull  = "<NULL>"
	TokenStart = "<START>"
	TokenEnd   = "<END>"
)

// Fixed sequence lengths. Every question is exactly five tokens
// ("is there a <color> <shape>") and every program exactly seven
// (a conjunction of two single-argument filters over the scene root).
const (
	QuestionLength = 5
	ProgramLength  = 7
)

// ShapeModule returns the program token of the filter module for a shape,
// e.g. "Shape[square]".
func ShapeModule(s Shape) string {
	return fmt.Sprintf("Shape[%s]", s)
}

// ColorModule returns the program token of the filter module for a color,
// e.g. "Color[red]".
func ColorModule(c Color) string {
	return fmt.Sprintf("Color[%s]", c)
}

// Vocabulary holds every token table a generated dataset ships with.
// It is a pure function of the active shape and color universes: the same
// universes always produce identical mappings, regardless of split or
// admissibility policy. The JSON field names are the contract with the
// downstream model-training tooling.
type Vocabulary struct {
	// QuestionTokenToIdx indexes question words: the control tokens and
	// "is there a", then all colors, then all shapes.
	QuestionTokenToIdx map[string]int `json:"question_token_to_idx"`

	// ProgramTokenToIdx indexes program tokens: control tokens, "scene"
	// and "And", then one Color[...] module per color and one Shape[...]
	// module per shape.
	ProgramTokenToIdx map[string]int `json:"program_token_to_idx"`

	// ProgramTokenArity gives each program token's argument count:
	// And takes 2, scene takes 0, everything else takes 1.
	ProgramTokenArity map[string]int `json:"program_token_arity"`

	// AnswerTokenToIdx maps "false" to 0 and "true" to 1.
	AnswerTokenToIdx map[string]int `json:"answer_token_to_idx"`

	// ProgramTokenToModuleText decodes a program token into its
	// (module kind, argument text) pair for symbolic execution.
	ProgramTokenToModuleText map[string][2]string `json:"program_token_to_module_text"`

	// ModuleTokenToIdx indexes the module kinds.
	ModuleTokenToIdx map[string]int `json:"module_token_to_idx"`

	// TextTokenToIdx indexes module argument texts: "null", then all
	// colors, then all shapes.
	TextTokenToIdx map[string]int `json:"text_token_to_idx"`
}

// BuildVocabulary enumerates every token table for the given universes.
// Deterministic: token indices follow the universe order exactly.
func BuildVocabulary(shapes []Shape, colors []Color) *Vocabulary {
	questionWords := []string{TokenNull, TokenStart, TokenEnd, "is", "there", "a"}
	for _, c := range colors {
		questionWords = append(questionWords, string(c))
	}
	for _, s := range shapes {
		questionWords = append(questionWords, string(s))
	}

	programWords := []string{TokenNull, TokenStart, TokenEnd, "scene", "And"}
	for _, c := range colors {
		programWords = append(programWords, ColorModule(c))
	}
	for _, s := range shapes {
		programWords = append(programWords, ShapeModule(s))
	}

	v := &Vocabulary{
		QuestionTokenToIdx:       indexTokens(questionWords),
		ProgramTokenToIdx:        indexTokens(programWords),
		ProgramTokenArity:        make(map[string]int, len(programWords)),
		AnswerTokenToIdx:         map[string]int{"false": 0, "true": 1},
		ProgramTokenToModuleText: make(map[string][2]string),
		ModuleTokenToIdx:         map[string]int{"Color": 0, "Shape": 1, "And": 2},
		TextTokenToIdx:           make(map[string]int, 1+len(colors)+len(shapes)),
	}

	for _, word := range programWords {
		v.ProgramTokenArity[word] = arity(word)
	}

	for _, c := range colors {
		v.ProgramTokenToModuleText[ColorModule(c)] = [2]string{"Color", string(c)}
	}
	for _, s := range shapes {
		v.ProgramTokenToModuleText[ShapeModule(s)] = [2]string{"Shape", string(s)}
	}
	v.ProgramTokenToModuleText["And"] = [2]string{"And", "null"}
	for _, t := range []string{TokenStart, TokenEnd, TokenNull} {
		v.ProgramTokenToModuleText[t] = [2]string{"null", "null"}
	}

	texts := []string{"null"}
	for _, c := range colors {
		texts = append(texts, string(c))
	}
	for _, s := range shapes {
		texts = append(texts, string(s))
	}
	for i, t := range texts {
		v.TextTokenToIdx[t] = i
	}

	return v
}

// QuestionTokens returns the five-word surface form of the question about
// a pair: is there a <color> <shape>.
func QuestionTokens(pair Pair) []string {
	return []string{"is", "there", "a", string(pair.Color), string(pair.Shape)}
}

// ProgramTokens returns the seven-token program for a pair: a conjunction
// of the shape filter and the color filter over the scene constant.
func ProgramTokens(pair Pair) []string {
	return []string{
		TokenStart, "And",
		ShapeModule(pair.Shape), "scene",
		ColorModule(pair.Color), "scene",
		TokenEnd,
	}
}

// EncodeQuestion maps the question about pair to vocabulary indices.
// Every token must be in the vocabulary; an unknown token means the pair
// is outside the universes the vocabulary was built from.
func (v *Vocabulary) EncodeQuestion(pair Pair) ([]int, error) {
	return encode(QuestionTokens(pair), v.QuestionTokenToIdx)
}

// EncodeProgram maps the program for pair to vocabulary indices.
func (v *Vocabulary) EncodeProgram(pair Pair) ([]int, error) {
	return encode(ProgramTokens(pair), v.ProgramTokenToIdx)
}

func encode(tokens []string, table map[string]int) ([]int, error) {
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		idx, ok := table[tok]
		if !ok {
			return nil, fmt.Errorf("flatqa: token %q not in vocabulary", tok)
		}
		out[i] = idx
	}
	return out, nil
}

func indexTokens(words []string) map[string]int {
	m := make(map[string]int, len(words))
	for i, w := range words {
		m[w] = i
	}
	return m
}

func arity(token string) int {
	switch token {
	case "And":
		return 2
	case "scene":
		return 0
	default:
		return 1
	}
}
