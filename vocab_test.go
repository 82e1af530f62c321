package flatqa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVocabularyLayout(t *testing.T) {
	shapes := []Shape{ShapeSquare, ShapeTriangle}
	colors := []Color{ColorRed, ColorGreen}
	v := BuildVocabulary(shapes, colors)

	// Control tokens, then colors, then shapes, in order.
	assert.Equal(t, map[string]int{
		"<NULL>": 0, "<START>": 1, "<END>": 2,
		"is": 3, "there": 4, "a": 5,
		"red": 6, "green": 7,
		"square": 8, "triangle": 9,
	}, v.QuestionTokenToIdx)

	assert.Equal(t, map[string]int{
		"<NULL>": 0, "<START>": 1, "<END>": 2,
		"scene": 3, "And": 4,
		"Color[red]": 5, "Color[green]": 6,
		"Shape[square]": 7, "Shape[triangle]": 8,
	}, v.ProgramTokenToIdx)

	assert.Equal(t, map[string]int{"false": 0, "true": 1}, v.AnswerTokenToIdx)
	assert.Equal(t, map[string]int{"Color": 0, "Shape": 1, "And": 2}, v.ModuleTokenToIdx)
	assert.Equal(t, map[string]int{
		"null": 0, "red": 1, "green": 2, "square": 3, "triangle": 4,
	}, v.TextTokenToIdx)
}

func TestBuildVocabularyArity(t *testing.T) {
	v := BuildVocabulary(Shapes, Colors)

	assert.Equal(t, 2, v.ProgramTokenArity["And"])
	assert.Equal(t, 0, v.ProgramTokenArity["scene"])
	assert.Equal(t, 1, v.ProgramTokenArity["Color[red]"])
	assert.Equal(t, 1, v.ProgramTokenArity["Shape[bar]"])
	assert.Equal(t, 1, v.ProgramTokenArity["<START>"])
	assert.Len(t, v.ProgramTokenArity, len(v.ProgramTokenToIdx))
}

func TestBuildVocabularyModuleText(t *testing.T) {
	v := BuildVocabulary(Shapes, Colors)

	assert.Equal(t, [2]string{"Color", "cyan"}, v.ProgramTokenToModuleText["Color[cyan]"])
	assert.Equal(t, [2]string{"Shape", "cross"}, v.ProgramTokenToModuleText["Shape[cross]"])
	assert.Equal(t, [2]string{"And", "null"}, v.ProgramTokenToModuleText["And"])
	assert.Equal(t, [2]string{"null", "null"}, v.ProgramTokenToModuleText["<START>"])
	// The scene constant is not a module.
	_, ok := v.ProgramTokenToModuleText["scene"]
	assert.False(t, ok)
}

func TestBuildVocabularyStability(t *testing.T) {
	a := BuildVocabulary(Shapes, Colors)
	b := BuildVocabulary(Shapes, Colors)
	assert.Equal(t, a, b, "rebuilding from the same universes must be identical")
}

func TestEncodeQuestion(t *testing.T) {
	v := BuildVocabulary([]Shape{ShapeSquare, ShapeTriangle}, []Color{ColorRed, ColorGreen})

	got, err := v.EncodeQuestion(Pair{ShapeTriangle, ColorRed})
	require.NoError(t, err)
	// is there a red triangle
	assert.Equal(t, []int{3, 4, 5, 6, 9}, got)
	assert.Len(t, got, QuestionLength)
}

func TestEncodeProgram(t *testing.T) {
	v := BuildVocabulary([]Shape{ShapeSquare, ShapeTriangle}, []Color{ColorRed, ColorGreen})

	got, err := v.EncodeProgram(Pair{ShapeTriangle, ColorRed})
	require.NoError(t, err)
	// <START> And Shape[triangle] scene Color[red] scene <END>
	assert.Equal(t, []int{1, 4, 8, 3, 5, 3, 2}, got)
	assert.Len(t, got, ProgramLength)
}

func TestEncodeOutsideUniverse(t *testing.T) {
	v := BuildVocabulary([]Shape{ShapeSquare}, []Color{ColorRed})

	_, err := v.EncodeQuestion(Pair{ShapeBar, ColorRed})
	assert.Error(t, err)
	_, err = v.EncodeProgram(Pair{ShapeSquare, ColorGray})
	assert.Error(t, err)
}

func TestModuleTokens(t *testing.T) {
	assert.Equal(t, "Shape[empty_square]", ShapeModule(ShapeEmptySquare))
	assert.Equal(t, "Color[purple]", ColorModule(ColorPurple))
}
