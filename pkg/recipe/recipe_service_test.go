package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestions(t *testing.T) {
	t.Run("plain JSON array", func(t *testing.T) {
		recipes, err := parseSuggestions(`[{"name":"Omelette","ingredients":["Eggs","Milk"],"instructions":"Whisk and fry."}]`)
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Omelette", recipes[0].Name)
		assert.Equal(t, []string{"Eggs", "Milk"}, recipes[0].Ingredients)
	})

	t.Run("markdown fenced response", func(t *testing.T) {
		recipes, err := parseSuggestions("```json\n[{\"name\":\"Toast\",\"ingredients\":[\"Bread\"],\"instructions\":\"Toast it.\"}]\n```")
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Toast", recipes[0].Name)
	})

	t.Run("surrounding prose is tolerated", func(t *testing.T) {
		recipes, err := parseSuggestions(`Here are your recipes: [{"name":"Salad","ingredients":["Lettuce"],"instructions":"Mix."}] Enjoy!`)
		require.NoError(t, err)
		require.Len(t, recipes, 1)
	})

	t.Run("nameless entries are dropped", func(t *testing.T) {
		recipes, err := parseSuggestions(`[{"name":"","ingredients":[],"instructions":""},{"name":"Soup","ingredients":["Carrot"],"instructions":"Boil."}]`)
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Soup", recipes[0].Name)
	})

	t.Run("malformed response is an error, not a crash", func(t *testing.T) {
		_, err := parseSuggestions("Sorry, I cannot help with that.")
		assert.Error(t, err)

		_, err = parseSuggestions(`[{"name": unquoted}]`)
		assert.Error(t, err)
	})
}
