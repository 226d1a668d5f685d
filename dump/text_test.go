package dump

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchText(t *testing.T) {
	t.Run("title and subjects", func(t *testing.T) {
		got := SearchText("Fantastic Mr Fox", []string{"Foxes", "Fiction", "Farmers"})
		assert.Equal(t, "Fantastic Mr Fox. Foxes Fiction Farmers", got)
	})

	t.Run("no subjects trims the trailing separator space", func(t *testing.T) {
		assert.Equal(t, "Title.", SearchText("Title", nil))
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Equal(t, ".", SearchText("", nil))
	})

	t.Run("subjects capped at twenty", func(t *testing.T) {
		subjects := make([]string, 30)
		for i := range subjects {
			subjects[i] = fmt.Sprintf("s%02d", i)
		}
		got := SearchText("T", subjects)
		assert.Equal(t, 20, strings.Count(got, "s"))
		assert.Contains(t, got, "s19")
		assert.NotContains(t, got, "s20")
	})
}

func TestSearchText_Deterministic(t *testing.T) {
	subjects := []string{"History", "Naval battles", "Napoleonic Wars"}
	first := SearchText("Master and Commander", subjects)
	second := SearchText("Master and Commander", []string{"History", "Naval battles", "Napoleonic Wars"})
	assert.Equal(t, first, second)
}
