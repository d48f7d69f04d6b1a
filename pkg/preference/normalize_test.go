package preference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Male":        Man,
		" man ":       Man,
		"Guys":        Men,
		"Women":       Women,
		"woman":       Woman,
		"Non-Binary":  Nonbinary,
		"enby":        Nonbinary,
		"Both":        Everyone,
		"ANYONE":      Everyone,
		"  Agender  ": "agender",
		"":            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), in)
	}
}

func TestGroupToken(t *testing.T) {
	assert.Equal(t, Men, GroupToken("male"))
	assert.Equal(t, Men, GroupToken("Men"))
	assert.Equal(t, Women, GroupToken("Woman"))
	assert.Equal(t, Nonbinary, GroupToken("non-binary"))
	assert.Equal(t, Everyone, GroupToken("all"))
}

func TestIsCatchAll(t *testing.T) {
	assert.True(t, IsCatchAll("Everyone"))
	assert.True(t, IsCatchAll(" any "))
	assert.False(t, IsCatchAll("women"))
}

func TestAliases(t *testing.T) {
	aliases := Aliases([]string{"Women"})
	assert.Contains(t, aliases, "woman")
	assert.Contains(t, aliases, "female")
	assert.Contains(t, aliases, "women")
	assert.NotContains(t, aliases, "man")
	assert.NotContains(t, aliases, "everyone")

	custom := Aliases([]string{"Agender"})
	assert.Equal(t, []string{"agender"}, custom)

	assert.Nil(t, Aliases([]string{" ", ""}))
	assert.NotContains(t, Aliases([]string{"Women", " "}), "")
}
