package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strs(c completion) []string {
	var out []string
	for _, m := range c.matches {
		out = append(out, m.Str)
	}

	return out
}

func TestComplete_Commands(t *testing.T) {
	c := complete(":")
	assert.Equal(t, commands, strs(c))
	assert.Equal(t, 1, c.start)
	assert.Equal(t, 1, c.end)

	c = complete(":gra")
	assert.Equal(t, []string{"grammar", "grammars"}, strs(c))
	assert.Equal(t, ":grammar", c.apply(":gra", "grammar"))

	assert.Empty(t, strs(complete(":quit")), "exact match needs no completion")
}

func TestComplete_Arguments(t *testing.T) {
	c := complete(":grammar ")
	assert.Equal(t, []string{"arith", "left", "overlap", "right"}, strs(c))
	assert.Equal(t, len(":grammar "), c.start)

	c = complete(":grammar ovl")
	assert.Equal(t, []string{"overlap"}, strs(c))
	assert.Equal(t, ":grammar overlap", c.apply(":grammar ovl", "overlap"))

	assert.Equal(t, []string{"on", "off"}, strs(complete(":memo ")))
	assert.Empty(t, strs(complete(":rules x")))
}

func TestComplete_ParserInputIgnored(t *testing.T) {
	assert.Empty(t, strs(complete("1 + 2")))
	assert.Empty(t, strs(complete("")))
}
