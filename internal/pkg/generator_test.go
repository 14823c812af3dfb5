package pkg

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCodeGenerator_Generate(t *testing.T) {
	t.Run("Lobby codes are six characters from A-Z and 0-9", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			seed1 := rapid.Uint64().Draw(t, "seed1")
			seed2 := rapid.Uint64().Draw(t, "seed2")
			generator := NewCodeGenerator(LobbyCodeAlphabet, LobbyCodeLength, rand.New(rand.NewPCG(seed1, seed2)))

			code := generator.Generate()

			if len(code) != LobbyCodeLength {
				t.Fatalf("code %q has length %d", code, len(code))
			}
			for _, r := range code {
				if !strings.ContainsRune(LobbyCodeAlphabet, r) {
					t.Fatalf("code %q contains %q", code, r)
				}
			}
		})
	})

	t.Run("Same seed yields the same sequence", func(t *testing.T) {
		// Given: two generators with identical sources
		first := NewCodeGenerator(LobbyCodeAlphabet, LobbyCodeLength, rand.New(rand.NewPCG(1, 2)))
		second := NewCodeGenerator(LobbyCodeAlphabet, LobbyCodeLength, rand.New(rand.NewPCG(1, 2)))

		// Then: they produce the same codes
		for range 10 {
			assert.Equal(t, first.Generate(), second.Generate())
		}
	})

	t.Run("Every character of a small alphabet is reachable", func(t *testing.T) {
		// Given: a two-letter alphabet
		generator := NewCodeGenerator("AB", 1, rand.New(rand.NewPCG(7, 7)))

		// When: generating many codes
		seen := map[string]bool{}
		for range 200 {
			seen[generator.Generate()] = true
		}

		// Then: both letters show up
		assert.Equal(t, map[string]bool{"A": true, "B": true}, seen)
	})

	t.Run("Default generator produces lobby codes", func(t *testing.T) {
		code := NewLobbyCodeGenerator().Generate()

		assert.Len(t, code, LobbyCodeLength)
		assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
	})
}

func TestGenerateConnectionID(t *testing.T) {
	id := GenerateConnectionID()

	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, GenerateConnectionID())
}
