package pkg

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	LobbyCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	LobbyCodeLength   = 6
)

// CodeGenerator draws fixed-length codes from an alphabet, one uniform pick per character.
// Codes are meant to be read aloud and typed, not to be secret.
type CodeGenerator struct {
	alphabet string
	length   int

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewCodeGenerator(alphabet string, length int, rnd *rand.Rand) *CodeGenerator {
	return &CodeGenerator{
		alphabet: alphabet,
		length:   length,
		rnd:      rnd,
	}
}

// NewLobbyCodeGenerator - generator for the 6-character lobby codes.
func NewLobbyCodeGenerator() *CodeGenerator {
	rnd := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec // codes are not secrets

	return NewCodeGenerator(LobbyCodeAlphabet, LobbyCodeLength, rnd)
}

func (that *CodeGenerator) Generate() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	var code strings.Builder
	code.Grow(that.length)

	for range that.length {
		code.WriteByte(that.alphabet[that.rnd.IntN(len(that.alphabet))])
	}

	return code.String()
}

// GenerateConnectionID - generates the handle of a new connection.
func GenerateConnectionID() string {
	return uuid.NewString()
}
