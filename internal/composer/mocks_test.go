package composer

import (
	"context"

	"github.com/Darius-Gillingham/Img-s3/internal/config"
)

// --- Mocks ---

type mockGenerator struct {
	response    string
	err         error
	called      bool
	lastProfile config.InstructionProfile
	lastMessage string
}

func (m *mockGenerator) Generate(ctx context.Context, profile config.InstructionProfile, userMessage string) (string, error) {
	m.called = true
	m.lastProfile = profile
	m.lastMessage = userMessage
	return m.response, m.err
}
