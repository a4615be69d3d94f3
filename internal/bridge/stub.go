package bridge

import (
	"context"

	"github.com/google/uuid"
)

// StubProvider is a controllable Provider for tests and dry wiring checks.
type StubProvider struct {
	Module  SignInModule
	Missing bool
}

// NativeModule returns the configured module unless Missing is set.
func (p *StubProvider) NativeModule(name string) (SignInModule, bool) {
	if p.Missing || name != ModuleName {
		return nil, false
	}
	return p.Module, true
}

// StubModule returns a fixed credential or error on every call.
type StubModule struct {
	Credential *Credential
	Err        error
	Calls      int
}

// SignIn implements SignInModule.
func (m *StubModule) SignIn(ctx context.Context, webClientID string) (*Credential, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Credential, nil
}

// NewStubCredential builds a plausible credential with unique identifiers,
// so tests that compare results never collide across cases.
func NewStubCredential() *Credential {
	id := uuid.NewString()
	return &Credential{
		IDToken:     "stub-token-" + id,
		ID:          id,
		DisplayName: "Stub User",
		GivenName:   "Stub",
		FamilyName:  "User",
		PhotoURL:    "https://example.com/photo/" + id,
	}
}
