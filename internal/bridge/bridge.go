// Package bridge models the runtime contract the injected native module
// exposes to the application layer. The pipeline produces that module;
// this package is how a caller consumes it: look the module up in the host
// registry, invoke signIn, and normalize user cancellation to a null
// result instead of an error.
//
// The host registry is abstracted behind Provider so the calling layer can
// be exercised against a stub without a native runtime.
package bridge

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ModuleName is the registry name the generated module registers under.
const ModuleName = "CredInjectGoogleSignIn"

// Stable error codes carried by tagged sign-in failures. These mirror the
// rejection codes in the generated Kotlin module.
const (
	CodeNoActivity    = "NO_ACTIVITY"
	CodeCancelled     = "SIGN_IN_CANCELLED"
	CodeNoCredential  = "NO_CREDENTIAL"
	CodeProviderError = "PROVIDER_ERROR"
	CodeParseError    = "PARSE_ERROR"
)

// ErrModuleNotLinked reports that the host registry has no sign-in module,
// meaning the project was never run through the mutation pipeline.
var ErrModuleNotLinked = errors.New("sign-in native module is not linked into this build")

// Error is a tagged sign-in failure with a stable code string.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// Credential is the fixed six-field result of a successful sign-in.
type Credential struct {
	IDToken     string
	ID          string
	DisplayName string
	GivenName   string
	FamilyName  string
	PhotoURL    string
}

// SignInModule is the capability the generated native module exposes.
type SignInModule interface {
	SignIn(ctx context.Context, webClientID string) (*Credential, error)
}

// Provider looks up native modules in the host's process-wide registry.
type Provider interface {
	NativeModule(name string) (SignInModule, bool)
}

// Client is the calling layer over the bridge contract.
type Client struct {
	provider Provider
	logger   *zap.Logger
}

// NewClient builds a client over the given module provider. A nil logger
// is replaced with a no-op logger.
func NewClient(provider Provider, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{provider: provider, logger: logger.Named("bridge")}
}

// SignIn resolves one credential for the given web client ID. User
// cancellation returns (nil, nil); every other failure surfaces unchanged
// so callers can branch on its code.
func (c *Client) SignIn(ctx context.Context, webClientID string) (*Credential, error) {
	mod, ok := c.provider.NativeModule(ModuleName)
	if !ok {
		return nil, ErrModuleNotLinked
	}

	cred, err := mod.SignIn(ctx, webClientID)
	if err != nil {
		var tagged *Error
		if errors.As(err, &tagged) && tagged.Code == CodeCancelled {
			c.logger.Debug("sign-in cancelled by user")
			return nil, nil
		}
		return nil, err
	}
	return cred, nil
}
