package google

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"

	"github.com/raushan165/Taskpilot/internal/application"
)

type payloadValidator interface {
	Validate(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

// Verifier checks Google ID tokens against a fixed client id.
type Verifier struct {
	v        payloadValidator
	audience string
}

func NewVerifier(ctx context.Context, clientID string, opts ...option.ClientOption) (*Verifier, error) {
	v, err := idtoken.NewValidator(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Verifier{v: v, audience: clientID}, nil
}

func (g *Verifier) Verify(ctx context.Context, token string) (*application.Identity, error) {
	p, err := g.v.Validate(ctx, token, g.audience)
	if err != nil {
		return nil, err
	}
	email := claim(p, "email")
	if email == "" {
		return nil, errors.New("token has no email claim")
	}
	return &application.Identity{
		Email:   email,
		Name:    claim(p, "name"),
		Picture: claim(p, "picture"),
	}, nil
}

func claim(p *idtoken.Payload, key string) string {
	s, _ := p.Claims[key].(string)
	return s
}

var _ application.IdentityVerifier = (*Verifier)(nil)
