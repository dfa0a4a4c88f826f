package user

import (
	"context"

	"github.com/trezcool/chuo/core"
)

type serviceMock struct {
	Service
}

// NewServiceMock returns a Service whose password reset runs synchronously,
// so tests can assert on sent messages right away.
func NewServiceMock(repo Repository, mailSvc core.EmailService) ServiceInterface {
	return &serviceMock{
		Service: Service{
			repo:    repo,
			mailSvc: mailSvc,
		},
	}
}

func (svc *serviceMock) RequestPasswordReset(ctx context.Context, email string) error {
	// the mock email service sends synchronously; just delegate
	return svc.Service.RequestPasswordReset(ctx, email)
}
