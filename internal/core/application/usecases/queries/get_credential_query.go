package queries

import (
	"errors"
	"strings"

	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var (
	ErrGetCredentialQueryIsNotConstructed = errors.New(
		"GetCredentialQuery must be created via NewGetCredentialQuery constructor",
	)

	// ErrCredentialNotIssued means the customer exists but the package has no
	// pickup code yet.
	ErrCredentialNotIssued = errors.New("pickup code not generated yet")
)

// GetCredentialQuery fetches the pickup credential of a delivered package so
// the customer notification can be sent.
type GetCredentialQuery struct {
	packageID string
	guard     guard.ConstructorGuard
}

func NewGetCredentialQuery(packageID string) (GetCredentialQuery, error) {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return GetCredentialQuery{}, errs.NewValueIsRequiredError("package_id")
	}
	return GetCredentialQuery{packageID: packageID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCredentialQuery) PackageID() string {
	return q.packageID
}

func (q GetCredentialQuery) Validate() error {
	return q.guard.Validate(ErrGetCredentialQueryIsNotConstructed)
}

// GetCredentialQueryResponse carries the contact address, the 6-digit code
// and the rack column the package was confirmed in, if any.
type GetCredentialQueryResponse struct {
	PackageID string
	MailID    string
	OTP       int
	Rack      *string
}
