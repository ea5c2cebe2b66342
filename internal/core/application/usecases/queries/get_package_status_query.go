package queries

import (
	"errors"
	"strings"

	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var ErrGetPackageStatusQueryIsNotConstructed = errors.New(
	"GetPackageStatusQuery must be created via NewGetPackageStatusQuery constructor",
)

// GetPackageStatusQuery reads the live delivery status of one package.
type GetPackageStatusQuery struct {
	packageID string
	guard     guard.ConstructorGuard
}

func NewGetPackageStatusQuery(packageID string) (GetPackageStatusQuery, error) {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return GetPackageStatusQuery{}, errs.NewValueIsRequiredError("package_id")
	}
	return GetPackageStatusQuery{packageID: packageID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPackageStatusQuery) PackageID() string {
	return q.packageID
}

func (q GetPackageStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetPackageStatusQueryIsNotConstructed)
}

// GetPackageStatusQueryResponse mirrors what the tower operators' console
// polls. SelectedRack is the rack column, e.g. "rack_02", while a rack is
// reserved or holds the package.
type GetPackageStatusQueryResponse struct {
	PackageID    string
	Status       string
	EmailSent    bool
	SelectedRack *string
	RemoteStatus *string
}
