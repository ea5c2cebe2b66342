package queries

import (
	"context"
	"database/sql"
	"errors"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetCredentialQueryHandler struct {
	db *gorm.DB
}

func NewGetCredentialQueryHandler(db *gorm.DB) GetCredentialQueryHandler {
	return GetCredentialQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError when no customer is registered for
// the package and ErrCredentialNotIssued while the code is still missing.
func (h GetCredentialQueryHandler) Handle(
	ctx context.Context,
	query GetCredentialQuery,
) (GetCredentialQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCredentialQueryResponse{}, err
	}

	var (
		mailID    string
		otp       sql.NullInt64
		rackIndex sql.NullInt64
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			mail_id,
			otp,
			rack_index
		FROM customers
		WHERE package_id = ?
	`, query.PackageID()).Row()
	if err := row.Scan(&mailID, &otp, &rackIndex); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetCredentialQueryResponse{}, errs.NewObjectNotFoundError("customer for package", query.PackageID())
		}
		return GetCredentialQueryResponse{}, err
	}

	if !otp.Valid {
		return GetCredentialQueryResponse{}, ErrCredentialNotIssued
	}

	response := GetCredentialQueryResponse{
		PackageID: query.PackageID(),
		MailID:    mailID,
		OTP:       int(otp.Int64),
	}
	if rackIndex.Valid {
		column := kernel.RackColumn(int(rackIndex.Int64))
		response.Rack = &column
	}
	return response, nil
}
