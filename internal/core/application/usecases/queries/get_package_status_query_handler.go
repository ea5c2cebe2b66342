package queries

import (
	"context"

	"dropoff/internal/core/application/tracking"
)

// TrackingReader is the read side of tracking.Store.
type TrackingReader interface {
	Snapshot(packageID string) (tracking.Entry, bool)
}

// GetPackageStatusQueryHandler answers from memory; it never touches the
// database, so status polling stays cheap while a delivery is in flight.
type GetPackageStatusQueryHandler struct {
	tracking TrackingReader
}

func NewGetPackageStatusQueryHandler(tracking TrackingReader) GetPackageStatusQueryHandler {
	return GetPackageStatusQueryHandler{tracking: tracking}
}

// Handle reports "Ready" for packages that were never launched or whose
// tracking was cleared by a reset or pickup.
func (h GetPackageStatusQueryHandler) Handle(
	_ context.Context,
	query GetPackageStatusQuery,
) (GetPackageStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPackageStatusQueryResponse{}, err
	}

	entry, _ := h.tracking.Snapshot(query.PackageID())

	response := GetPackageStatusQueryResponse{
		PackageID: query.PackageID(),
		Status:    entry.Status,
		EmailSent: entry.CredentialReady,
	}
	if entry.Rack != nil {
		column := entry.Rack.Column()
		response.SelectedRack = &column
	}
	if entry.RemoteStatus != "" {
		remote := entry.RemoteStatus
		response.RemoteStatus = &remote
	}
	return response, nil
}
