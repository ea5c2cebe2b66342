package queries_test

import (
	"testing"

	"dropoff/internal/core/application/usecases/queries"
	"dropoff/internal/core/domain/model/parcel"
	"dropoff/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPackageStatusQuery(t *testing.T) {
	q, err := queries.NewGetPackageStatusQuery("  P1 ")
	require.NoError(t, err)
	assert.Equal(t, "P1", q.PackageID())
	assert.NoError(t, q.Validate())

	_, err = queries.NewGetPackageStatusQuery(" ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.ErrorIs(t, queries.GetPackageStatusQuery{}.Validate(), queries.ErrGetPackageStatusQueryIsNotConstructed)
}

func TestNewGetCredentialQuery(t *testing.T) {
	q, err := queries.NewGetCredentialQuery("P1")
	require.NoError(t, err)
	assert.Equal(t, "P1", q.PackageID())

	_, err = queries.NewGetCredentialQuery("")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.ErrorIs(t, queries.GetCredentialQuery{}.Validate(), queries.ErrGetCredentialQueryIsNotConstructed)
}

func TestNewGetControlKeyQuery(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng *float64
		wantErr  error
	}{
		{name: "valid", lat: ptr(12.97), lng: ptr(77.59)},
		{name: "missing latitude", lng: ptr(77.59), wantErr: errs.ErrValueIsRequired},
		{name: "missing longitude", lat: ptr(12.97), wantErr: errs.ErrValueIsRequired},
		{name: "latitude out of range", lat: ptr(91.0), lng: ptr(0.0), wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := queries.NewGetControlKeyQuery(tt.lat, tt.lng)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, q.Validate())
			assert.InDelta(t, *tt.lat, q.Location().Latitude(), 1e-9)
		})
	}

	assert.ErrorIs(t, queries.GetControlKeyQuery{}.Validate(), queries.ErrGetControlKeyQueryIsNotConstructed)
}

func TestNewGetTowerRacksQuery(t *testing.T) {
	all, err := queries.NewGetTowerRacksQuery(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, all.Location())
	assert.NoError(t, all.Validate())

	nearby, err := queries.NewGetTowerRacksQuery(ptr(12.97), ptr(77.59))
	require.NoError(t, err)
	require.NotNil(t, nearby.Location())
	assert.InDelta(t, 77.59, nearby.Location().Longitude(), 1e-9)

	_, err = queries.NewGetTowerRacksQuery(ptr(12.97), nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorContains(t, err, "lng")

	_, err = queries.NewGetTowerRacksQuery(nil, ptr(200.0))
	assert.ErrorContains(t, err, "lat")

	assert.ErrorIs(t, queries.GetTowerRacksQuery{}.Validate(), queries.ErrGetTowerRacksQueryIsNotConstructed)
}

func TestNewListPackagesQuery(t *testing.T) {
	q, err := queries.NewListPackagesQuery(ptr(" Processing "))
	require.NoError(t, err)
	require.NotNil(t, q.Phase())
	assert.Equal(t, parcel.Processing, *q.Phase())

	for _, status := range []*string{nil, ptr(""), ptr("  ")} {
		q, err = queries.NewListPackagesQuery(status)
		require.NoError(t, err)
		assert.Nil(t, q.Phase(), "blank status lists everything")
	}

	_, err = queries.NewListPackagesQuery(ptr("Lost"))
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.ErrorIs(t, queries.ListPackagesQuery{}.Validate(), queries.ErrListPackagesQueryIsNotConstructed)
}

func TestNewDroneQueries(t *testing.T) {
	q, err := queries.NewGetDroneQuery(" D1 ")
	require.NoError(t, err)
	assert.Equal(t, "D1", q.DroneID())
	_, err = queries.NewGetDroneQuery("")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, queries.GetDroneQuery{}.Validate(), queries.ErrGetDroneQueryIsNotConstructed)

	dq, err := queries.NewGetDroneDestinationQuery("D1")
	require.NoError(t, err)
	assert.Equal(t, "D1", dq.DroneID())
	_, err = queries.NewGetDroneDestinationQuery(" ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, queries.GetDroneDestinationQuery{}.Validate(),
		queries.ErrGetDroneDestinationQueryIsNotConstructed)

	assert.NoError(t, queries.NewListDeliveryDronesQuery().Validate())
	assert.ErrorIs(t, queries.ListDeliveryDronesQuery{}.Validate(),
		queries.ErrListDeliveryDronesQueryIsNotConstructed)
}
