package queries

import (
	"context"

	"dropoff/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type GetTowerRacksQueryHandler struct {
	db *gorm.DB
}

func NewGetTowerRacksQueryHandler(db *gorm.DB) GetTowerRacksQueryHandler {
	return GetTowerRacksQueryHandler{db: db}
}

// Handle returns towers ordered by name; racks within a tower are in
// ascending slot order.
func (h GetTowerRacksQueryHandler) Handle(
	ctx context.Context,
	query GetTowerRacksQuery,
) ([]GetTowerRacksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	towers, err := h.loadTowers(ctx, query.Location())
	if err != nil {
		return nil, err
	}
	if len(towers) == 0 {
		return towers, nil
	}

	byName := make(map[string]int, len(towers))
	names := make([]string, 0, len(towers))
	for i, t := range towers {
		byName[t.Name] = i
		names = append(names, t.Name)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			tower_name,
			rack_index
		FROM tower_racks
		WHERE package_id IS NULL AND tower_name IN ?
		ORDER BY tower_name, rack_index
	`, names).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			towerName string
			index     int
		)
		if err = rows.Scan(&towerName, &index); err != nil {
			return nil, err
		}
		slot, slotErr := kernel.NewRackSlot(towerName, index)
		if slotErr != nil {
			return nil, slotErr
		}
		i := byName[towerName]
		towers[i].AvailableRacks = append(towers[i].AvailableRacks, AvailableRack{
			Number: slot.Index(),
			Name:   slot.DisplayName(),
			Column: slot.Column(),
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return towers, nil
}

func (h GetTowerRacksQueryHandler) loadTowers(
	ctx context.Context,
	location *kernel.Coordinates,
) ([]GetTowerRacksQueryResponse, error) {
	db := h.db.WithContext(ctx)

	sql := `
		SELECT
			name,
			latitude,
			longitude,
			total_racks
		FROM towers`
	args := make([]any, 0, 4)
	if location != nil {
		sql += `
		WHERE abs(latitude - ?) < ? AND abs(longitude - ?) < ?`
		args = append(args,
			location.Latitude(), kernel.CoordinatesTolerance,
			location.Longitude(), kernel.CoordinatesTolerance,
		)
	}
	sql += `
		ORDER BY name`

	rows, err := db.Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	towers := make([]GetTowerRacksQueryResponse, 0)
	for rows.Next() {
		var (
			resp     GetTowerRacksQueryResponse
			lat, lng float64
		)
		if err = rows.Scan(&resp.Name, &lat, &lng, &resp.TotalRacks); err != nil {
			return nil, err
		}
		loc, locErr := kernel.NewCoordinates(lat, lng)
		if locErr != nil {
			return nil, locErr
		}
		resp.Location = loc
		resp.AvailableRacks = make([]AvailableRack, 0)
		towers = append(towers, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return towers, nil
}
