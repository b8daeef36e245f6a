package warehouses

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
)

type LocationDTO struct {
	ID       uuid.UUID          `json:"id"`
	Name     string             `json:"name"`
	Barcode  string             `json:"barcode"`
	Aisle    *string            `json:"aisle"`
	Shelf    *string            `json:"shelf"`
	Bin      *string            `json:"bin"`
	Type     enums.LocationType `json:"type"`
	Capacity *int               `json:"capacity"`
	IsActive bool               `json:"isActive"`
}

type ZoneDTO struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Type        enums.ZoneType `json:"type"`
	IsActive    bool           `json:"isActive"`
	Locations   []LocationDTO  `json:"locations"`
}

// Counts summarises the rows hanging off a warehouse.
type Counts struct {
	Zones     int64 `json:"zones"`
	Inventory int64 `json:"inventory"`
	Orders    int64 `json:"orders"`
}

type WarehouseDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zipCode"`
	Country   string    `json:"country"`
	IsActive  bool      `json:"isActive"`
	Zones     []ZoneDTO `json:"zones"`
	Count     *Counts   `json:"_count,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WarehouseList struct {
	Warehouses []WarehouseDTO  `json:"warehouses"`
	Pagination pagination.Meta `json:"pagination"`
}

// WarehouseInput is shared by create and update. Country defaults to "US" on
// create and keeps the stored value on update when empty.
type WarehouseInput struct {
	Name     string
	Address  string
	City     string
	State    string
	ZipCode  string
	Country  string
	IsActive *bool
}

func FromModel(w *models.Warehouse) *WarehouseDTO {
	if w == nil {
		return nil
	}
	out := &WarehouseDTO{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		City:      w.City,
		State:     w.State,
		ZipCode:   w.ZipCode,
		Country:   w.Country,
		IsActive:  w.IsActive,
		Zones:     make([]ZoneDTO, 0, len(w.Zones)),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	for _, z := range w.Zones {
		zone := ZoneDTO{
			ID:          z.ID,
			Name:        z.Name,
			Description: z.Description,
			Type:        z.Type,
			IsActive:    z.IsActive,
			Locations:   make([]LocationDTO, 0, len(z.Locations)),
		}
		for _, l := range z.Locations {
			zone.Locations = append(zone.Locations, LocationDTO{
				ID:       l.ID,
				Name:     l.Name,
				Barcode:  l.Barcode,
				Aisle:    l.Aisle,
				Shelf:    l.Shelf,
				Bin:      l.Bin,
				Type:     l.Type,
				Capacity: l.Capacity,
				IsActive: l.IsActive,
			})
		}
		out.Zones = append(out.Zones, zone)
	}
	return out
}
