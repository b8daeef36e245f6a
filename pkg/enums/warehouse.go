package enums

import (
	"fmt"
	"strings"
)

// ZoneType classifies the purpose of a warehouse zone.
type ZoneType string

const (
	ZoneTypeReceiving ZoneType = "RECEIVING"
	ZoneTypeStorage   ZoneType = "STORAGE"
	ZoneTypePicking   ZoneType = "PICKING"
	ZoneTypePacking   ZoneType = "PACKING"
	ZoneTypeShipping  ZoneType = "SHIPPING"
	ZoneTypeReturns   ZoneType = "RETURNS"
)

var validZoneTypes = []ZoneType{
	ZoneTypeReceiving,
	ZoneTypeStorage,
	ZoneTypePicking,
	ZoneTypePacking,
	ZoneTypeShipping,
	ZoneTypeReturns,
}

func (z ZoneType) String() string {
	return string(z)
}

func (z ZoneType) IsValid() bool {
	for _, candidate := range validZoneTypes {
		if candidate == z {
			return true
		}
	}
	return false
}

func ParseZoneType(value string) (ZoneType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validZoneTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid zone type %q", value)
}

func ZoneTypes() []ZoneType {
	return append([]ZoneType(nil), validZoneTypes...)
}

// LocationType describes the physical storage unit of a location.
type LocationType string

const (
	LocationTypeFloor  LocationType = "FLOOR"
	LocationTypeShelf  LocationType = "SHELF"
	LocationTypeRack   LocationType = "RACK"
	LocationTypeBin    LocationType = "BIN"
	LocationTypePallet LocationType = "PALLET"
)

var validLocationTypes = []LocationType{
	LocationTypeFloor,
	LocationTypeShelf,
	LocationTypeRack,
	LocationTypeBin,
	LocationTypePallet,
}

func (l LocationType) String() string {
	return string(l)
}

func (l LocationType) IsValid() bool {
	for _, candidate := range validLocationTypes {
		if candidate == l {
			return true
		}
	}
	return false
}

func ParseLocationType(value string) (LocationType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validLocationTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid location type %q", value)
}

func LocationTypes() []LocationType {
	return append([]LocationType(nil), validLocationTypes...)
}
