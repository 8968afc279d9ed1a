package attendance

import (
	"fmt"

	"github.com/bkd-portal/attendance-backend-go/internal/domain/attendance"
	"github.com/bkd-portal/attendance-backend-go/internal/domain/office"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/geo"
)

// ValidateUserLocation checks the reported point against the registered
// office zones. The first zone satisfied by distance <= radius+tolerance
// wins and is reported as both matched and nearest. When no zone is
// satisfied the verdict carries the globally nearest zone by raw
// distance, so the user can see how far off they were and from what.
// An empty or all-inactive zone set fails closed.
func ValidateUserLocation(point attendance.Coordinates, zones []office.OfficeLocation, toleranceMeters float64) attendance.LocationVerdict {
	var (
		nearest     *office.OfficeLocation
		nearestDist float64
	)

	for i := range zones {
		zone := &zones[i]
		if !zone.IsActive {
			continue
		}

		dist := geo.HaversineDistance(point.Latitude, point.Longitude, zone.Latitude, zone.Longitude)
		allowed := float64(zone.RadiusMeters) + toleranceMeters

		if dist <= allowed {
			return attendance.LocationVerdict{
				IsValid:             true,
				NearestOfficeID:     &zone.ID,
				NearestOfficeName:   &zone.Name,
				DistanceMeters:      &dist,
				AllowedRadiusMeters: &allowed,
			}
		}

		if nearest == nil || dist < nearestDist {
			nearest = zone
			nearestDist = dist
		}
	}

	if nearest == nil {
		return attendance.LocationVerdict{
			IsValid: false,
			Reason:  "no active office zones are registered",
		}
	}

	allowed := float64(nearest.RadiusMeters) + toleranceMeters
	return attendance.LocationVerdict{
		IsValid:             false,
		NearestOfficeID:     &nearest.ID,
		NearestOfficeName:   &nearest.Name,
		DistanceMeters:      &nearestDist,
		AllowedRadiusMeters: &allowed,
		Reason:              fmt.Sprintf("%.0fm from %s, allowed %.0fm", nearestDist, nearest.Name, allowed),
	}
}

// hasActiveZone reports whether at least one zone would participate in
// validation. A zero-zone and an all-inactive registry behave the same.
func hasActiveZone(zones []office.OfficeLocation) bool {
	for i := range zones {
		if zones[i].IsActive {
			return true
		}
	}
	return false
}
