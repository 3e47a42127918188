package domain

import (
	"math"
)

// shoreRunoffFactor scales the extra shoreline risk attributed to
// agricultural and urban margins, where runoff enters and the water column
// is shallowest.
const shoreRunoffFactor = 0.15

// calmWindKmh is the speed below which surface advection is ignored and no
// downwind boost applies.
const calmWindKmh = 5.0

// riskSource is one virtual sample feeding the interpolation.
type riskSource struct {
	lat, lon float64
	risk     float64
}

// InterpolateRisk spreads a site assessment over a small grid around the
// observation point. The site score anchors the center; a ring of virtual
// shoreline sources carries reduced risk biased toward the downwind shore
// where wind piles surface scum. Grid cells are filled by inverse-distance
// weighting (power 2) and cells inside the downwind sector receive a
// further multiplicative boost.
//
// Rows run south to north, columns west to east, row-major.
func InterpolateRisk(obs EnvironmentalObservation, siteRisk float64, cfg SpatialConfig) SpatialGrid {
	if cfg.GridSize < 2 || cfg.RadiusDeg <= 0 {
		return nil
	}

	downwind := math.Mod(obs.Current.WindDirectionDeg+180, 360)
	windy := obs.Current.WindSpeedKmh >= calmWindKmh

	sources := make([]riskSource, 0, cfg.ShoreRing+1)
	sources = append(sources, riskSource{lat: obs.Latitude, lon: obs.Longitude, risk: siteRisk})

	runoff := clamp01((obs.LandCover.AgriculturalPct + obs.LandCover.UrbanPct) / 100)
	lonScale := math.Cos(obs.Latitude * math.Pi / 180)
	for i := 0; i < cfg.ShoreRing; i++ {
		bearing := 360 * float64(i) / float64(cfg.ShoreRing)
		align := 0.0
		if windy {
			align = downwindAlignment(bearing, downwind)
		}
		shore := siteRisk * (0.5 + 0.4*align)
		shore *= 1 + shoreRunoffFactor*runoff
		sources = append(sources, riskSource{
			lat:  obs.Latitude + cfg.RadiusDeg*math.Cos(bearing*math.Pi/180),
			lon:  obs.Longitude + cfg.RadiusDeg*math.Sin(bearing*math.Pi/180)/lonScale,
			risk: clampScore(shore),
		})
	}

	grid := make(SpatialGrid, 0, cfg.GridSize*cfg.GridSize)
	step := 2 * cfg.RadiusDeg / float64(cfg.GridSize-1)
	for row := 0; row < cfg.GridSize; row++ {
		lat := obs.Latitude - cfg.RadiusDeg + step*float64(row)
		for col := 0; col < cfg.GridSize; col++ {
			lon := obs.Longitude + (-cfg.RadiusDeg+step*float64(col))/lonScale
			risk := idw(lat, lon, lonScale, sources)
			if windy {
				risk *= sectorBoost(obs, lat, lon, lonScale, downwind, cfg)
			}
			grid = append(grid, GridCell{Lat: lat, Lon: lon, Risk: clampScore(risk)})
		}
	}
	return grid
}

// idw is inverse-distance weighting with power 2. A cell landing exactly
// on a source takes the source value to avoid the singular weight.
func idw(lat, lon, lonScale float64, sources []riskSource) float64 {
	var num, den float64
	for _, src := range sources {
		d2 := planarDist2(lat, lon, src.lat, src.lon, lonScale)
		if d2 == 0 {
			return src.risk
		}
		w := 1 / d2
		num += w * src.risk
		den += w
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// sectorBoost returns the downwind amplification for one cell: 1 outside
// the wind sector, ramping 1+BoostMin up to 1+BoostMax directly downwind,
// scaled by wind strength.
func sectorBoost(obs EnvironmentalObservation, lat, lon, lonScale, downwind float64, cfg SpatialConfig) float64 {
	dLat := lat - obs.Latitude
	dLon := (lon - obs.Longitude) * lonScale
	if dLat == 0 && dLon == 0 {
		return 1
	}
	bearing := math.Mod(math.Atan2(dLon, dLat)*180/math.Pi+360, 360)

	diff := angularDiff(bearing, downwind)
	if diff > cfg.SectorHalfDeg {
		return 1
	}
	centrality := 1 - diff/cfg.SectorHalfDeg
	strength := clamp01(obs.Current.WindSpeedKmh / 20)
	return 1 + (cfg.BoostMin+(cfg.BoostMax-cfg.BoostMin)*centrality)*strength
}

// downwindAlignment is 1 directly downwind falling off as the cosine of
// the bearing difference, floored at zero for crosswind and upwind shores.
func downwindAlignment(bearingDeg, downwindDeg float64) float64 {
	return math.Max(0, math.Cos(angularDiff(bearingDeg, downwindDeg)*math.Pi/180))
}

// angularDiff returns the absolute difference between two bearings in
// degrees, in [0,180].
func angularDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func planarDist2(lat1, lon1, lat2, lon2, lonScale float64) float64 {
	dLat := lat1 - lat2
	dLon := (lon1 - lon2) * lonScale
	return dLat*dLat + dLon*dLon
}
