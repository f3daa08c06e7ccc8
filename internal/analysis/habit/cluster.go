package habit

import (
	"math"

	"github.com/jengzang/habitminer/internal/spatial"
)

// clusterRecord is one slot of the clustering arena. The centroid is kept as a
// running sum so a join costs O(1) instead of re-averaging every member.
type clusterRecord struct {
	sumLat  float64
	sumLon  float64
	members []int
}

func (r *clusterRecord) centroid() (float64, float64) {
	n := float64(len(r.members))
	return r.sumLat / n, r.sumLon / n
}

func (r *clusterRecord) add(idx int, s VisitSample) {
	r.sumLat += s.Latitude
	r.sumLon += s.Longitude
	r.members = append(r.members, idx)
}

// Cluster partitions samples into places with single-pass incremental
// clustering in input order. Each sample joins the strictly nearest centroid
// closer than cfg.ClusterRadius (ties go to the earlier cluster) or starts a
// new cluster. Clusters smaller than cfg.MinClusterSize are dropped as noise.
//
// Cost is O(n·k) for n samples and k clusters, fine for the few hundred
// samples of a rolling window.
func Cluster(samples []VisitSample, cfg Config) []PlaceCluster {
	arena := make([]clusterRecord, 0)

	for i, s := range samples {
		nearest := -1
		best := math.Inf(1)
		for c := range arena {
			lat, lon := arena[c].centroid()
			d := spatial.DegreeDistance(s.Latitude, s.Longitude, lat, lon)
			if d < best {
				best = d
				nearest = c
			}
		}

		if nearest >= 0 && best < cfg.ClusterRadius {
			arena[nearest].add(i, s)
			continue
		}

		var rec clusterRecord
		rec.add(i, s)
		arena = append(arena, rec)
	}

	clusters := make([]PlaceCluster, 0, len(arena))
	for _, rec := range arena {
		if len(rec.members) < cfg.MinClusterSize {
			continue
		}
		clusters = append(clusters, rec.materialize(samples))
	}
	return clusters
}

func (r *clusterRecord) materialize(samples []VisitSample) PlaceCluster {
	lat, lon := r.centroid()
	members := make([]VisitSample, len(r.members))
	radius := 0.0
	for i, idx := range r.members {
		members[i] = samples[idx]
		if d := spatial.HaversineDistance(lat, lon, samples[idx].Latitude, samples[idx].Longitude); d > radius {
			radius = d
		}
	}
	return PlaceCluster{
		CenterLatitude:  lat,
		CenterLongitude: lon,
		Members:         members,
		RadiusMeters:    radius,
	}
}
