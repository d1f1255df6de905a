// Package scoring assigns a point value to a logged activity. One base point is
// earned per full 10 minutes, scaled by an activity-type multiplier.
package scoring

import "octofit.app/tracker/internal/entity"

const DefaultMultiplier = 1.0

var multipliers = map[string]float64{
	entity.ActivityRunning:       1.5,
	entity.ActivityCycling:       1.3,
	entity.ActivitySwimming:      1.7,
	entity.ActivityWeightlifting: 1.4,
	entity.ActivityYoga:          1.0,
	entity.ActivityWalking:       0.8,
	entity.ActivityOther:         1.0,
}

// Multiplier returns the point multiplier for an activity type. Unrecognized
// types fall back to the neutral multiplier instead of failing.
func Multiplier(activityType string) float64 {
	if m, ok := multipliers[activityType]; ok {
		return m
	}
	return DefaultMultiplier
}

// Points computes points earned for a session of the given duration in minutes.
// Sub-10-minute sessions earn zero.
func Points(durationMinutes int, activityType string) int {
	base := durationMinutes / 10
	return int(float64(base) * Multiplier(activityType))
}
