package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"octofit.app/tracker/internal/entity"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		name         string
		duration     int
		activityType string
		want         int
	}{
		{"running 30 minutes", 30, entity.ActivityRunning, 4},   // base 3 * 1.5 = 4.5 -> 4
		{"cycling 45 minutes", 45, entity.ActivityCycling, 5},   // base 4 * 1.3 = 5.2 -> 5
		{"swimming 60 minutes", 60, entity.ActivitySwimming, 10},
		{"weightlifting 50 minutes", 50, entity.ActivityWeightlifting, 7},
		{"yoga 90 minutes", 90, entity.ActivityYoga, 9},
		{"walking 100 minutes", 100, entity.ActivityWalking, 8},
		{"other 25 minutes", 25, entity.ActivityOther, 2},
		{"unknown type uses neutral multiplier", 40, "parkour", 4},
		{"sub-10-minute session earns nothing", 9, entity.ActivityRunning, 0},
		{"zero duration", 0, entity.ActivityCycling, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Points(tt.duration, tt.activityType))
		})
	}
}

func TestPointsMatchesFormula(t *testing.T) {
	types := []string{
		entity.ActivityRunning, entity.ActivityCycling, entity.ActivitySwimming,
		entity.ActivityWeightlifting, entity.ActivityYoga, entity.ActivityWalking,
		entity.ActivityOther, "unknown",
	}

	for _, typ := range types {
		for d := 0; d <= 240; d += 7 {
			want := int(float64(d/10) * Multiplier(typ))
			assert.Equal(t, want, Points(d, typ), "duration=%d type=%s", d, typ)
		}
	}
}

func TestMultiplierFallback(t *testing.T) {
	assert.Equal(t, 1.5, Multiplier(entity.ActivityRunning))
	assert.Equal(t, 0.8, Multiplier(entity.ActivityWalking))
	assert.Equal(t, DefaultMultiplier, Multiplier("skydiving"))
	assert.Equal(t, DefaultMultiplier, Multiplier(""))
}
