package yield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilkPerDay(t *testing.T) {
	cases := []struct {
		age  float64
		want float64
	}{
		{0, 50},
		{1, 49.97},
		{400, 38},
		{800, 26},
		{950, 21.5},
		{1000, 20},
		{1666, 0.02},
		{1667, -0.01},
		{2000, -10},
	}

	for _, tc := range cases {
		assert.InDelta(t, tc.want, MilkPerDay(tc.age), 1e-9, "age %v", tc.age)
	}
}

func TestLifetimeMilkRoundsEachDay(t *testing.T) {
	cases := []struct {
		age  float64
		want float64
	}{
		{0, 0},
		{1, 50},
		{2, 100},
		// day 50 yields 48.5 which rounds away from zero to 49
		{50, 2466},
		{100, 4849},
		{400, 17596},
		{1000, 34990},
		{1666, 41650},
		{1667, 41650},
		{1700, 41633},
		{3400, 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, LifetimeMilk(tc.age), "age %v", tc.age)
	}
}

func TestLifetimeMilkIsMonotonicUntilRateTurnsNegative(t *testing.T) {
	prev := LifetimeMilk(0)
	for age := 1; age <= 1666; age++ {
		cur := LifetimeMilk(float64(age))
		require.GreaterOrEqual(t, cur, prev, "age %d", age)
		prev = cur
	}
}

func TestYoungAnimalsAreNotShaved(t *testing.T) {
	for age := 0; age < 100; age++ {
		assert.Zero(t, WoolShaveCount(float64(age)))
		assert.Zero(t, ShaveInterval(float64(age)))
	}
}

func TestWoolShaveCount(t *testing.T) {
	cases := []struct {
		age  float64
		want float64
	}{
		{100, 1},
		{108, 1},
		{109, 2},
		{400, 29},
		{800, 58},
		{950, 67},
		{999, 70},
		{1000, 70},
		// production stops at day 1000
		{1500, 70},
		{3400, 70},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, WoolShaveCount(tc.age), "age %v", tc.age)
	}
}

func TestShaveInterval(t *testing.T) {
	assert.InDelta(t, 9.0, ShaveInterval(100), 1e-9)
	assert.InDelta(t, 12.0, ShaveInterval(400), 1e-9)
	assert.InDelta(t, 18.0, ShaveInterval(1000), 1e-9)
}

func TestProject(t *testing.T) {
	p := Project(400)

	assert.InDelta(t, 38.0, p.MilkPerDay, 1e-9)
	assert.Equal(t, 17596.0, p.LifetimeMilk)
	assert.Equal(t, 29, p.WoolCount)
	assert.InDelta(t, 12.0, p.ShaveIntervalDays, 1e-9)

	zero := Project(0)
	assert.Equal(t, 50.0, zero.MilkPerDay)
	assert.Zero(t, zero.LifetimeMilk)
	assert.Zero(t, zero.WoolCount)
}
