package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeline_Lookups(t *testing.T) {
	timeline := Timeline{
		{Year: 2026, Age: 58, GoalsAchieved: []string{}},
		{Year: 2027, Age: 59, GoalsAchieved: []string{"Car"}},
		{Year: 2028, Age: 60, IsRetired: true, GoalsAchieved: []string{}},
		{Year: 2029, Age: 61, IsRetired: true, GoalsAchieved: []string{}},
	}

	assert.Equal(t, 2026, timeline.StartYear())
	assert.Equal(t, 0, Timeline{}.StartYear())

	entry, ok := timeline.EntryForAge(60)
	assert.True(t, ok)
	assert.Equal(t, 2028, entry.Year)
	_, ok = timeline.EntryForAge(70)
	assert.False(t, ok)

	entry, ok = timeline.LastEntryAtOrBefore(2040)
	assert.True(t, ok)
	assert.Equal(t, 2029, entry.Year)
	_, ok = timeline.LastEntryAtOrBefore(2020)
	assert.False(t, ok)

	entry, ok = timeline.LastRetiredEntry()
	assert.True(t, ok)
	assert.Equal(t, 61, entry.Age)

	assert.True(t, timeline[1].HasAchieved("Car"))
	assert.False(t, timeline[2].HasAchieved("Car"))
}
