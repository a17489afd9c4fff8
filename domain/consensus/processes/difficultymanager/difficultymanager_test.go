package difficultymanager

import (
	"math"
	"testing"

	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
)

const (
	testBlockWindow  = 90
	testTargetTime   = 120
	testMaxBlockTime = 6 * testTargetTime
)

func buildSamples(count int, startTimestamp uint64, interval uint64,
	difficulty externalapi.Difficulty) []externalapi.TargetDifficultySample {

	samples := make([]externalapi.TargetDifficultySample, count)
	for i := range samples {
		samples[i] = externalapi.TargetDifficultySample{
			Timestamp:        startTimestamp + uint64(i)*interval,
			TargetDifficulty: difficulty,
		}
	}
	return samples
}

func TestLWMATargetDifficulty(t *testing.T) {
	tests := []struct {
		name          string
		samples       []externalapi.TargetDifficultySample
		minDifficulty externalapi.Difficulty
		expected      externalapi.Difficulty
	}{
		{
			name:          "no samples",
			samples:       nil,
			minDifficulty: 5,
			expected:      5,
		},
		{
			name:          "a single sample",
			samples:       buildSamples(1, 1000, testTargetTime, 500),
			minDifficulty: 5,
			expected:      5,
		},
		{
			name:          "steady block rate keeps the difficulty",
			samples:       buildSamples(testBlockWindow, 1000, testTargetTime, 10000),
			minDifficulty: 1,
			expected:      10000,
		},
		{
			name:          "blocks twice as fast double the difficulty",
			samples:       buildSamples(testBlockWindow, 1000, testTargetTime/2, 10000),
			minDifficulty: 1,
			expected:      20000,
		},
		{
			name:          "blocks twice as slow halve the difficulty",
			samples:       buildSamples(testBlockWindow, 1000, testTargetTime*2, 10000),
			minDifficulty: 1,
			expected:      5000,
		},
		{
			name:          "solve times are clamped to the max block time",
			samples:       buildSamples(10, 1000, testMaxBlockTime*100, 6000),
			minDifficulty: 1,
			expected:      1000,
		},
		{
			name:          "stalled timestamps count as one second solve times",
			samples:       buildSamples(10, 1000, 0, 1),
			minDifficulty: 1,
			expected:      testTargetTime,
		},
		{
			name:          "the result is never below the minimum difficulty",
			samples:       buildSamples(testBlockWindow, 1000, testTargetTime, 10),
			minDifficulty: 50,
			expected:      50,
		},
		{
			name: "only the most recent samples are used",
			samples: append(buildSamples(testBlockWindow, 1000, 1, 999999),
				buildSamples(testBlockWindow+1, 1000+testBlockWindow, testTargetTime, 300)...),
			minDifficulty: 1,
			expected:      300,
		},
	}

	for _, test := range tests {
		difficulty, err := LWMATargetDifficulty(test.samples, testBlockWindow, testTargetTime,
			test.minDifficulty, testMaxBlockTime)
		if err != nil {
			t.Errorf("TestLWMATargetDifficulty: %s: unexpected error: %s", test.name, err)
			continue
		}
		if difficulty != test.expected {
			t.Errorf("TestLWMATargetDifficulty: %s: expected %d but got %d", test.name, test.expected, difficulty)
		}
	}
}

func TestLWMATargetDifficultyErrors(t *testing.T) {
	samples := buildSamples(10, 1000, 1, math.MaxUint64)
	_, err := LWMATargetDifficulty(samples, testBlockWindow, testTargetTime, 1, testMaxBlockTime)
	if err == nil {
		t.Errorf("TestLWMATargetDifficultyErrors: expected an overflow error")
	}

	samples = buildSamples(10, 1000, testTargetTime, 100)
	_, err = LWMATargetDifficulty(samples, testBlockWindow, testTargetTime, 1, 0)
	if err == nil {
		t.Errorf("TestLWMATargetDifficultyErrors: expected an error for a zero max block time")
	}
}

func TestLWMATargetDifficultyTimestampRange(t *testing.T) {
	samplesWithTimestamps := func(timestamps ...uint64) []externalapi.TargetDifficultySample {
		samples := make([]externalapi.TargetDifficultySample, len(timestamps))
		for i, timestamp := range timestamps {
			samples[i] = externalapi.TargetDifficultySample{Timestamp: timestamp, TargetDifficulty: 1000}
		}
		return samples
	}

	tests := []struct {
		name       string
		timestamps []uint64
	}{
		{"low timestamps", []uint64{1000, 1001, 1002, 1003, 1003}},
		{"timestamps at the top of the range", []uint64{math.MaxUint64 - 2, math.MaxUint64 - 1,
			math.MaxUint64, math.MaxUint64, math.MaxUint64}},
		{"stalled at the top of the range", []uint64{math.MaxUint64 - 1, math.MaxUint64 - 1,
			math.MaxUint64, math.MaxUint64 - 5, math.MaxUint64}},
	}

	for _, test := range tests {
		difficulty, err := LWMATargetDifficulty(samplesWithTimestamps(test.timestamps...), 10, 1, 1, 6)
		if err != nil {
			t.Fatalf("TestLWMATargetDifficultyTimestampRange: %s: unexpected error: %s", test.name, err)
		}
		// Every solve time is one second, which is the target time
		if difficulty != 1000 {
			t.Errorf("TestLWMATargetDifficultyTimestampRange: %s: expected 1000 but got %d", test.name, difficulty)
		}
	}
}

func TestLWMATargetDifficultyWeighsRecentBlocks(t *testing.T) {
	// Same total time, but the slow block is the most recent one in the
	// second window, so it should produce a lower difficulty
	slowFirst := []externalapi.TargetDifficultySample{
		{Timestamp: 0, TargetDifficulty: 1000},
		{Timestamp: 300, TargetDifficulty: 1000},
		{Timestamp: 360, TargetDifficulty: 1000},
		{Timestamp: 420, TargetDifficulty: 1000},
	}
	slowLast := []externalapi.TargetDifficultySample{
		{Timestamp: 0, TargetDifficulty: 1000},
		{Timestamp: 60, TargetDifficulty: 1000},
		{Timestamp: 120, TargetDifficulty: 1000},
		{Timestamp: 420, TargetDifficulty: 1000},
	}

	slowFirstDifficulty, err := LWMATargetDifficulty(slowFirst, testBlockWindow, testTargetTime, 1, testMaxBlockTime)
	if err != nil {
		t.Fatalf("TestLWMATargetDifficultyWeighsRecentBlocks: unexpected error: %s", err)
	}
	slowLastDifficulty, err := LWMATargetDifficulty(slowLast, testBlockWindow, testTargetTime, 1, testMaxBlockTime)
	if err != nil {
		t.Fatalf("TestLWMATargetDifficultyWeighsRecentBlocks: unexpected error: %s", err)
	}
	if slowLastDifficulty >= slowFirstDifficulty {
		t.Fatalf("TestLWMATargetDifficultyWeighsRecentBlocks: expected %d to be lower than %d",
			slowLastDifficulty, slowFirstDifficulty)
	}
}
