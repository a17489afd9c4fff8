package pastmediantimemanager

import (
	"sort"

	"github.com/pkg/errors"
)

// MedianTimestamp returns the median of timestamps. For an even number of
// timestamps the lower of the two middle elements is returned, so the result
// is always one of the given timestamps. timestamps is not modified.
func MedianTimestamp(timestamps []uint64) (uint64, error) {
	if len(timestamps) == 0 {
		return 0, errors.New("cannot calculate the median of an empty timestamp window")
	}

	sorted := make([]uint64, len(timestamps))
	copy(sorted, timestamps)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	return sorted[(len(sorted)-1)/2], nil
}
