package exp

import "sort"

// MaxLevel is the highest level of the table.
const MaxLevel = 1000

// cumulativeExp[l] is the total exp needed to reach level l.
var cumulativeExp = func() []int64 {
	table := make([]int64, MaxLevel)
	var sum int64
	for l := 0; l < MaxLevel; l++ {
		if l >= 2 {
			sum += int64(10*l*l + 200*l - 200)
		}
		table[l] = sum
	}
	return table
}()

// ExpForLevel returns the total exp needed to reach level.
func ExpForLevel(level int) int64 {
	level = min(max(level, 0), MaxLevel-1)
	return cumulativeExp[level]
}

// LevelForExp returns the level reached with total exp. Players start at level 1.
func LevelForExp(total int64) int {
	// first level whose requirement exceeds total
	l := sort.Search(MaxLevel, func(i int) bool { return cumulativeExp[i] > total })
	return max(l-1, 1)
}
