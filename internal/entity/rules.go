package entity

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

// CompositeSize is the raw size of the board of boards.
const CompositeSize = 9

// HowManyToWin maps board size -> players count -> run length required to win.
var HowManyToWin = map[int]map[int]int{
	3:             {2: 3},
	4:             {2: 4, 3: 3, 4: 3},
	5:             {2: 4, 3: 4, 4: 3},
	6:             {2: 5, 3: 4, 4: 4},
	7:             {2: 5, 3: 5, 4: 4},
	8:             {2: 5, 3: 5, 4: 4},
	CompositeSize: {2: 3},
}

// RunLength returns the winning run length for the given board size and players count.
func RunLength(size, players int) (int, error) {
	counts, ok := HowManyToWin[size]
	if !ok {
		return 0, fmt.Errorf("%w: %d", apperror.ErrUnsupportedSize, size)
	}

	run, ok := counts[players]
	if !ok {
		return 0, fmt.Errorf("%w: %d players on size %d", apperror.ErrUnsupportedPlayers, players, size)
	}

	return run, nil
}

// PlayerCounts returns the legal players counts for a board size in ascending order.
func PlayerCounts(size int) []int {
	counts := make([]int, 0, MaxPlayers)
	for count := range HowManyToWin[size] {
		counts = append(counts, count)
	}
	slices.Sort(counts)

	return counts
}

// SizesForPlayers returns the board sizes that allow at least the given players count.
func SizesForPlayers(players int) []int {
	sizes := make([]int, 0, len(HowManyToWin))
	for size, counts := range HowManyToWin {
		for count := range counts {
			if count >= players {
				sizes = append(sizes, size)
				break
			}
		}
	}
	slices.Sort(sizes)

	return sizes
}

// RandomSize picks one of the sizes that allow the given players count.
func RandomSize(players int) int {
	sizes := SizesForPlayers(players)
	if len(sizes) == 0 {
		return 0
	}

	return sizes[rand.Intn(len(sizes))] //nolint: gosec // it's ok
}

// RandomPlayersCount picks a legal players count for size that is not lower than minimum.
func RandomPlayersCount(size, minimum int) int {
	counts := make([]int, 0, MaxPlayers)
	for _, count := range PlayerCounts(size) {
		if count >= minimum {
			counts = append(counts, count)
		}
	}

	if len(counts) == 0 {
		return 0
	}

	return counts[rand.Intn(len(counts))] //nolint: gosec // it's ok
}
