package mechanics

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// MaxDiceCount caps a single free-form roll.
const MaxDiceCount = 100

// DiceSides lists the dice offered by the roll menu, d20 first by default.
var DiceSides = []int{4, 6, 8, 10, 12, 20, 100}

// DefaultDieIndex is the position of the d20 in DiceSides.
const DefaultDieIndex = 5

// NewRand returns a random source seeded from crypto/rand, falling back to the clock.
func NewRand() *rand.Rand {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
}

// RollDice rolls count dice with the given number of sides.
// count 0 yields an empty slice; sides below 1 are treated as 1.
func RollDice(rng *rand.Rand, count, sides int) []int {
	if count <= 0 {
		return []int{}
	}
	if sides < 1 {
		sides = 1
	}
	results := make([]int, count)
	for i := range results {
		results[i] = rollDie(rng, sides)
	}
	return results
}

// Sum adds the results of a roll.
func Sum(results []int) int {
	total := 0
	for _, v := range results {
		total += v
	}
	return total
}

// ParseDiceCount reads a dice count typed by the player.
// Malformed input becomes one die; large counts are capped.
func ParseDiceCount(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 1
	}
	return min(n, MaxDiceCount)
}

func rollDie(rng *rand.Rand, sides int) int {
	return rng.Intn(sides) + 1
}
