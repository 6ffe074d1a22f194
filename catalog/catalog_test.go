package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bachgen/catalog"
)

func TestChoraleForSeedIsDeterministicAndCyclesThroughThree(t *testing.T) {
	names := map[string]bool{}
	for seed := uint32(0); seed < 6; seed++ {
		names[catalog.ChoraleForSeed(seed).Name] = true
	}
	assert.Len(t, names, 3)
	assert.Equal(t, catalog.ChoraleForSeed(0).Name, catalog.ChoraleForSeed(3).Name)
}

func TestInvertReflectsAroundFirstDegree(t *testing.T) {
	degrees := []int{0, 2, 4, 2}
	inverted := catalog.Invert(degrees)
	assert.Equal(t, []int{0, -2, -4, -2}, inverted)
}

func TestAugmentAndDiminishAreInverses(t *testing.T) {
	assert.Equal(t, 960, catalog.Augment(480))
	assert.Equal(t, 480, catalog.Diminish(960))
}
