package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministicForAGivenSeed(t *testing.T) {
	a := New(42)
	b := New(42)
	assert.Equal(t, a.Int63(), b.Int63())
	assert.Equal(t, a.Float32(), b.Float32())
}

func TestDirichletSumsToOne(t *testing.T) {
	r := New(1)
	samples := Dirichlet(r, 0.3, 5)
	assert.Len(t, samples, 5)
	var sum float64
	for _, s := range samples {
		assert.True(t, s >= 0)
		sum += s
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestSampleCDFNeverReturnsZeroProbabilityIndex(t *testing.T) {
	r := New(2)
	dist := []float32{0, 0.5, 0, 0.5}
	for i := 0; i < 50; i++ {
		a := SampleCDF(r, dist)
		assert.True(t, a == 1 || a == 3)
	}
}

func TestSampleCDFFallsBackToLastIndexWhenAllZero(t *testing.T) {
	r := New(3)
	dist := []float32{0, 0, 0}
	assert.Equal(t, 2, SampleCDF(r, dist))
}
