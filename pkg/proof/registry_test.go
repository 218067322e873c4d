package proof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSuiteConcatenatesThunks(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterSuite("Shared", func(r *Registry) {
		r.Ensure("first", func(b *Base) {})
	})
	reg.RegisterSuite("Shared", func(r *Registry) {
		r.Ensure("second", func(b *Base) {})
	})
	reg.Populate()

	cases := reg.Cases("Shared")
	require.Len(t, cases, 2)
	assert.Equal(t, "first", cases[0].Name)
	assert.Equal(t, "second", cases[1].Name)
}

func TestPopulateBindsActiveSuite(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterSuite("Alpha", func(r *Registry) {
		r.Ensure("case", func(b *Base) {})
	})
	reg.RegisterSuite("Beta", func(r *Registry) {
		r.Ensure("case", func(b *Base) {})
	})
	reg.Populate()

	assert.ElementsMatch(t, []string{"Alpha", "Beta"}, reg.Suites())
	for _, suite := range reg.Suites() {
		for _, c := range reg.Cases(suite) {
			assert.Equal(t, suite, c.Suite)
			assert.Equal(t, suite, c.fixture.base().SuiteName())
			assert.Equal(t, c.Name, c.fixture.base().ProofName())
		}
	}
}

func TestDuplicateProofNamesBothRunAndReport(t *testing.T) {
	reg := NewRegistry()
	ran := 0
	reg.RegisterSuite("Dups", func(r *Registry) {
		r.Ensure("same", func(b *Base) { ran++ })
		r.Ensure("same", func(b *Base) { ran++ })
	})
	reg.Populate()

	require.NoError(t, reg.Run(Options{}, NopReporter{}))
	assert.Equal(t, 2, ran)
	assert.Equal(t, []string{"Dups::same", "Dups::same"}, reg.Passed())
}

func TestRegistrationTokenBindsDeclarations(t *testing.T) {
	reg := NewRegistry()
	token := reg.RegisterSuite("Any", func(r *Registry) {})
	assert.True(t, token)
}

// Populate is single-shot by contract; a second call duplicates every case
// list. This pins the documented usage fault rather than guarding it.
func TestPopulateTwiceDuplicatesCases(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterSuite("Once", func(r *Registry) {
		r.Ensure("case", func(b *Base) {})
	})
	reg.Populate()
	reg.Populate()

	assert.Len(t, reg.Cases("Once"), 2)
}
