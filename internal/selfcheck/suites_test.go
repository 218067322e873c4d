package selfcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofrun/pkg/proof"
)

func TestBuiltinSuitesAllPass(t *testing.T) {
	reg := proof.NewRegistry()
	Register(reg)
	reg.Populate()

	require.NoError(t, reg.Run(proof.Options{}, proof.NopReporter{}))

	assert.Empty(t, reg.Failures())
	assert.NotEmpty(t, reg.Passed())
	assert.ElementsMatch(t, []string{"Barrier", "Fixture", "Rendezvous"}, reg.Suites())
}

func TestFixtureSuiteConcatenatesRegistrations(t *testing.T) {
	reg := proof.NewRegistry()
	Register(reg)
	reg.Populate()

	// "Fixture" is declared by two registration thunks whose proofs are
	// concatenated under one suite name.
	assert.Len(t, reg.Cases("Fixture"), 6)
}
