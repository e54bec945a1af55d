package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
	"github.com/supermari0/ironic-python-agent/internal/ipatypes"
)

func TestGenericManagerRank(t *testing.T) {
	g := NewGenericManager(nil, "")
	assert.Equal(t, RankGeneric, g.EvaluateHardwareSupport())
}

func TestGenericManagerVerifyHardwareMissingInventoryOnRunnerFailure(t *testing.T) {
	g := NewGenericManager(&failingRunner{}, "")

	err := g.VerifyHardware(ipatypes.Properties{CPUs: 1}, nil, nil)

	var verr *ipaerrors.Verification
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ipaerrors.VerificationMissingInventory, verr.Reason)
}

type failingRunner struct{}

func (failingRunner) Run(argv []string, okExitCodes ...int) ([]byte, []byte, error) {
	return nil, nil, &ipaerrors.CommandExecution{Command: argv, ExitCode: 1}
}

func TestPropertiesFromNodeMissingField(t *testing.T) {
	node := ipatypes.Node{Properties: map[string]interface{}{"cpus": 4}}

	_, err := propertiesFromNode(node)

	var verr *ipaerrors.Verification
	require.ErrorAs(t, err, &verr)
}

func TestPropertiesFromNodeAcceptsFloatAndInt(t *testing.T) {
	node := ipatypes.Node{Properties: map[string]interface{}{
		"cpus":      4,
		"memory_mb": float64(8192),
		"local_gb":  100,
	}}

	props, err := propertiesFromNode(node)
	require.NoError(t, err)
	assert.Equal(t, ipatypes.Properties{CPUs: 4, MemoryMB: 8192, LocalGB: 100}, props)
}
