package rescue

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
)

var saltPattern = regexp.MustCompile(`^[A-Za-z0-9]{2}$`)

func TestRandomSaltMatchesPattern(t *testing.T) {
	salt, err := RandomSalt()
	require.NoError(t, err)
	assert.Regexp(t, saltPattern, salt)
}

func TestHashVerifyRoundTrip(t *testing.T) {
	salt, err := RandomSalt()
	require.NoError(t, err)

	hash, err := Hash("hunter2", salt)
	require.NoError(t, err)

	assert.True(t, Verify("hunter2", hash))
	assert.False(t, Verify("wrongpassword", hash))
}

func TestHashRejectsBadSaltLength(t *testing.T) {
	_, err := Hash("hunter2", "x")
	assert.Error(t, err)
}

type fakeRunner struct {
	argv []string
}

func (f *fakeRunner) Run(argv []string, okExitCodes ...int) ([]byte, []byte, error) {
	f.argv = argv
	return nil, nil, nil
}

func TestPrepareRescueUsermodInvokesUsermod(t *testing.T) {
	r := &fakeRunner{}
	err := PrepareRescue(ShadowModeUsermod, r, "$1$abcd$hash")
	require.NoError(t, err)
	assert.Equal(t, []string{"usermod", "-p", "$1$abcd$hash", "root"}, r.argv)
}

func TestPrepareRescueRejectsEmptyHash(t *testing.T) {
	err := PrepareRescue(ShadowModeUsermod, &fakeRunner{}, "")

	var invalid *ipaerrors.InvalidCommandParams
	require.ErrorAs(t, err, &invalid)
}
