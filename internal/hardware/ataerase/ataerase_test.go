package ataerase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
)

// fakeRunner scripts hdparm -I output and records every invoked command.
type fakeRunner struct {
	securityOutputs []string // returned in order for successive "hdparm -I" calls
	calls           [][]string
	failOn          string // argv[0]+argv[1] substring that should fail
}

func (f *fakeRunner) Run(argv []string, okExitCodes ...int) ([]byte, []byte, error) {
	f.calls = append(f.calls, argv)

	joined := strings.Join(argv, " ")
	if f.failOn != "" && strings.Contains(joined, f.failOn) {
		return nil, []byte("boom"), &ipaerrors.CommandExecution{Command: argv, ExitCode: 1, Stderr: "boom"}
	}

	if len(argv) >= 2 && argv[0] == "hdparm" && argv[1] == "-I" {
		out := f.securityOutputs[0]
		f.securityOutputs = f.securityOutputs[1:]
		return []byte(out), nil, nil
	}

	return nil, nil, nil
}

const securityBlockEraseable = `Model: fake
Security:
	Master password revision code = 65534
		supported
	not	enabled
	not	locked
	not	frozen
		supported: enhanced erase
Checksum: correct
`

const securityBlockAfterErase = `Model: fake
Security:
	Master password revision code = 65534
		supported
	not	enabled
	not	locked
	not	frozen
Checksum: correct
`

func TestEraseHappyPath(t *testing.T) {
	r := &fakeRunner{securityOutputs: []string{securityBlockEraseable, securityBlockAfterErase}}

	err := Erase(r, "/dev/sda")
	assert.NoError(t, err)

	// exactly the two hdparm write commands, in order, between the two reads
	assert.Len(t, r.calls, 4)
	assert.Equal(t, []string{"hdparm", "-I", "/dev/sda"}, r.calls[0])
	assert.Equal(t, []string{"hdparm", "--user-master", "u", "--security-set-pass", "NULL", "/dev/sda"}, r.calls[1])
	assert.Equal(t, []string{"hdparm", "--user-master", "u", "--security-erase", "NULL", "/dev/sda"}, r.calls[2])
	assert.Equal(t, []string{"hdparm", "-I", "/dev/sda"}, r.calls[3])
}

func TestEraseUnsupported(t *testing.T) {
	r := &fakeRunner{securityOutputs: []string{"Model: fake\nSecurity:\nChecksum: correct\n"}}

	err := Erase(r, "/dev/sda")
	assert.Same(t, ErrNotAttempted, err)
	assert.Len(t, r.calls, 1, "no write command should be issued")
}

func TestEraseAlreadyHasPassword(t *testing.T) {
	block := "Security:\n\tsupported\n\tenabled\n\tnot\tfrozen\n"
	r := &fakeRunner{securityOutputs: []string{block}}

	err := Erase(r, "/dev/sda")

	var bde *ipaerrors.BlockDeviceErase
	assert := assert.New(t)
	assert.ErrorAs(err, &bde)
	assert.Equal(ipaerrors.EraseAlreadyHasPassword, bde.Reason)
	assert.Len(r.calls, 1)
}

func TestEraseFrozen(t *testing.T) {
	block := "Security:\n\tsupported\n\tnot\tenabled\n\tfrozen\n"
	r := &fakeRunner{securityOutputs: []string{block}}

	err := Erase(r, "/dev/sda")

	var bde *ipaerrors.BlockDeviceErase
	assert.ErrorAs(t, err, &bde)
	assert.Equal(t, ipaerrors.EraseFrozen, bde.Reason)
	assert.Len(t, r.calls, 1)
}

func TestEraseUnknownPostState(t *testing.T) {
	r := &fakeRunner{securityOutputs: []string{securityBlockEraseable, securityBlockEraseable}}
	// second read still reports "supported" but not "not enabled" explicitly missing --
	// reuse the pre-erase block which lacks the word "enabled" alone, so force a state
	// where "not enabled" is absent by using a block with "enabled" present instead.
	r.securityOutputs[1] = "Security:\n\tsupported\n\tenabled\n"

	err := Erase(r, "/dev/sda")

	var bde *ipaerrors.BlockDeviceErase
	assert.ErrorAs(t, err, &bde)
	assert.Equal(t, ipaerrors.EraseUnknownPostState, bde.Reason)
}
