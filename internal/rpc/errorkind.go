package rpc

import "github.com/supermari0/ironic-python-agent/internal/ipaerrors"

// errorKind maps a typed error from internal/ipaerrors to its response
// error kind string, via a type switch rather than a string comparison
// on Error().
func errorKind(err error) string {
	switch err.(type) {
	case *ipaerrors.InvalidCommandParams:
		return "InvalidCommandParams"
	case *ipaerrors.ImageDownload:
		return "ImageDownload"
	case *ipaerrors.ImageChecksum:
		return "ImageChecksum"
	case *ipaerrors.ImageFormat:
		return "ImageFormat"
	case *ipaerrors.ImageWrite:
		return "ImageWrite"
	case *ipaerrors.ConfigDriveTooLarge:
		return "ConfigDriveTooLarge"
	case *ipaerrors.ConfigDriveWrite:
		return "ConfigDriveWrite"
	case *ipaerrors.BlockDevice:
		return "BlockDevice"
	case *ipaerrors.BlockDeviceErase:
		return "BlockDeviceErase"
	case *ipaerrors.Decommission:
		return "Decommission"
	case *ipaerrors.WrongDecommissionVersion:
		return "WrongDecommissionVersion"
	case *ipaerrors.Verification:
		return "Verification"
	case *ipaerrors.VerificationFailed:
		return "VerificationFailed"
	case *ipaerrors.CommandExecution:
		return "CommandExecution"
	case *ipaerrors.SystemReboot:
		return "SystemReboot"
	default:
		return "Unknown"
	}
}
