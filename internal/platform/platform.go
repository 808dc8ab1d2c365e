package platform

import (
	"fmt"
	"runtime"
)

// SupportedOS represents operating systems with a stats provider
type SupportedOS string

const (
	Linux   SupportedOS = "linux"
	Windows SupportedOS = "windows"
)

// GetOS returns the current operating system
func GetOS() SupportedOS {
	return SupportedOS(runtime.GOOS)
}

// IsSupported reports whether os has a stats provider
func IsSupported(os SupportedOS) bool {
	return os == Linux || os == Windows
}

// ValidateSupport returns an error if resource monitoring cannot run on this host
func ValidateSupport() error {
	if !IsSupported(GetOS()) {
		return fmt.Errorf("unsupported operating system: %s. Supported: %s, %s", runtime.GOOS, Linux, Windows)
	}
	return nil
}
