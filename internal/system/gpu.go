package system

import (
	"os"
	"os/exec"
	"strings"
)

// DetectGPU detects the GPU vendor on the host system
// Returns "nvidia", "amd", "intel", or "" if no GPU detected
func DetectGPU() string {
	if hasNvidiaGPU() {
		return "nvidia"
	}

	if hasAMDGPU() {
		return "amd"
	}

	if hasIntelGPU() {
		return "intel"
	}

	return "" // No GPU detected
}

// GPUName returns the GPU model name when a vendor tool can report one,
// falling back to the bare vendor. Empty string means no GPU was detected.
func GPUName() string {
	vendor := DetectGPU()
	if vendor == "nvidia" {
		// nvidia-smi reports one model per line for multi-GPU hosts; the
		// registration payload only carries the first.
		out, err := exec.Command("nvidia-smi", "--query-gpu=name", "--format=csv,noheader").Output()
		if err == nil {
			if name, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n"); name != "" {
				return name
			}
		}
	}
	return vendor
}

// hasNvidiaGPU checks if nvidia-smi is available
func hasNvidiaGPU() bool {
	_, err := exec.LookPath("nvidia-smi")
	return err == nil
}

// hasAMDGPU checks if ROCm is installed
func hasAMDGPU() bool {
	if _, err := os.Stat("/opt/rocm"); err == nil {
		return true
	}

	if _, err := exec.LookPath("rocm-smi"); err == nil {
		return true
	}

	return false
}

// hasIntelGPU checks if Intel GPU tools are available
func hasIntelGPU() bool {
	if _, err := exec.LookPath("intel_gpu_top"); err == nil {
		return true
	}

	if _, err := os.Stat("/usr/lib/x86_64-linux-gnu/intel-opencl"); err == nil {
		return true
	}

	return false
}
