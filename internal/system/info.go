package system

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gopsnet "github.com/shirou/gopsutil/v4/net"
)

const gb = 1024 * 1024 * 1024

// Info is the host inventory sent to the backend when a device is initialized.
type Info struct {
	CPU          string `json:"cpu"`
	GPU          string `json:"gpu"`
	OS           string `json:"os"`
	Disk         string `json:"disk"`
	Memory       string `json:"memory"`
	Architecture string `json:"architecture"`
	Serial       string `json:"serial"`
}

// Collect gathers the host inventory. Fields a probe cannot answer get a
// placeholder instead of failing the whole collection.
func Collect() Info {
	return Info{
		CPU:          cpuModel(),
		GPU:          gpuField(),
		OS:           osDescription(),
		Disk:         diskUsage(),
		Memory:       memoryTotal(),
		Architecture: runtime.GOARCH,
		Serial:       GenerateSerial(),
	}
}

func cpuModel() string {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 || infos[0].ModelName == "" {
		return "Unknown CPU"
	}
	return strings.TrimSpace(infos[0].ModelName)
}

func gpuField() string {
	if name := GPUName(); name != "" {
		return name
	}
	return "GPU not found"
}

func osDescription() string {
	info, err := host.Info()
	if err != nil {
		return runtime.GOOS
	}
	if info.Platform != "" && info.PlatformVersion != "" {
		return fmt.Sprintf("%s %s", capitalize(info.Platform), info.PlatformVersion)
	}
	return fmt.Sprintf("%s %s", info.OS, info.KernelVersion)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// diskUsage reports root filesystem capacity as "<total>G/<used>G".
func diskUsage() string {
	usage, err := disk.Usage("/")
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("%.2fG/%.2fG", float64(usage.Total)/gb, float64(usage.Used)/gb)
}

func memoryTotal() string {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("%.2f GB", float64(vm.Total)/gb)
}

// PrimaryMAC returns the hardware address of the first non-loopback interface
// that has one, uppercased with separators stripped. Empty when none exists.
func PrimaryMAC() string {
	ifaces, err := gopsnet.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.HardwareAddr == "" {
			continue
		}
		loopback := false
		for _, flag := range iface.Flags {
			if flag == "loopback" {
				loopback = true
				break
			}
		}
		if loopback {
			continue
		}
		return NormalizeMAC(iface.HardwareAddr)
	}
	return ""
}

// NormalizeMAC uppercases a hardware address and strips ":" and "-" separators.
func NormalizeMAC(mac string) string {
	mac = strings.ToUpper(mac)
	mac = strings.ReplaceAll(mac, ":", "")
	return strings.ReplaceAll(mac, "-", "")
}

// GenerateSerial derives the device serial from the primary MAC address.
func GenerateSerial() string {
	return SerialFromMAC(PrimaryMAC())
}

// SerialFromMAC hashes a normalized MAC into the 8-character device serial.
// The serial must stay stable across reinstalls on the same hardware.
func SerialFromMAC(mac string) string {
	if mac == "" {
		return "UNKNOWN"
	}
	sum := sha256.Sum256([]byte(mac))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:8])
}
