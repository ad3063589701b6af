package metrics

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// probeAddr is dialed purely for a kernel route lookup; a UDP connect
// sends no packets.
const probeAddr = "8.8.8.8:80"

const probeTimeout = time.Second

// SystemSource reads metrics from the running host: gopsutil for CPU and
// memory counters, sysfs for thermal zones, the netlink routing table
// (via a connectionless dial) for the primary IP.
type SystemSource struct{}

func NewSystemSource() *SystemSource {
	return &SystemSource{}
}

func (*SystemSource) ThermalZone(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	milli, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("thermal zone %s: %w", path, err)
	}
	// Thermal zones report millidegrees Celsius.
	return float64(milli) / 1000.0, nil
}

func (*SystemSource) CPULoadPercent() (float64, error) {
	// Interval 0 measures utilization since the previous call, which
	// lines up with the 1s sampling cadence without blocking the cycle.
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, errors.New("no cpu utilization reported")
	}
	return percents[0], nil
}

func (*SystemSource) MemoryUsage() (uint64, uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, err
	}
	return vm.Used, vm.Total, nil
}

func (*SystemSource) LocalIPv4() (string, error) {
	conn, err := net.DialTimeout("udp4", probeAddr, probeTimeout)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil {
		return "", errors.New("no local address on probe socket")
	}
	return addr.IP.String(), nil
}

func (*SystemSource) HardwareAddr() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	for _, ifc := range ifaces {
		if ifc.Flags&net.FlagLoopback != 0 || len(ifc.HardwareAddr) == 0 {
			continue
		}
		return strings.ToUpper(ifc.HardwareAddr.String()), nil
	}
	return "", errors.New("no interface with a hardware address")
}
