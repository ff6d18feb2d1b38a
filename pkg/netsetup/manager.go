// Package netsetup joins WiFi networks through the macOS networksetup tool.
package netsetup

import (
	"context"
	"errors"
	"regexp"
	"runtime"
	"strings"

	"github.com/go-logr/logr"

	"github.com/elephantatech/QR-Network-Scanner/pkg/wifiqr"
)

var ErrUnsupportedPlatform = errors.New("this application only supports macOS")

const (
	DefaultInterface = "en0"
	DefaultTool      = "networksetup"
)

// Result is the outcome of one networksetup invocation. On failure Output
// holds the diagnostic text printed by the tool.
type Result struct {
	Success bool   `json:"success" yaml:"success"`
	Output  string `json:"output" yaml:"output"`
}

type Config struct {
	Interface string
	Tool      string
}

// Manager adds and activates WiFi networks on one hardware port.
type Manager struct {
	log    logr.Logger
	iface  string
	tool   string
	runner Runner
}

// NewManager returns a Manager running the real networksetup tool. It fails
// with ErrUnsupportedPlatform anywhere but macOS.
func NewManager(log logr.Logger, cfg Config) (*Manager, error) {
	if runtime.GOOS != "darwin" {
		return nil, ErrUnsupportedPlatform
	}
	return newManager(log, cfg, ExecRunner{}), nil
}

func newManager(log logr.Logger, cfg Config, runner Runner) *Manager {
	if cfg.Interface == "" {
		cfg.Interface = DefaultInterface
	}
	if cfg.Tool == "" {
		cfg.Tool = DefaultTool
	}
	return &Manager{
		log:    log.WithName("netsetup"),
		iface:  cfg.Interface,
		tool:   cfg.Tool,
		runner: runner,
	}
}

func (m *Manager) Interface() string {
	return m.iface
}

func (m *Manager) run(ctx context.Context, args ...string) Result {
	stdout, stderr, err := m.runner.Run(ctx, m.tool, args...)
	if err != nil {
		out := stderr
		if strings.TrimSpace(out) == "" {
			out = err.Error()
		}
		return Result{Success: false, Output: out}
	}
	return Result{Success: true, Output: stdout}
}

var currentNetwork = regexp.MustCompile(`Current Wi-Fi Network: (.+)`)

// CurrentNetwork returns the SSID the interface is associated with, if any.
func (m *Manager) CurrentNetwork(ctx context.Context) (string, bool) {
	r := m.run(ctx, "-getairportnetwork", m.iface)
	if !r.Success {
		m.log.V(1).Info("Unable to get current network", "interface", m.iface, "output", r.Output)
		return "", false
	}
	match := currentNetwork.FindStringSubmatch(r.Output)
	if match == nil {
		return "", false
	}
	ssid := strings.TrimSpace(match[1])
	return ssid, ssid != ""
}

// ToolSecurity maps a QR security type onto the names networksetup expects.
func ToolSecurity(sec wifiqr.Security) string {
	switch sec {
	case wifiqr.WEP:
		return "WEP"
	case wifiqr.NoPass, wifiqr.Open:
		return "OPEN"
	default:
		return "WPA2"
	}
}

// AddNetwork puts the network first in the preferred networks list.
//
// hidden has no effect on the command: networksetup needs no flag for
// hidden networks, the OS probes for them.
func (m *Manager) AddNetwork(ctx context.Context, ssid, password string, security wifiqr.Security, hidden bool) Result {
	args := []string{"-addpreferredwirelessnetworkatindex", m.iface, ssid, "0", ToolSecurity(security)}
	if password != "" {
		args = append(args, password)
	}
	m.log.Info("Adding preferred network", "interface", m.iface, "ssid", ssid, "security", ToolSecurity(security), "hidden", hidden)
	return m.run(ctx, args...)
}

// Activate joins the network.
func (m *Manager) Activate(ctx context.Context, ssid, password string) Result {
	args := []string{"-setairportnetwork", m.iface, ssid}
	if password != "" {
		args = append(args, password)
	}
	m.log.Info("Joining network", "interface", m.iface, "ssid", ssid)
	return m.run(ctx, args...)
}

var hardwarePort = regexp.MustCompile(`(?m)^Hardware Port: (.+)\nDevice: (\S+)`)

// WiFiInterface looks up the device name of the Wi-Fi hardware port, e.g. en0.
func (m *Manager) WiFiInterface(ctx context.Context) (string, bool) {
	r := m.run(ctx, "-listallhardwareports")
	if !r.Success {
		m.log.V(1).Info("Unable to list hardware ports", "output", r.Output)
		return "", false
	}
	for _, match := range hardwarePort.FindAllStringSubmatch(r.Output, -1) {
		port := strings.TrimSpace(match[1])
		if port == "Wi-Fi" || port == "AirPort" {
			return match[2], true
		}
	}
	return "", false
}
