package mynet

import (
	"fmt"
	"net"

	"github.com/go-logr/logr"
	"github.com/jackpal/gateway"
)

// Route describes the default route after a network change: the gateway and
// the local interface sitting on the same network.
type Route struct {
	Gateway   net.IP `json:"gateway" yaml:"gateway"`
	Interface string `json:"interface" yaml:"interface"`
	Address   string `json:"address" yaml:"address"`
}

// DefaultRoute finds the network gateway and the interface that reaches it.
func DefaultRoute(log logr.Logger) (*Route, error) {
	gw, err := gateway.DiscoverGateway()
	if err != nil {
		log.Error(err, "Finding network gateway")
		return nil, err
	}
	log.V(1).Info("Found gateway", "gateway", gw.String())

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Error(err, "Listing interfaces")
		return nil, err
	}
	route, ok := matchGateway(log, gw, ifaces)
	if !ok {
		return nil, fmt.Errorf("did not find any interface on the same network as the gateway %v", gw)
	}
	return route, nil
}

func matchGateway(log logr.Logger, gw net.IP, ifaces []net.Interface) (*Route, bool) {
	for _, i := range ifaces {
		addrs, err := i.Addrs()
		if err != nil {
			log.V(1).Info("Skipping interface", "interface", i.Name, "error", err)
			continue
		}
		if a, ok := containing(gw, addrs); ok {
			return &Route{Gateway: gw, Interface: i.Name, Address: a}, true
		}
	}
	return nil, false
}

// containing returns the first address whose network contains ip.
func containing(ip net.IP, addrs []net.Addr) (string, bool) {
	for _, a := range addrs {
		addr, nw, err := net.ParseCIDR(a.String())
		if err != nil {
			continue
		}
		if nw.Contains(ip) {
			return addr.String(), true
		}
	}
	return "", false
}
