package mynet

import (
	"net"
	"testing"
)

func TestContaining(t *testing.T) {
	_, nw1, _ := net.ParseCIDR("10.0.0.0/8")
	_, nw2, _ := net.ParseCIDR("192.168.1.0/24")
	addrs := []net.Addr{
		&net.IPNet{IP: net.ParseIP("10.1.2.3"), Mask: nw1.Mask},
		&net.IPNet{IP: net.ParseIP("192.168.1.42"), Mask: nw2.Mask},
	}

	a, ok := containing(net.ParseIP("192.168.1.1"), addrs)
	if !ok || a != "192.168.1.42" {
		t.Errorf("containing(192.168.1.1) = %q, %v", a, ok)
	}

	if a, ok := containing(net.ParseIP("172.16.0.1"), addrs); ok {
		t.Errorf("containing(172.16.0.1) unexpectedly matched %q", a)
	}
}
