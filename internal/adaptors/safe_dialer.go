package adaptors

import (
	"fmt"
	"net/netip"
	"syscall"

	"seo_meta_analyzer/internal/pkg/errors"
)

var errBlockedAddress = errors.New("request to private/reserved network address is not allowed")

// reservedPrefixes are ranges not covered by the netip.Addr helpers.
var reservedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),   // carrier-grade NAT
	netip.MustParsePrefix("192.0.0.0/24"),    // IETF protocol assignments
	netip.MustParsePrefix("192.0.2.0/24"),    // TEST-NET-1
	netip.MustParsePrefix("198.18.0.0/15"),   // benchmarking
	netip.MustParsePrefix("198.51.100.0/24"), // TEST-NET-2
	netip.MustParsePrefix("203.0.113.0/24"),  // TEST-NET-3
}

// blockPrivateAddresses runs after DNS resolution, so it also covers rebinding.
func blockPrivateAddresses(_ string, address string, _ syscall.RawConn) error {
	addrPort, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %w", errBlockedAddress, err)
	}

	if isBlockedIP(addrPort.Addr()) {
		return fmt.Errorf("%w: %s", errBlockedAddress, addrPort.Addr())
	}

	return nil
}

func isBlockedIP(addr netip.Addr) bool {
	addr = addr.Unmap()

	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return true
	}

	for _, p := range reservedPrefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
