package edunet

import "github.com/juju/errors"

// ArpCacheEntry is a learned association of an IPv4 address and a hardware address.
type ArpCacheEntry struct {
	ProtocolAddress Ip4Address
	HardwareAddress MacAddress
}

// HasHardwareAddress reports whether the cache holds an entry for ip.
func (m *ArpModule) HasHardwareAddress(ip Ip4Address) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.lookupLocked(ip)
	return ok
}

// GetHardwareAddress returns the cached hardware address for ip. A missing entry is a NotFound
// error; check HasHardwareAddress first or use ResolveAddress.
func (m *ArpModule) GetHardwareAddress(ip Ip4Address) (MacAddress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mac, ok := m.lookupLocked(ip)
	if !ok {
		return MacAddress{}, errors.NotFoundf("hardware address for protocol address %s", ip)
	}
	return mac, nil
}

// SetEntry overwrites the hardware address of an existing entry or appends a new one.
func (m *ArpModule) SetEntry(ip Ip4Address, mac MacAddress) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.cache {
		if m.cache[i].ProtocolAddress == ip {
			m.cache[i].HardwareAddress = mac
			return
		}
	}

	m.cache = append(m.cache, ArpCacheEntry{ProtocolAddress: ip, HardwareAddress: mac})
}

// Entries returns a copy of the cache.
func (m *ArpModule) Entries() []ArpCacheEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]ArpCacheEntry, len(m.cache))
	copy(entries, m.cache)
	return entries
}

// lookupLocked scans the cache. m.mu must be held.
func (m *ArpModule) lookupLocked(ip Ip4Address) (MacAddress, bool) {
	for _, e := range m.cache {
		if e.ProtocolAddress == ip {
			return e.HardwareAddress, true
		}
	}
	return MacAddress{}, false
}
