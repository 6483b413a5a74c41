package counters

// InterfaceFilter decides whether a network interface counts toward Traffic.
type InterfaceFilter func(name string) bool

// AllInterfaces accepts every interface, loopback included.
func AllInterfaces(string) bool { return true }

// IsLoopback reports whether name is the Linux loopback device.
func IsLoopback(name string) bool {
	return name == "lo"
}

// ExcludeInterfaces returns a filter that rejects the named interfaces and,
// when loopback is true, the loopback device.
func ExcludeInterfaces(names []string, loopback bool) InterfaceFilter {
	if len(names) == 0 && !loopback {
		return AllInterfaces
	}

	skip := make(map[string]bool, len(names))
	for _, n := range names {
		skip[n] = true
	}

	return func(name string) bool {
		if loopback && IsLoopback(name) {
			return false
		}
		return !skip[name]
	}
}
