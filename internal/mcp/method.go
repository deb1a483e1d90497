// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

// Method is the closed set of JSON-RPC methods the server understands.
type Method int

const (
	MethodUnknown Method = iota
	MethodInitialize
	MethodInitialized
	MethodPing
	MethodToolsList
	MethodToolsCall
	MethodResourcesList
	MethodResourcesRead
	MethodCancelled
)

var methodNames = [...]string{
	MethodUnknown:       "",
	MethodInitialize:    "initialize",
	MethodInitialized:   "notifications/initialized",
	MethodPing:          "ping",
	MethodToolsList:     "tools/list",
	MethodToolsCall:     "tools/call",
	MethodResourcesList: "resources/list",
	MethodResourcesRead: "resources/read",
	MethodCancelled:     "notifications/cancelled",
}

// ParseMethod maps a wire method name onto Method. Names outside the set
// yield MethodUnknown.
func ParseMethod(name string) Method {
	for m, n := range methodNames {
		if n != "" && n == name {
			return Method(m)
		}
	}
	return MethodUnknown
}

func (m Method) String() string {
	if m <= MethodUnknown || int(m) >= len(methodNames) {
		return "unknown"
	}
	return methodNames[m]
}

// requiresInit reports whether the method is refused before initialize.
func (m Method) requiresInit() bool {
	switch m {
	case MethodToolsList, MethodToolsCall, MethodResourcesList, MethodResourcesRead:
		return true
	default:
		return false
	}
}
