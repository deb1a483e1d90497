//go:build mage

package main

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/magefile/mage/mg"
)

// smokeSession is an MCP handshake followed by a tools/list and a
// resources/read; none of them reach the SciX API.
var smokeSession = strings.Join([]string{
	`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"mage","version":"0"}}}`,
	`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
	`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	`{"jsonrpc":"2.0","id":3,"method":"resources/read","params":{"uri":"scix://fields"}}`,
}, "\n") + "\n"

// Smoke builds the CLI and drives "scix serve" through a short MCP session,
// failing unless every request gets a response.
func Smoke() error {
	mg.Deps(Build)

	cmd := exec.Command(binPath(), "serve")
	cmd.Stdin = strings.NewReader(smokeSession)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("scix serve: %w\n%s", err, stderr.String())
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 {
		return fmt.Errorf("expected 3 responses, got %d:\n%s", len(lines), stdout.String())
	}
	for _, l := range lines {
		if strings.Contains(l, `"error"`) {
			return fmt.Errorf("error response: %s", l)
		}
	}
	fmt.Printf("MCP smoke test passed (%d bytes of tool definitions)\n", len(lines[1]))
	return nil
}
