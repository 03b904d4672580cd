// SPDX-License-Identifier: GPL-3.0-or-later

package wireline_test

import (
	"context"
	"fmt"

	"github.com/bassosimone/runtimex"
	"github.com/wireline/wireline"
)

// This example shows how to establish a mock connection preloaded with
// server output, exchange messages over it, and inspect what the client
// wrote through the capture view.
func Example_mockConnection() {
	ctx := context.Background()

	// Create a config; the mock path never touches the network, so the
	// default dialer, resolver, and TLS engine are left untouched.
	cfg := wireline.NewConfig()

	// Describe the attempt: the in-memory variant, preloaded with one
	// complete server message.
	cc := &wireline.ConnConfig{
		UseMock:          true,
		Encoding:         "utf8",
		MockInitialValue: "hello\n",
	}

	conn := runtimex.PanicOnError1(wireline.Establish(ctx, cfg, cc, wireline.DefaultSLogger()))
	defer conn.Close()

	// Read the preloaded server message.
	greeting := runtimex.PanicOnError1(conn.ReadMessage())
	fmt.Println(greeting)

	// Send a message; the terminator is appended automatically.
	runtimex.Assert(conn.WriteMessage("NICK foo") == nil)
	runtimex.Assert(conn.Flush() == nil)

	// The capture view decodes everything the client wrote.
	view := runtimex.PanicOnError1(conn.CaptureView())
	for _, msg := range runtimex.PanicOnError1(view.Messages()) {
		fmt.Println(msg)
	}

	// Output:
	// hello
	// NICK foo
}
