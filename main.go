package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/uart-console/internal/app"
	"github.com/atomicstack/uart-console/internal/backend"
	"github.com/atomicstack/uart-console/internal/config"
	"github.com/atomicstack/uart-console/internal/logging"
	"github.com/atomicstack/uart-console/internal/logging/events"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("no terminal attached; run uart-console from an interactive terminal")

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	transport := backend.NewSerialTransport()
	tty := collectTTYDetails()
	events.App.Start(startupTracePayload(runtimeCfg, transport, tty))

	if err := requireTerminal(tty); err != nil {
		exitWithError(err)
	}
	if err := app.Run(runtimeCfg.App, transport); err != nil {
		exitWithError(err)
	}
}

func exitWithError(err error) {
	logging.Error(err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// requireTerminal refuses to start the full-screen UI without a terminal to
// draw on.
func requireTerminal(tty ttyDetails) error {
	if tty.Detected == nil {
		return errNoTerminal
	}
	return nil
}

// startupTracePayload bundles the resolved configuration with the serial and
// terminal context the session starts from.
func startupTracePayload(cfg config.Config, transport backend.Transport, tty ttyDetails) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["log-file"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"serial": collectSerialDetails(cfg.App, transport),
		"tty":    tty,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	return payload
}

type serialDetails struct {
	Port       string   `json:"port"`
	Baud       uint32   `json:"baud"`
	Rates      []string `json:"rates"`
	Ports      []string `json:"ports"`
	PortsError string   `json:"portsError,omitempty"`
}

// collectSerialDetails records the initial port and rate and what the first
// enumeration sees.
func collectSerialDetails(cfg app.Config, transport backend.Transport) serialDetails {
	details := serialDetails{Port: cfg.Port, Baud: cfg.Baud, Rates: cfg.Rates, Ports: []string{}}
	if transport == nil {
		details.PortsError = "no transport"
		return details
	}
	ports, err := transport.Ports()
	if err != nil {
		details.PortsError = err.Error()
		return details
	}
	if ports != nil {
		details.Ports = ports
	}
	return details
}

type ttyDetails struct {
	Detected *ttyDetected `json:"detected,omitempty"`
	Streams  []ttyStream  `json:"streams"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyStream struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails checks the standard descriptors for a terminal and its
// size. The first one that reports a size is the detected terminal.
func collectTTYDetails() ttyDetails {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	var details ttyDetails
	for i, f := range files {
		stream := ttyStream{Name: names[i]}
		fd := int(f.Fd())
		if fd >= 0 && term.IsTerminal(fd) {
			stream.IsTerminal = true
			width, height, err := term.GetSize(fd)
			switch {
			case err != nil:
				stream.Error = err.Error()
			case details.Detected == nil:
				details.Detected = &ttyDetected{Source: stream.Name, Width: width, Height: height}
				fallthrough
			default:
				stream.Width, stream.Height = width, height
			}
		}
		details.Streams = append(details.Streams, stream)
	}
	return details
}
