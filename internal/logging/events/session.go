package events

import "github.com/atomicstack/uart-console/internal/logging"

type SerialTracer struct{}

type DropReason string

const (
	DropReasonReadError DropReason = "read-error"
	DropReasonReopen    DropReason = "reopen"
	DropReasonQuit      DropReason = "quit"
)

var Serial = SerialTracer{}

func (SerialTracer) Open(port string, baud uint32) {
	logging.Trace("serial.open", map[string]interface{}{"port": port, "baud": baud})
}

func (SerialTracer) OpenFailed(port string, baud uint32, err error) {
	payload := map[string]interface{}{"port": port, "baud": baud}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("serial.open.failed", payload)
}

func (SerialTracer) Drop(port string, reason DropReason, err error) {
	payload := map[string]interface{}{"port": port, "reason": string(reason)}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("serial.drop", payload)
}

func (SerialTracer) Receive(port string, n int) {
	logging.Trace("serial.receive", map[string]interface{}{"port": port, "bytes": n})
}

func (SerialTracer) SelectPort(port string) {
	logging.Trace("serial.select.port", map[string]interface{}{"port": port})
}

func (SerialTracer) SelectRate(baud uint32) {
	logging.Trace("serial.select.rate", map[string]interface{}{"baud": baud})
}

func (SerialTracer) Enumerate(ports []string, err error) {
	payload := map[string]interface{}{"count": len(ports)}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("serial.enumerate", payload)
}
