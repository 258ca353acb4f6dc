package events

import "github.com/atomicstack/uart-console/internal/logging"

type ModeTracer struct{}

type ListTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	Mode    = ModeTracer{}
	List    = ListTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (ModeTracer) Switch(from, to string) {
	logging.Trace("mode.switch", map[string]interface{}{"from": from, "to": to})
}

func (ModeTracer) Cancel(from string) {
	logging.Trace("mode.cancel", map[string]interface{}{"from": from})
}

func (ListTracer) Cursor(list string, selected int) {
	logging.Trace("list.cursor", map[string]interface{}{"list": list, "selected": selected})
}

func (ListTracer) Jump(list, query string, selected int) {
	logging.Trace("list.jump", map[string]interface{}{"list": list, "query": query, "selected": selected})
}

func (ListTracer) Confirm(list, item string) {
	logging.Trace("list.confirm", map[string]interface{}{"list": list, "item": item})
}

func (ActionTracer) Apply(kind string) {
	logging.Trace("action.apply", map[string]interface{}{"kind": kind})
}

func (ActionTracer) Error(message string) {
	logging.Trace("action.error", map[string]interface{}{"error": message})
}

func (CommandTracer) Submit(line string) {
	logging.Trace("command.submit", map[string]interface{}{"line": line})
}

func (CommandTracer) Parsed(name string, args []string) {
	logging.Trace("command.parsed", map[string]interface{}{"name": name, "args": args})
}

func (CommandTracer) Rejected(line string, err error) {
	payload := map[string]interface{}{"line": line}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.rejected", payload)
}
