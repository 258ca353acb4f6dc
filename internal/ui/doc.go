// Package ui contains the Bubble Tea program that drives the serial console.
// Model focuses on message orchestration while components own their input
// handling and rendering.
//
// Message flow:
//   - frameMsg fires every poll interval. Each frame re-enumerates serial
//     ports into the port list and drains the connection once; Bubble Tea
//     redraws after the update.
//   - tea.KeyMsg first checks the global keys (cancel, ctrl+c, receive
//     scrolling). Anything else goes to the Component that owns the current
//     Mode, which returns an Action. The model applies the Action and then
//     runs the frame step so the next draw shows fresh input. Only quit skips
//     the step.
//   - View wraps received text incrementally (receiveLines) and hands the
//     viewport just the rows on screen.
//
// State ownership:
//   - Selection and line editing live in internal/ui/state (SelectableList,
//     TextEditor) and are mutated only by their components.
//   - The connection, chosen port and rate, and received text live in
//     internal/state.Session. Only the model's action and frame paths call it.
//   - Command lines are tokenised and dispatched by internal/ui/command.
package ui
