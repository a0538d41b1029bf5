// Package meeting implements the platform-agnostic meeting-join
// orchestration engine.
//
// The engine drives an arbitrary web meeting client through a fixed
// five-step join protocol (pre-navigation setup, pre-join setup, join
// submission, admission confirmation, post-join stabilization) against a
// browser automation driver, and keeps the agent's media state in sync
// with the meeting UI until the session ends.
//
// # Architecture
//
// The package is built around four core concepts:
//
//  1. Driver interfaces (Page, Frame, DOMTarget, Element): the narrow
//     capability set the engine needs from a browser automation driver.
//     pkg/browser provides the Playwright-backed implementation; tests
//     use the fakes in pkg/meeting/meetingtest.
//  2. Controller: the per-platform capability contract. Adapters in
//     pkg/platform embed BaseController and override the steps they
//     support; steps left on the base signal ErrNotImplemented so
//     missing coverage surfaces immediately instead of silently
//     succeeding.
//  3. Engine: executes the join state machine strictly in sequence,
//     dispatching through the Controller interface. Required-step
//     failures abort the attempt; optional hooks are best-effort.
//  4. AdmissionPoller: a cancellable fixed-interval loop that organizer
//     sessions use to auto-admit waiting participants.
//
// # Selector resolution
//
// Every platform-specific affordance is expressed as an ordered list of
// selector candidates: the first visible match wins. UI variants are
// handled by extending the list, never by branching logic, which keeps
// adapters declarative. ClickFirstVisible treats exhaustion as a null
// result (callers decide whether absence is fatal); WaitForAny treats it
// as ErrElementNotFound.
//
// # Concurrency
//
// One session means one page and one cooperative control flow: join
// steps never overlap, and all selector operations assume exclusive
// access to the page. The only concurrent actors are the admission
// poller (sequential, non-overlapping ticks, explicit stop) and
// fire-and-forget side actions whose failures are logged and swallowed.
package meeting
