// Package scenario loads and runs scripted tooltip interactions.
//
// A scenario file (YAML, or JSON by extension) declares one or more tooltip
// fixtures and a list of steps. Each step dispatches a gesture, advances the
// virtual clock, changes a controlled value, pushes a reference-hidden
// signal, or checks expectations:
//
//	name: hover with delay
//	config:
//	  trigger: hover
//	  delayShow: 200
//	steps:
//	  - event: {type: hover, target: trigger}
//	  - advance: 199ms
//	  - expect: {visible: false}
//	  - advance: 1ms
//	  - expect: {visible: true, text: Tooltip}
//
// Scenarios run on a headless host, so a run is deterministic and takes no
// wall-clock time.
package scenario
