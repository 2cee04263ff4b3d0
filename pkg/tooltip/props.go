package tooltip

import "github.com/vango-dev/tooltip/pkg/popper"

// Props are element properties for the rendering layer. The "style" entry
// holds a Style.
type Props map[string]any

// Style is a set of inline CSS declarations.
type Style map[string]string

// TooltipProps merges the engine's popper attributes and style with
// overrides. Caller keys are layered last; style is merged key by key so
// engine declarations the caller does not name survive.
func (c *Controller) TooltipProps(overrides Props) Props {
	base := Props{
		"role":                    "tooltip",
		"data-popper-interactive": c.cfg.interactive,
	}
	return assemble(base, c.state, popper.KeyPopper, overrides)
}

// ArrowProps does the same for the arrow element.
func (c *Controller) ArrowProps(overrides Props) Props {
	base := Props{"data-popper-arrow": true}
	return assemble(base, c.state, popper.KeyArrow, overrides)
}

func assemble(base Props, state popper.State, key string, overrides Props) Props {
	out := make(Props, len(base)+len(overrides)+4)
	for k, v := range state.Attributes[key] {
		out[k] = v
	}
	for k, v := range base {
		out[k] = v
	}

	style := make(Style, len(state.Styles[key]))
	for k, v := range state.Styles[key] {
		style[k] = v
	}

	for k, v := range overrides {
		if k != "style" {
			out[k] = v
			continue
		}
		extra, ok := styleOf(v)
		if !ok {
			out[k] = v
			continue
		}
		for sk, sv := range extra {
			style[sk] = sv
		}
	}
	if _, replaced := out["style"]; !replaced {
		out["style"] = style
	}
	return out
}

func styleOf(v any) (map[string]string, bool) {
	switch s := v.(type) {
	case Style:
		return s, true
	case popper.Style:
		return s, true
	case map[string]string:
		return s, true
	case nil:
		return nil, true
	}
	return nil, false
}
