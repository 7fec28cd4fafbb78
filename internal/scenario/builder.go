package scenario

import (
	"fmt"
	"strings"
	"time"

	"github.com/smil-anim/timing-go/pkg/timegraph"
	"github.com/smil-anim/timing-go/pkg/timing"
)

// Build creates a timegraph holding the scenario's elements and specifiers.
// The graph is not initialized; that is the job of the init step.
// A scenario origin overrides config.Origin.
func Build(sc *Scenario, config timegraph.Config) (*timegraph.Graph, error) {
	if sc.Origin != "" {
		origin, err := time.Parse(time.RFC3339Nano, sc.Origin)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid origin %q: %w", sc.ID, sc.Origin, err)
		}
		config.Origin = origin
	}

	g := timegraph.New(config)
	for _, def := range sc.Elements {
		e, err := g.AddElement(def.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sc.ID, err)
		}
		if def.Dur != "" {
			dur, err := ParseTime(def.Dur)
			if err != nil {
				return nil, fmt.Errorf("%s: element %s: dur: %w", sc.ID, def.ID, err)
			}
			if err := e.SetSimpleDuration(dur); err != nil {
				return nil, fmt.Errorf("%s: %w", sc.ID, err)
			}
		}
		if err := addSpecifiers(e, timing.Begin, def.Begin, g.Origin()); err != nil {
			return nil, fmt.Errorf("%s: %w", sc.ID, err)
		}
		if err := addSpecifiers(e, timing.End, def.End, g.Origin()); err != nil {
			return nil, fmt.Errorf("%s: %w", sc.ID, err)
		}
	}

	for _, def := range sc.Elements {
		if def.Detached {
			if err := g.Detach(def.ID); err != nil {
				return nil, fmt.Errorf("%s: %w", sc.ID, err)
			}
		}
	}
	return g, nil
}

func addSpecifiers(e *timegraph.Element, dir timing.Direction, defs []SpecDef, origin time.Time) error {
	for i, def := range defs {
		s, err := NewSpecifier(e, dir, def, origin)
		if err != nil {
			return fmt.Errorf("element %s %s[%d]: %w", e.ID(), dir, i, err)
		}
		if err := e.AddSpecifier(s); err != nil {
			return err
		}
	}
	return nil
}

// NewSpecifier builds the specifier a definition describes. Invalid
// parameters are reported as *timing.MalformedExpressionError.
func NewSpecifier(owner timing.Owner, dir timing.Direction, def SpecDef, origin time.Time) (timing.Specifier, error) {
	kind := strings.ToLower(def.Kind)
	offset, err := parseOffset(def.Offset)
	if err != nil {
		return nil, malformed(kind, err)
	}

	switch kind {
	case KindOffset:
		return timing.NewOffset(owner, dir, offset)
	case KindIndefinite:
		return timing.NewIndefinite(owner, dir)
	case KindSyncbase:
		edge, err := parseEdge(def.Edge)
		if err != nil {
			return nil, malformed(kind, err)
		}
		return timing.NewSyncbase(owner, dir, def.Ref, edge, offset)
	case KindEvent:
		return timing.NewEvent(owner, dir, def.Target, def.Event, offset)
	case KindRepeat:
		return timing.NewRepeat(owner, dir, def.Ref, def.Iteration, offset)
	case KindAccesskey:
		key, err := parseKey(def.Key)
		if err != nil {
			return nil, malformed(kind, err)
		}
		return timing.NewAccesskey(owner, dir, key, offset)
	case KindWallclock:
		at, err := parseWallclock(def.At, origin)
		if err != nil {
			return nil, malformed(kind, err)
		}
		return timing.NewWallclock(owner, dir, at)
	default:
		return nil, &timing.MalformedExpressionError{Kind: def.Kind, Reason: "unknown specifier kind"}
	}
}

func parseEdge(s string) (timing.Direction, error) {
	switch strings.ToLower(s) {
	case "begin", "":
		return timing.Begin, nil
	case "end":
		return timing.End, nil
	default:
		return 0, fmt.Errorf("invalid edge %q", s)
	}
}

func malformed(kind string, err error) error {
	return &timing.MalformedExpressionError{Kind: kind, Reason: err.Error()}
}
