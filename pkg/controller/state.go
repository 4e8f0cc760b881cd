package controller

import (
	"fmt"

	"github.com/wamphlett/softbox-controller/pkg/engine"
)

// State defines the state of the controller and is used
// when publishing events
type State struct {
	Effect  engine.EffectKind
	Base    engine.Color
	Current engine.Color
	Speed   int
	Step    uint64
	Running bool
}

func newState(s engine.Snapshot) State {
	return State{
		Effect:  s.Kind,
		Base:    s.Base,
		Current: s.Current,
		Speed:   s.Speed,
		Step:    s.Step,
		Running: s.Running(),
	}
}

func (s State) String() string {
	return fmt.Sprintf("{effect:%s base:%s current:%s speed:%dms step:%d}", s.Effect, s.Base.Hex(), s.Current.Hex(), s.Speed, s.Step)
}
