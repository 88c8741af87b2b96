package scene

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// NumStages is the number of crossfade stages the fragment program cycles through.
	NumStages = 5
	// LerpStep is added to the crossfade value every frame.
	LerpStep = 0.005
	// TimeStep is added to the scene time every frame.
	TimeStep = 0.5
	// TimeWrap is the bound past which the scene time restarts at zero.
	TimeWrap = 1e8
	// TimeScale divides the scene time before it is pushed as u_Time.
	TimeScale = 50.0
)

// Scene selects which procedural scene the fragment program renders.
type Scene int

const (
	LerpFun Scene = iota
	Chess
)

var ErrUnknownScene = errors.New("unknown scene")

// Scenes lists every scene in selector order.
var Scenes = []Scene{LerpFun, Chess}

func (s Scene) String() string {
	switch s {
	case LerpFun:
		return "LerpFun"
	case Chess:
		return "Chess"
	default:
		return fmt.Sprintf("Scene(%d)", int(s))
	}
}

// Selector is the value the fragment program expects in u_SceneSelect.
func (s Scene) Selector() float32 {
	return float32(s)
}

// ParseScene accepts a scene name, case-insensitively.
func ParseScene(name string) (Scene, error) {
	for _, s := range Scenes {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// Effect names one of the boolean post effects.
type Effect int

const (
	AmbientOcclusion Effect = iota
	LensEffect
	DarkScene
	BarrelDistortion

	numEffects
)

// Effects lists every effect in control-panel order.
var Effects = []Effect{AmbientOcclusion, LensEffect, DarkScene, BarrelDistortion}

func (e Effect) String() string {
	switch e {
	case AmbientOcclusion:
		return "AO"
	case LensEffect:
		return "LensEffect"
	case DarkScene:
		return "DarkScene"
	case BarrelDistortion:
		return "BarrelDistortion"
	default:
		return fmt.Sprintf("Effect(%d)", int(e))
	}
}

// State is the mutable per-process scene state sampled by the render loop.
// It is not safe for concurrent use; all mutation happens on the render thread.
type State struct {
	Time      float64
	Scene     Scene
	LerpStage int
	LerpValue float64

	effects [numEffects]bool
}

// NewState returns the startup state: LerpFun, stage 0, no crossfade progress,
// ambient occlusion on and every other effect off.
func NewState() *State {
	s := &State{}
	s.effects[AmbientOcclusion] = true
	return s
}

// SelectScene switches scenes and restarts the scene clock.
func (s *State) SelectScene(sc Scene) {
	s.Scene = sc
	s.Time = 0
}

// SceneSelect returns the selector value for the current scene.
func (s *State) SceneSelect() float32 {
	return s.Scene.Selector()
}

// AdvanceStage moves to the next crossfade stage and restarts the crossfade.
func (s *State) AdvanceStage() {
	s.LerpValue = 0
	s.LerpStage = (s.LerpStage + 1) % NumStages
}

// StepLerp advances the crossfade by one frame, saturating at 1.
func (s *State) StepLerp() {
	if s.LerpValue < 1 {
		s.LerpValue += LerpStep
		if s.LerpValue > 1 {
			s.LerpValue = 1
		}
	}
}

// StepTime advances the scene clock by one frame.
func (s *State) StepTime() {
	s.Time += TimeStep
	if s.Time > TimeWrap {
		s.Time = 0
	}
}

// PushedStage is the stage index handed to the fragment program: the stage
// that is being faded out of, one behind LerpStage.
func (s *State) PushedStage() int {
	return (s.LerpStage + NumStages - 1) % NumStages
}

// ShaderTime is the value pushed as u_Time.
func (s *State) ShaderTime() float32 {
	return float32(s.Time / TimeScale)
}

func (s *State) SetEffect(e Effect, on bool) {
	if int(e) < 0 || int(e) >= len(s.effects) {
		return
	}
	s.effects[e] = on
}

func (s *State) Effect(e Effect) bool {
	if int(e) < 0 || int(e) >= len(s.effects) {
		return false
	}
	return s.effects[e]
}
