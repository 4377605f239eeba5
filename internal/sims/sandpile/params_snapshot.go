package sandpile

import (
	"strconv"

	"sandpile/internal/core"
)

// Parameters reports the configuration and live diagnostics for the HUD.
func (s *Sim) Parameters() core.ParameterSnapshot {
	p := s.pile
	groups := []core.ParameterGroup{
		{
			Name: "Pile",
			Params: []core.Parameter{
				intParam("w", "Width", s.cfg.Width),
				intParam("h", "Height", s.cfg.Height),
				uintParam("grains", "Grains", s.cfg.Grains),
				textParam("mode", "Mode", s.cfg.Mode.String()),
				floatParam("p", "Probability", p.Probability()),
				int64Param("seed", "Seed", s.cfg.Seed),
			},
		},
		{
			Name: "Diagnostics",
			Params: []core.Parameter{
				uintParam("sweeps", "Sweeps", p.Sweeps()),
				uintParam("steps", "Steps", p.Steps()),
				uintParam("topples", "Topples", p.Topples()),
				uintParam("mass", "Mass", p.Mass()),
				uintParam("absorbed", "Absorbed", p.Absorbed()),
				boolParam("stable", "Stable", s.Stable()),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values adjustable from the HUD.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "p", Label: "Probability", Type: core.ParamTypeFloat, Step: 0.05, Min: MinProbability, Max: 1, HasMin: true, HasMax: true},
		{Key: "grains", Label: "Grains", Type: core.ParamTypeInt, Step: 1000, Min: 1, HasMin: true},
	}
}

// SetFloatParameter updates the toppling probability. The new value only
// applies to sweeps after the call; it is clamped into range first.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	if key != "p" {
		return false
	}
	for _, ctrl := range s.ParameterControls() {
		if ctrl.Key == key {
			value = ctrl.Clamp(value)
		}
	}
	if err := s.pile.SetProbability(value); err != nil {
		return false
	}
	s.cfg.Probability = value
	return true
}

// SetIntParameter updates the seed pile size, taking effect on the next Reset.
func (s *Sim) SetIntParameter(key string, value int) bool {
	if key != "grains" || value <= 0 {
		return false
	}
	s.cfg.Grains = uint64(value)
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func uintParam(key, label string, value uint64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatUint(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(value)}
}

func textParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Value: value}
}
