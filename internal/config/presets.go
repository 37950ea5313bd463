package config

import "sort"

var Presets = map[string]*Config{
	"solar": {
		Mode: "gravity", TimeStep: DefaultTimeStep, SubSteps: DefaultSubSteps, Days: 365,
		FieldBodies: 1000, SampleEvery: 10, FPS: DefaultFPS,
	},
	"planets": {
		Mode: "gravity", TimeStep: DefaultTimeStep, SubSteps: DefaultSubSteps, Days: 4 * 365,
		FieldBodies: 0, SampleEvery: 5, FPS: DefaultFPS,
	},
	"dense": {
		Mode: "gravity", TimeStep: DefaultTimeStep, SubSteps: 4, Days: 365,
		FieldBodies: 5000, SampleEvery: 10, FPS: DefaultFPS,
	},
	"springs": {
		Mode: "springs", TimeStep: DefaultTimeStep, SubSteps: DefaultSubSteps, Days: 365,
		FieldBodies: 1000, SampleEvery: 10, FPS: DefaultFPS,
	},
	"fine": {
		Mode: "gravity", TimeStep: 3600, SubSteps: 40, Days: 2 * 365,
		FieldBodies: 200, SampleEvery: 24, FPS: DefaultFPS,
	},
	"ship": {
		Mode: "gravity", TimeStep: DefaultTimeStep, SubSteps: DefaultSubSteps, Days: 365,
		FieldBodies: 1000, SampleEvery: 10, FPS: DefaultFPS,
		Ship: ShipConfig{Enabled: true, Mass: DefaultShipMass},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
