// Package automation runs scripted sequences of simulations described in
// YAML.
package automation

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/storage"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset and overrides whichever fields are set.
type ScenarioStep struct {
	Preset      string  `yaml:"preset"`
	Mode        string  `yaml:"mode"`
	TimeStep    float64 `yaml:"time_step"`
	Days        float64 `yaml:"days"`
	FieldBodies *int    `yaml:"field_bodies"`
	Seed        int64   `yaml:"seed"`
	SaveAs      string  `yaml:"save_as"`
}

// StepResult pairs a finished step with the run ID it was stored under, if
// it was stored.
type StepResult struct {
	Label  string
	RunID  string
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Config resolves the step into a full run configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		if cfg = config.GetPreset(s.Preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Mode != "" {
		cfg.Mode = s.Mode
	}
	if s.TimeStep != 0 {
		cfg.TimeStep = s.TimeStep
	}
	if s.Days != 0 {
		cfg.Days = s.Days
	}
	if s.FieldBodies != nil {
		cfg.FieldBodies = *s.FieldBodies
	}
	cfg.Seed = s.Seed
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order. Steps with SaveAs set are written
// to st when st is non-nil. Results of the steps that completed are returned
// alongside the first error.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, newMetrics func() []metrics.Metric) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		label := step.SaveAs
		if label == "" {
			label = fmt.Sprintf("step-%d", i+1)
		}
		log.Printf("running step %d/%d: %s", i+1, len(scenario.Steps), label)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		runner := sim.New(cfg)
		if newMetrics != nil {
			for _, m := range newMetrics() {
				runner.AddMetric(m)
			}
		}

		result, err := runner.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Label: label, Result: result}
		if st != nil && step.SaveAs != "" {
			meta := result.Metadata()
			meta.Label = step.SaveAs
			if sr.RunID, err = st.Save(meta, result.Trace); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}
