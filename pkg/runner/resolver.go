package runner

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/systemstart/testflow/pkg/api"
	"github.com/systemstart/testflow/pkg/plugin"
	"github.com/systemstart/testflow/pkg/vars"
)

// ResolveCall deep-merges a step's declared call over the plugin's default
// configuration and substitutes every ${NAME} placeholder in the merged tree.
// The merge recurses key-by-key into nested mappings, so a step can override
// one nested field while inheriting the rest of the defaults; sequences are
// replaced wholesale. The merge never touches the variable context, and the
// returned tree shares no containers with the step, so later in-place
// augmentation cannot corrupt the loaded configuration.
func ResolveCall(p plugin.Plugin, step api.Step, vc *vars.Context) (map[string]any, error) {
	merged := p.Defaults()
	if merged == nil {
		merged = make(map[string]any)
	}

	if len(step.Call) > 0 {
		if err := mergo.Merge(&merged, step.Call, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging call over defaults: %w", err)
		}
	}

	substituted, err := vc.Substitute(merged)
	if err != nil {
		return nil, err
	}

	call, ok := substituted.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("resolved call is %T, want mapping", substituted)
	}
	return call, nil
}
