package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Runner executes one named operation against a raw JSON payload.
type Runner func(ctx context.Context, payload json.RawMessage) (any, error)

// Registry maps operation names to runners, for callers that dispatch by
// name (the CLI, or an embedding transport layer).
type Registry struct {
	ops map[string]Runner
}

func NewRegistry() *Registry {
	r := &Registry{ops: make(map[string]Runner)}

	r.ops["monte_carlo"] = decode(RunMonteCarlo)
	r.ops["polynomial_chaos"] = decode(RunChaos)
	r.ops["taguchi"] = decode(RunTaguchi)
	r.ops["linear_oscillator"] = decode(RunOscillator)
	r.ops["pca"] = decode(RunPCA)

	return r
}

// decode adapts a typed operation to the raw-payload Runner signature.
func decode[Req any, Res any](run func(context.Context, Req) (*Res, error)) Runner {
	return func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req Req
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, invalidParam("payload", "malformed request: %v", err)
			}
		}
		return run(ctx, req)
	}
}

func (r *Registry) Operations() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Run(ctx context.Context, name string, payload json.RawMessage) (any, error) {
	run, ok := r.ops[name]
	if !ok {
		return nil, fmt.Errorf("unknown operation: %s", name)
	}
	return run(ctx, payload)
}
