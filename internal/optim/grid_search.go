package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/x509cert/gravsim/internal/config"
	"github.com/x509cert/gravsim/internal/experiment"
)

var setters = map[string]func(*config.Config, float64){
	"gravity":   func(c *config.Config, v float64) { c.Gravity = float32(v) },
	"damping":   func(c *config.Config, v float64) { c.Damping = float32(v) },
	"bodies":    func(c *config.Config, v float64) { c.Bodies = int(v) },
	"spread":    func(c *config.Config, v float64) { c.Spawn.Spread = float32(v) },
	"max_speed": func(c *config.Config, v float64) { c.Spawn.MaxSpeed = float32(v) },
}

// ParamNames lists the configuration values a search can vary.
func ParamNames() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d params but %d ranges", len(params), len(ranges))
	}
	for i, name := range params {
		if _, ok := setters[name]; !ok {
			return nil, fmt.Errorf("unknown param: %s (available: %v)", name, ParamNames())
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("param %s has no values", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

type Best struct {
	Params map[string]float64
	Value  float64
	Runs   int
}

type search struct {
	ctx    context.Context
	base   *config.Config
	frames int
	dt     float32
	metric string
	best   Best
}

// Search runs every combination of the grid on top of base and returns
// the one with the lowest value of metric. Combinations that fail
// validation are skipped.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, frames int, dt float32, metric string) (Best, error) {
	s := &search{
		ctx:    ctx,
		base:   base,
		frames: frames,
		dt:     dt,
		metric: metric,
		best:   Best{Value: math.Inf(1)},
	}

	if err := g.searchRecursive(s, 0, make(map[string]float64)); err != nil {
		return s.best, err
	}
	if s.best.Params == nil {
		return s.best, fmt.Errorf("no valid combination produced %s", metric)
	}
	return s.best, nil
}

func (g *GridSearch) searchRecursive(s *search, depth int, current map[string]float64) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		cfg := *s.base
		for name, v := range current {
			setters[name](&cfg, v)
		}
		if cfg.Validate() != nil {
			return nil
		}

		exp := experiment.New(&cfg)
		if err := exp.Setup(float32(cfg.Window.Width), float32(cfg.Window.Height)); err != nil {
			return err
		}
		result, err := exp.Run(s.ctx, s.frames, s.dt)
		if err != nil {
			return err
		}
		s.best.Runs++

		val, ok := result.Metrics[s.metric]
		if !ok {
			return fmt.Errorf("unknown metric: %s", s.metric)
		}
		if val < s.best.Value {
			s.best.Value = val
			s.best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				s.best.Params[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		if err := g.searchRecursive(s, depth+1, next); err != nil {
			return err
		}
	}
	return nil
}
