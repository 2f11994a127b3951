package deploysample

import (
	"context"

	componentlog "github.com/asecurityteam/component-log"
	componentstat "github.com/asecurityteam/component-stat"
)

// LambdaConfig holds the settings used when running natively under the
// lambda SDK. The HTTP runtime configures its own logger and stats.
type LambdaConfig struct {
	Logger *componentlog.Config
	Stats  *componentstat.Config
}

// Name of the config root.
func (*LambdaConfig) Name() string {
	return "lambda"
}

// LambdaEnv is the logger and stat client shared by every invocation in
// the native lambda modes.
type LambdaEnv struct {
	Logger Logger
	Stat   Stat
}

// LambdaComponent builds a LambdaEnv from settings.
type LambdaComponent struct {
	Logger *componentlog.Component
	Stats  *componentstat.Component
}

// NewLambdaComponent populates the sub-components.
func NewLambdaComponent() *LambdaComponent {
	return &LambdaComponent{
		Logger: componentlog.NewComponent(),
		Stats:  componentstat.NewComponent(),
	}
}

// Settings generates a config populated with defaults.
func (c *LambdaComponent) Settings() *LambdaConfig {
	return &LambdaConfig{
		Logger: c.Logger.Settings(),
		Stats:  c.Stats.Settings(),
	}
}

// New creates the logger and stat client.
func (c *LambdaComponent) New(ctx context.Context, conf *LambdaConfig) (*LambdaEnv, error) {
	logger, err := c.Logger.New(ctx, conf.Logger)
	if err != nil {
		return nil, err
	}
	stat, err := c.Stats.New(ctx, conf.Stats)
	if err != nil {
		return nil, err
	}
	return &LambdaEnv{Logger: logger, Stat: stat}, nil
}
