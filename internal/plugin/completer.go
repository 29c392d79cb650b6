package plugin

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Completer hands completed passcodes to one configured plugin.
type Completer struct {
	manager  *Manager
	executor *Executor
	name     string
	session  string
	logger   *zap.SugaredLogger
}

// NewCompleter returns a Completer that runs the plugin called name with
// ActionType.
func NewCompleter(manager *Manager, executor *Executor, name, session string, logger *zap.SugaredLogger) *Completer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Completer{
		manager:  manager,
		executor: executor,
		name:     name,
		session:  session,
		logger:   logger,
	}
}

// Name returns the plugin name the completer targets.
func (c *Completer) Name() string {
	return c.name
}

// Complete runs the plugin with the passcode as its text param. A plugin
// that answers with success=false is reported as an error.
func (c *Completer) Complete(ctx context.Context, passcode string) error {
	plugin, err := c.manager.Resolve(c.name, ActionType)
	if err != nil {
		return err
	}

	req, err := NewTypeRequest(c.session, passcode)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.executor.Execute(ctx, plugin, req)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("plugin %s: %s", c.name, resp.Error)
	}

	c.logger.Infow("passcode handed to plugin", "plugin", c.name, "length", len(passcode))
	return nil
}
