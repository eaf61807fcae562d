package action

import (
	"fmt"

	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/logging"
)

// BaseAction bundles the identity shared by every action: its name, owning
// node, concurrency context and logger. Embed it in concrete actions and
// supply Execute and CloneOnNewNode to satisfy core.Action.
type BaseAction struct {
	name    string
	node    core.Node
	context core.Context
	logger  logging.Logger
}

// NewBaseAction constructs a BaseAction. A nil logger is replaced by a NoOp logger.
func NewBaseAction(name string, node core.Node, c core.Context, logger logging.Logger) BaseAction {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return BaseAction{name: name, node: node, context: c, logger: logger}
}

// Name returns the action name used in logs.
func (b *BaseAction) Name() string { return b.name }

// Node returns the owning node.
func (b *BaseAction) Node() core.Node { return b.node }

// Context returns the declared concurrency scope.
func (b *BaseAction) Context() core.Context { return b.context }

// Logger returns the action logger.
func (b *BaseAction) Logger() logging.Logger { return b.logger }

func (b *BaseAction) String() string {
	return fmt.Sprintf("%s@%s[%s]", b.name, b.node.ID(), b.context)
}

func requireNode(name string, n core.Node) error {
	if n == nil {
		return fmt.Errorf("%s: node is required", name)
	}
	return nil
}
