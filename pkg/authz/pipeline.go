package authz

import "context"

// Verdict signals how the pipeline should proceed after a stage succeeds.
type Verdict int

const (
	// Delegate passes control to the next stage.
	Delegate Verdict = iota
	// Terminate resolves the request successfully without running later
	// stages.
	Terminate
)

// Handler is one authorization stage. A stage either fails the request by
// returning an error, resolves it by returning Terminate, or hands control
// onward by returning Delegate. Stages hold no references to their
// successors; the pipeline owns iteration.
type Handler interface {
	Handle(ctx context.Context, request AuthorizationContext) (Verdict, error)
}

// Pipeline runs an ordered sequence of stages, short-circuiting on the first
// error or Terminate verdict. Reaching the end of the sequence is success.
type Pipeline struct {
	handlers []Handler
}

// NewPipeline composes stages in evaluation order.
func NewPipeline(handlers ...Handler) *Pipeline {
	return &Pipeline{handlers: handlers}
}

// Handle evaluates the request through the stages. Exactly one error is
// returned per evaluation; the first terminal condition wins.
func (p *Pipeline) Handle(ctx context.Context, request AuthorizationContext) error {
	for _, h := range p.handlers {
		verdict, err := h.Handle(ctx, request)
		if err != nil {
			return err
		}
		if verdict == Terminate {
			return nil
		}
	}
	return nil
}
