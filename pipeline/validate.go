package pipeline

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/rohankumardubey/liveoak/types"
)

// ValidationStage checks inbound state against JSON Schemas registered per
// path prefix. Requests without state, or without a matching schema, pass
// through untouched. A violation terminates the request with NOT_ACCEPTABLE.
type ValidationStage struct {
	mu      sync.RWMutex
	schemas map[string]*gojsonschema.Schema
	logger  *slog.Logger
}

// NewValidationStage creates an empty validation stage.
func NewValidationStage(logger *slog.Logger) *ValidationStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ValidationStage{
		schemas: map[string]*gojsonschema.Schema{},
		logger:  logger,
	}
}

// RegisterSchema compiles schemaJSON and applies it to CREATE and UPDATE
// state under the given path prefix.
func (s *ValidationStage) RegisterSchema(prefix string, schemaJSON string) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return fmt.Errorf("compile schema for %s: %w", prefix, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemas[types.ParsePath(prefix).String()] = schema
	return nil
}

// Name implements Stage.
func (s *ValidationStage) Name() string { return "validation" }

// HandleResponse implements Stage.
func (s *ValidationStage) HandleResponse(*types.ResourceResponse) {}

// HandleRequest implements Stage.
func (s *ValidationStage) HandleRequest(ctx *Context, req *types.ResourceRequest) {
	if req.State() == nil || (req.Type() != types.RequestCreate && req.Type() != types.RequestUpdate) {
		ctx.Forward(req)
		return
	}

	schema := s.lookup(req.Path())
	if schema == nil {
		ctx.Forward(req)
		return
	}

	doc, err := json.Marshal(req.State())
	if err != nil {
		ctx.Complete(types.NewErrorResponse(req, types.ErrorNotAcceptable,
			"state is not representable as JSON", err))
		return
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		ctx.Complete(types.NewErrorResponse(req, types.ErrorNotAcceptable,
			"state validation failed", err))
		return
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		s.logger.Debug("state rejected by schema",
			"path", req.Path().String(), "violations", len(messages))
		ctx.Complete(types.NewErrorResponse(req, types.ErrorNotAcceptable,
			strings.Join(messages, "; "), nil))
		return
	}

	ctx.Forward(req)
}

// lookup returns the schema for the longest registered prefix of path.
func (s *ValidationStage) lookup(path types.ResourcePath) *gojsonschema.Schema {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *gojsonschema.Schema
	bestLen := -1
	for prefix, schema := range s.schemas {
		if path.HasPrefix(types.ParsePath(prefix)) && len(prefix) > bestLen {
			best = schema
			bestLen = len(prefix)
		}
	}
	return best
}
