package lsp

import (
	"context"
	"encoding/json"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// Handler dispatches JSON-RPC messages to the server methods. Handler
// errors are sent back to the client; they never tear down the connection.
func (s *Server) Handler() jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		s.logger.Debug("received", "method", req.Method())

		switch req.Method() {
		case protocol.MethodInitialize:
			var params protocol.InitializeParams
			if err := decode(req, &params); err != nil {
				return reply(ctx, nil, err)
			}
			result, err := s.Initialize(ctx, &params)
			return reply(ctx, result, err)

		case protocol.MethodInitialized:
			var params protocol.InitializedParams
			_ = decode(req, &params)
			return reply(ctx, nil, s.Initialized(ctx, &params))

		case protocol.MethodShutdown:
			return reply(ctx, nil, s.Shutdown(ctx))

		case protocol.MethodExit:
			return reply(ctx, nil, s.Exit(ctx))

		case protocol.MethodTextDocumentDidOpen:
			var params protocol.DidOpenTextDocumentParams
			if err := decode(req, &params); err != nil {
				s.logger.Warn("invalid didOpen params", "error", err)
				return reply(ctx, nil, err)
			}
			return reply(ctx, nil, s.DidOpen(ctx, &params))

		case protocol.MethodTextDocumentDidChange:
			var params protocol.DidChangeTextDocumentParams
			if err := decode(req, &params); err != nil {
				s.logger.Warn("invalid didChange params", "error", err)
				return reply(ctx, nil, err)
			}
			return reply(ctx, nil, s.DidChange(ctx, &params))

		case protocol.MethodTextDocumentDidClose:
			var params protocol.DidCloseTextDocumentParams
			if err := decode(req, &params); err != nil {
				s.logger.Warn("invalid didClose params", "error", err)
				return reply(ctx, nil, err)
			}
			return reply(ctx, nil, s.DidClose(ctx, &params))

		case protocol.MethodTextDocumentCompletion:
			var params protocol.CompletionParams
			if err := decode(req, &params); err != nil {
				return reply(ctx, nil, err)
			}
			result, err := s.Completion(ctx, &params)
			if err != nil {
				s.logger.Error("completion failed", "error", err)
			}
			return reply(ctx, result, err)

		case protocol.MethodTextDocumentDefinition:
			var params protocol.DefinitionParams
			if err := decode(req, &params); err != nil {
				return reply(ctx, nil, err)
			}
			result, err := s.Definition(ctx, &params)
			if err != nil {
				s.logger.Error("definition failed", "error", err)
			}
			return reply(ctx, result, err)

		default:
			return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
		}
	}
}

// decode unmarshals request params, reporting failures as InvalidParams
func decode(req jsonrpc2.Request, v interface{}) error {
	if len(req.Params()) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params(), v); err != nil {
		return jsonrpc2.NewError(jsonrpc2.InvalidParams, err.Error())
	}
	return nil
}
