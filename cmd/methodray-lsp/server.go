package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/dak2/methodray/checker"
)

// server is the language-server frontend: it frames JSON-RPC messages over
// stdio, tracks open document buffers, and publishes diagnostics on open and
// save. It never exits on a diagnostic; only an exit notification, EOF or a
// framing read error ends the loop.
type server struct {
	checker   *checker.Checker
	logger    *log.Logger
	reader    *bufio.Reader
	writer    io.Writer
	writeMu   sync.Mutex
	documents map[string]string
	shutdown  bool
}

func newServer(r io.Reader, w io.Writer, logger *log.Logger) *server {
	return &server{
		checker:   checker.New(checker.WithLogger(logger)),
		logger:    logger,
		reader:    bufio.NewReader(r),
		writer:    w,
		documents: make(map[string]string),
	}
}

// run reads framed messages until EOF or an exit notification.
func (s *server) run(ctx context.Context) error {
	for {
		content, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if content == nil {
			continue
		}
		exit, err := s.handle(ctx, content)
		if err != nil {
			s.logger.Printf("handling message: %v", err)
		}
		if exit {
			return nil
		}
	}
}

// readMessage consumes one Content-Length framed payload.
func (s *server) readMessage() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if contentLength >= 0 {
				break
			}
			continue
		}
		if rest, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return nil, fmt.Errorf("bad Content-Length %q: %w", rest, err)
			}
			contentLength = n
		}
	}
	content := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *server) handle(ctx context.Context, content []byte) (exit bool, err error) {
	var msg requestMessage
	if err := json.Unmarshal(content, &msg); err != nil {
		return false, fmt.Errorf("unmarshaling message: %w", err)
	}

	switch msg.Method {
	case "initialize":
		return false, s.respond(msg.ID, initializeResult{
			Capabilities: serverCapabilities{TextDocumentSync: 1},
			ServerInfo:   serverInfo{Name: "methodray", Version: checker.Version},
		})
	case "initialized":
		s.logger.Printf("language server initialized")
		return false, nil
	case "shutdown":
		s.shutdown = true
		return false, s.respond(msg.ID, nil)
	case "exit":
		return true, nil
	case "textDocument/didOpen":
		var params didOpenParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return false, err
		}
		s.documents[params.TextDocument.URI] = params.TextDocument.Text
		return false, s.checkDocument(ctx, params.TextDocument.URI)
	case "textDocument/didChange":
		var params didChangeParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return false, err
		}
		// Full sync: keep the latest buffer, re-check on save.
		if len(params.ContentChanges) > 0 {
			s.documents[params.TextDocument.URI] = params.ContentChanges[len(params.ContentChanges)-1].Text
		}
		return false, nil
	case "textDocument/didSave":
		var params didSaveParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return false, err
		}
		if params.Text != nil {
			s.documents[params.TextDocument.URI] = *params.Text
		}
		return false, s.checkDocument(ctx, params.TextDocument.URI)
	case "textDocument/didClose":
		var params didCloseParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return false, err
		}
		delete(s.documents, params.TextDocument.URI)
		return false, s.publishDiagnostics(params.TextDocument.URI, nil)
	}

	if msg.ID != nil {
		return false, s.respondError(msg.ID, codeMethodNotFound, "unhandled method: "+msg.Method)
	}
	return false, nil
}

func (s *server) respond(id interface{}, result interface{}) error {
	return s.write(responseMessage{Jsonrpc: "2.0", ID: id, Result: result})
}

func (s *server) respondError(id interface{}, code int, message string) error {
	return s.write(responseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Error:   &responseError{Code: code, Message: message},
	})
}

func (s *server) notify(method string, params interface{}) error {
	return s.write(notificationMessage{Jsonrpc: "2.0", Method: method, Params: params})
}

func (s *server) write(msg interface{}) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(payload)); err != nil {
		return err
	}
	_, err = s.writer.Write(payload)
	return err
}
