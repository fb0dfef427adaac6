package haxe

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/jsonrpc2"
	"gitlab.com/tozd/go/errors"
)

// ErrCancelled is returned when a display request was cancelled before
// the compiler produced a result. Callers resolve with "no result", not
// with an error.
var ErrCancelled = errors.Base("display request cancelled")

// DisplayClient is the outward contract of the compiler bridge. The
// hover feature only depends on this interface; the process-backed
// implementation below is one way to satisfy it.
type DisplayClient interface {
	// Supports reports whether the running compiler advertises the given
	// structured display method. The answer may change across compiler
	// restarts and must be re-queried per request.
	Supports(method string) bool
	// CallHover issues a structured hover call. A nil occurrence with a
	// nil error means the compiler found nothing at the offset.
	CallHover(ctx context.Context, args HoverRequestArgs) (*HoverOccurrence, error)
	// CallLegacy issues a legacy textual display call of the form
	// <path>@<byteOffset>@<mode> with the document contents as payload
	// and returns the raw response text.
	CallLegacy(ctx context.Context, position string, contents string) (string, error)
}

// ClientConfig configures the compiler process client.
type ClientConfig struct {
	// HaxePath is the compiler executable, "haxe" when empty.
	HaxePath string
	// Args are extra compiler arguments, typically the project hxml.
	Args []string
	// RootDir is the working directory for compiler invocations.
	RootDir string
}

// Client talks to a persistent compiler process over JSON-RPC for the
// structured protocol and falls back to one-shot invocations for the
// legacy protocol.
type Client struct {
	cfg    ClientConfig
	caps   *Capabilities
	logger zerolog.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	conn   *jsonrpc2.Conn
	cancel context.CancelFunc
}

// initializeResult is the compiler's answer to the initialize call.
type initializeResult struct {
	Methods     []string `json:"methods"`
	HaxeVersion string   `json:"haxeVersion,omitempty"`
}

// NewClient creates a display client. Start must be called before the
// structured protocol is available; until then Supports reports false
// for every method and requests take the legacy path.
func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	if cfg.HaxePath == "" {
		cfg.HaxePath = "haxe"
	}
	return &Client{
		cfg:    cfg,
		caps:   NewCapabilities(),
		logger: logger,
	}
}

// Capabilities exposes the live capability table.
func (c *Client) Capabilities() *Capabilities {
	return c.caps
}

// Supports implements DisplayClient.
func (c *Client) Supports(method string) bool {
	return c.caps.Supports(method)
}

// Start launches the compiler in server mode and probes its supported
// display methods.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked(ctx)
}

func (c *Client) startLocked(ctx context.Context) error {
	procCtx, cancel := context.WithCancel(context.Background())

	cmd := exec.CommandContext(procCtx, c.cfg.HaxePath, append([]string{"--server-mode", "stdio"}, c.cfg.Args...)...)
	cmd.Dir = c.cfg.RootDir

	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return errors.Errorf("opening compiler stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return errors.Errorf("opening compiler stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return errors.Errorf("starting compiler: %w", err)
	}

	stream := jsonrpc2.NewBufferedStream(stdioPipe{stdout, stdin}, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(procCtx, stream, jsonrpc2.HandlerWithError(c.handleServerNotification))

	var result initializeResult
	if err := conn.Call(ctx, "initialize", struct{}{}, &result); err != nil {
		cancel()
		_ = conn.Close()
		_ = cmd.Process.Kill()
		return errors.Errorf("initializing compiler server: %w", err)
	}

	c.cmd = cmd
	c.conn = conn
	c.cancel = cancel
	c.caps.Replace(result.Methods)

	c.logger.Info().
		Str("version", result.HaxeVersion).
		Int("methods", len(result.Methods)).
		Msg("compiler server started")
	return nil
}

func (c *Client) handleServerNotification(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	if req.Notif {
		c.logger.Debug().Str("method", req.Method).Msg("compiler notification")
		return nil, nil
	}
	return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not handled: " + req.Method}
}

// Restart tears the compiler process down and brings a fresh one up.
// The capability table is empty in between, so concurrent hover
// requests degrade to the legacy path instead of failing.
func (c *Client) Restart(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.caps.Clear()
	c.stopLocked()
	return c.startLocked(ctx)
}

// Close terminates the compiler process.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.caps.Clear()
	c.stopLocked()
	return nil
}

func (c *Client) stopLocked() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
		_, _ = c.cmd.Process.Wait()
	}
	c.cmd = nil
}

// CallHover implements DisplayClient.
func (c *Client) CallHover(ctx context.Context, args HoverRequestArgs) (*HoverOccurrence, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil, errors.New("compiler server not running")
	}

	// The compiler wraps every display result in a response envelope.
	var response struct {
		Result *HoverOccurrence `json:"result"`
	}
	if err := conn.Call(ctx, MethodDisplayHover, args, &response); err != nil {
		if ctx.Err() != nil {
			return nil, errors.WithStack(ErrCancelled)
		}
		return nil, errors.Errorf("calling %s: %w", MethodDisplayHover, err)
	}
	return response.Result, nil
}

// CallLegacy implements DisplayClient. The legacy protocol is served by
// a one-shot compiler invocation; display output arrives on stderr.
func (c *Client) CallLegacy(ctx context.Context, position string, contents string) (string, error) {
	args := append([]string{}, c.cfg.Args...)
	args = append(args, "--display", position, "-D", "display-stdin")

	cmd := exec.CommandContext(ctx, c.cfg.HaxePath, args...)
	cmd.Dir = c.cfg.RootDir
	cmd.Stdin = strings.NewReader(contents)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = io.Discard

	err := cmd.Run()
	if ctx.Err() != nil {
		return "", errors.WithStack(ErrCancelled)
	}
	out := stderr.String()
	if err != nil && strings.TrimSpace(out) == "" {
		return "", errors.Errorf("legacy display call failed: %w", err)
	}
	return out, nil
}

// stdioPipe combines the compiler's stdout and stdin into the
// ReadWriteCloser the JSON-RPC stream wants.
type stdioPipe struct {
	reader io.ReadCloser
	writer io.WriteCloser
}

func (p stdioPipe) Read(b []byte) (int, error)  { return p.reader.Read(b) }
func (p stdioPipe) Write(b []byte) (int, error) { return p.writer.Write(b) }
func (p stdioPipe) Close() error {
	_ = p.reader.Close()
	return p.writer.Close()
}
