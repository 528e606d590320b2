package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/mazerunner"
	"github.com/aretw0/mazerunner/internal/mazefile"
	"github.com/aretw0/mazerunner/pkg/domain"
	"github.com/aretw0/mazerunner/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RunsResourceURI lists stored run IDs.
const RunsResourceURI = "mazerunner://runs"

// SolveResult is the structured output of solve_maze and get_run.
type SolveResult struct {
	ID         string         `json:"id" jsonschema_description:"Run identifier, usable with get_run"`
	Maze       string         `json:"maze,omitempty" jsonschema_description:"Maze name"`
	Start      domain.Coord   `json:"start" jsonschema_description:"Start cell"`
	Goal       domain.Coord   `json:"goal" jsonschema_description:"Goal cell"`
	Steps      int            `json:"steps" jsonschema_description:"Exploration moves"`
	Actions    string         `json:"actions" jsonschema_description:"Concatenated action codes (F, LF, RF, LLF)"`
	Path       []domain.Coord `json:"path" jsonschema_description:"Loop-free path from start to goal"`
	PathLength int            `json:"path_length" jsonschema_description:"Number of cells on the path"`
	Score      float64        `json:"score" jsonschema_description:"steps/4 + path length"`
	Warnings   []string       `json:"warnings,omitempty" jsonschema_description:"Non-fatal collaborator failures"`
}

func newSolveResult(run *domain.Run) SolveResult {
	return SolveResult{
		ID:         run.ID,
		Maze:       run.MazeName,
		Start:      run.Start,
		Goal:       run.Goal,
		Steps:      run.Steps(),
		Actions:    run.Actions(),
		Path:       run.Path,
		PathLength: len(run.Path),
		Score:      run.Score(),
	}
}

// SolveArgs are the arguments of solve_maze.
type SolveArgs struct {
	Maze     string `json:"maze"`
	Name     string `json:"name,omitempty"`
	Start    string `json:"start,omitempty"`
	Goal     string `json:"goal,omitempty"`
	MaxSteps int    `json:"max_steps,omitempty"`
}

// GetRunArgs are the arguments of get_run.
type GetRunArgs struct {
	ID string `json:"id"`
}

// Solver is the part of mazerunner.Solver the MCP server needs.
type Solver interface {
	SolveJob(ctx context.Context, job mazerunner.Job) (*domain.Run, error)
}

// Server wraps the Solver and exposes it as an MCP Server.
type Server struct {
	solver    Solver
	store     ports.RunStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. store may be nil, which disables get_run.
func NewServer(solver Solver, store ports.RunStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		solver:    solver,
		store:     store,
		logger:    logger,
		mcpServer: server.NewMCPServer("mazerunner-mcp", strings.TrimSpace(mazerunner.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	solveTool := mcp.NewTool("solve_maze",
		mcp.WithDescription("Explore a maze in .mz format with the left-hand wall-following rule and return the loop-free path."),
		mcp.WithString("maze", mcp.Required(), mcp.Description("Maze text: odd number of equal-length lines of '#' and '.'")),
		mcp.WithString("name", mcp.Description("Maze name recorded with the run")),
		mcp.WithString("start", mcp.Description("Start cell as \"x, y\" (default \"0, 0\")")),
		mcp.WithString("goal", mcp.Description("Goal cell as \"x, y\" (default: north-east corner)")),
		mcp.WithNumber("max_steps", mcp.Description("Step limit (default 4*width*height)")),
		mcp.WithOutputSchema[SolveResult](),
	)
	s.mcpServer.AddTool(solveTool, mcp.NewStructuredToolHandler(s.handleSolve))

	if s.store == nil {
		return
	}
	getRunTool := mcp.NewTool("get_run",
		mcp.WithDescription("Fetch a previously solved run by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Run ID returned by solve_maze")),
		mcp.WithOutputSchema[SolveResult](),
	)
	s.mcpServer.AddTool(getRunTool, mcp.NewStructuredToolHandler(s.handleGetRun))
}

func (s *Server) handleSolve(ctx context.Context, request mcp.CallToolRequest, args SolveArgs) (SolveResult, error) {
	m, err := mazefile.ParseString(args.Maze)
	if err != nil {
		return SolveResult{}, fmt.Errorf("invalid maze: %w", err)
	}
	m.SetName(args.Name)

	job := mazerunner.Job{Maze: m, MaxSteps: args.MaxSteps}
	if job.Start, err = optionalCoord(args.Start); err != nil {
		return SolveResult{}, fmt.Errorf("start: %w", err)
	}
	if job.Goal, err = optionalCoord(args.Goal); err != nil {
		return SolveResult{}, fmt.Errorf("goal: %w", err)
	}

	run, err := s.solver.SolveJob(ctx, job)
	if run == nil {
		return SolveResult{}, fmt.Errorf("solve failed: %w", err)
	}

	result := newSolveResult(run)
	if err != nil {
		s.logger.Warn("MCP solve: collaborator failure", "run_id", run.ID, "error", err)
		result.Warnings = strings.Split(err.Error(), "\n")
	}
	return result, nil
}

func (s *Server) handleGetRun(ctx context.Context, request mcp.CallToolRequest, args GetRunArgs) (SolveResult, error) {
	run, err := s.store.Load(ctx, args.ID)
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			return SolveResult{}, fmt.Errorf("run %q not found", args.ID)
		}
		return SolveResult{}, fmt.Errorf("load failed: %w", err)
	}
	return newSolveResult(run), nil
}

func optionalCoord(s string) (*domain.Coord, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	c, err := domain.ParseCoord(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Server) registerResources() {
	if s.store == nil {
		return
	}
	s.mcpServer.AddResource(mcp.NewResource(RunsResourceURI, "Stored runs",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list runs: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      RunsResourceURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
