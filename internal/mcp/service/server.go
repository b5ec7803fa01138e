package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dawctl/reaper-mcp/internal/mcp/domain"
	"github.com/dawctl/reaper-mcp/internal/reaper"
	"github.com/dawctl/reaper-mcp/internal/reaper/reascript"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "reaper-mcp"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

type mcpRegistrationModule struct {
	name     string
	register func(mcpRegistrationTarget) error
}

const (
	mcpProjectToolsModuleName   = "project-tools"
	mcpTrackToolsModuleName     = "track-tools"
	mcpItemToolsModuleName      = "item-tools"
	mcpTransportToolsModuleName = "transport-tools"
	mcpFXToolsModuleName        = "fx-tools"
	mcpMarkerToolsModuleName    = "marker-tools"
)

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.GetProjectInfoInput, domain.GetProjectInfoResult](),
	newMCPToolRegistrar[domain.SetTempoInput, domain.SetTempoResult](),
	newMCPToolRegistrar[domain.SetTimeSignatureInput, domain.SetTimeSignatureResult](),
	newMCPToolRegistrar[domain.UndoInput, domain.UndoResult](),
	newMCPToolRegistrar[domain.GetTrackInfoInput, domain.GetTrackInfoResult](),
	newMCPToolRegistrar[domain.CreateTrackInput, domain.CreateTrackResult](),
	newMCPToolRegistrar[domain.DeleteTrackInput, domain.DeleteTrackResult](),
	newMCPToolRegistrar[domain.DeleteAllTracksInput, domain.DeleteAllTracksResult](),
	newMCPToolRegistrar[domain.SetTrackNameInput, domain.SetTrackNameResult](),
	newMCPToolRegistrar[domain.SetTrackVolumeInput, domain.SetTrackVolumeResult](),
	newMCPToolRegistrar[domain.SetTrackPanInput, domain.SetTrackPanResult](),
	newMCPToolRegistrar[domain.SetTrackMuteInput, domain.SetTrackMuteResult](),
	newMCPToolRegistrar[domain.SetTrackSoloInput, domain.SetTrackSoloResult](),
	newMCPToolRegistrar[domain.GetItemsInput, domain.GetItemsResult](),
	newMCPToolRegistrar[domain.CreateMIDIItemInput, domain.CreateMIDIItemResult](),
	newMCPToolRegistrar[domain.DeleteItemInput, domain.DeleteItemResult](),
	newMCPToolRegistrar[domain.DuplicateItemInput, domain.DuplicateItemResult](),
	newMCPToolRegistrar[domain.SetItemNameInput, domain.SetItemNameResult](),
	newMCPToolRegistrar[domain.GetItemNotesInput, domain.GetItemNotesResult](),
	newMCPToolRegistrar[domain.SetItemNotesInput, domain.SetItemNotesResult](),
	newMCPToolRegistrar[domain.StartPlaybackInput, domain.StartPlaybackResult](),
	newMCPToolRegistrar[domain.StopPlaybackInput, domain.StopPlaybackResult](),
	newMCPToolRegistrar[domain.SetCursorPositionInput, domain.SetCursorPositionResult](),
	newMCPToolRegistrar[domain.GetLoopRegionInput, domain.GetLoopRegionResult](),
	newMCPToolRegistrar[domain.SetLoopRegionInput, domain.SetLoopRegionResult](),
	newMCPToolRegistrar[domain.AddFXInput, domain.AddFXResult](),
	newMCPToolRegistrar[domain.RemoveFXInput, domain.RemoveFXResult](),
	newMCPToolRegistrar[domain.GetFXParametersInput, domain.GetFXParametersResult](),
	newMCPToolRegistrar[domain.SetFXParameterInput, domain.SetFXParameterResult](),
	newMCPToolRegistrar[domain.CreateTrackWithFXInput, domain.CreateTrackWithFXResult](),
	newMCPToolRegistrar[domain.AddMarkerInput, domain.AddMarkerResult](),
	newMCPToolRegistrar[domain.AddRegionInput, domain.AddRegionResult](),
	newMCPToolRegistrar[domain.GetMarkersInput, domain.GetMarkersResult](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newMCPRegistrationModules(client reaper.Client) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpProjectToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerProjectTools(registrar, client)
			},
		},
		{
			name: mcpTrackToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerTrackTools(registrar, client)
			},
		},
		{
			name: mcpItemToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerItemTools(registrar, client)
			},
		},
		{
			name: mcpTransportToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerTransportTools(registrar, client)
			},
		},
		{
			name: mcpFXToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerFXTools(registrar, client)
			},
		},
		{
			name: mcpMarkerToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerMarkerTools(registrar, client)
			},
		},
	}
}

// Config configures the MCP server's REAPER binding.
type Config struct {
	// ReaperAddr is the host:port of REAPER's web interface.
	ReaperAddr string
	// Section is the ExtState section shared with the bridge script.
	Section string
	// ResourceDir overrides the REAPER resource directory used by the
	// one-time configuration step.
	ResourceDir string
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server bound to the given REAPER client.
// Tests substitute a fake client; production wiring goes through Run.
func New(client reaper.Client) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	for _, module := range newMCPRegistrationModules(client) {
		if err := module.register(mcpServerRegistrationAdapter{server: mcpServer}); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
	}
	return &Server{mcpServer: mcpServer}, nil
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// Run is the service entrypoint: it builds the real REAPER binding from cfg
// and serves MCP over stdio until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(NewReaperClient(cfg))
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// NewReaperClient builds the production client: ExtState mailbox calls over
// the web interface, with the bridge installer wired in for lazy connect.
func NewReaperClient(cfg Config) reaper.Client {
	caller := reascript.NewWebCaller(cfg.ReaperAddr, cfg.Section)
	installer := &reascript.Installer{ResourceDir: cfg.ResourceDir, Section: cfg.Section}
	return reascript.NewClient(caller, installer)
}
