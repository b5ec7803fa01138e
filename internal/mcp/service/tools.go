package service

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dawctl/reaper-mcp/internal/mcp/domain"
	"github.com/dawctl/reaper-mcp/internal/reaper"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
}

func registerProjectTools(registrar mcpRegistrationTarget, client reaper.Client) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.GetProjectInfoTool(), handler: domain.GetProjectInfoHandler(client)},
		{tool: domain.SetTempoTool(), handler: domain.SetTempoHandler(client)},
		{tool: domain.SetTimeSignatureTool(), handler: domain.SetTimeSignatureHandler(client)},
		{tool: domain.UndoTool(), handler: domain.UndoHandler(client)},
	}
	return registerAll(registrar, registrations)
}

func registerTrackTools(registrar mcpRegistrationTarget, client reaper.Client) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.GetTrackInfoTool(), handler: domain.GetTrackInfoHandler(client)},
		{tool: domain.CreateTrackTool(), handler: domain.CreateTrackHandler(client)},
		{tool: domain.DeleteTrackTool(), handler: domain.DeleteTrackHandler(client)},
		{tool: domain.DeleteAllTracksTool(), handler: domain.DeleteAllTracksHandler(client)},
		{tool: domain.SetTrackNameTool(), handler: domain.SetTrackNameHandler(client)},
		{tool: domain.SetTrackVolumeTool(), handler: domain.SetTrackVolumeHandler(client)},
		{tool: domain.SetTrackPanTool(), handler: domain.SetTrackPanHandler(client)},
		{tool: domain.SetTrackMuteTool(), handler: domain.SetTrackMuteHandler(client)},
		{tool: domain.SetTrackSoloTool(), handler: domain.SetTrackSoloHandler(client)},
	}
	return registerAll(registrar, registrations)
}

func registerItemTools(registrar mcpRegistrationTarget, client reaper.Client) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.GetItemsTool(), handler: domain.GetItemsHandler(client)},
		{tool: domain.CreateMIDIItemTool(), handler: domain.CreateMIDIItemHandler(client)},
		{tool: domain.DeleteItemTool(), handler: domain.DeleteItemHandler(client)},
		{tool: domain.DuplicateItemTool(), handler: domain.DuplicateItemHandler(client)},
		{tool: domain.SetItemNameTool(), handler: domain.SetItemNameHandler(client)},
		{tool: domain.GetItemNotesTool(), handler: domain.GetItemNotesHandler(client)},
		{tool: domain.SetItemNotesTool(), handler: domain.SetItemNotesHandler(client)},
	}
	return registerAll(registrar, registrations)
}

func registerTransportTools(registrar mcpRegistrationTarget, client reaper.Client) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.StartPlaybackTool(), handler: domain.StartPlaybackHandler(client)},
		{tool: domain.StopPlaybackTool(), handler: domain.StopPlaybackHandler(client)},
		{tool: domain.SetCursorPositionTool(), handler: domain.SetCursorPositionHandler(client)},
		{tool: domain.GetLoopRegionTool(), handler: domain.GetLoopRegionHandler(client)},
		{tool: domain.SetLoopRegionTool(), handler: domain.SetLoopRegionHandler(client)},
	}
	return registerAll(registrar, registrations)
}

func registerFXTools(registrar mcpRegistrationTarget, client reaper.Client) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.AddFXTool(), handler: domain.AddFXHandler(client)},
		{tool: domain.RemoveFXTool(), handler: domain.RemoveFXHandler(client)},
		{tool: domain.GetFXParametersTool(), handler: domain.GetFXParametersHandler(client)},
		{tool: domain.SetFXParameterTool(), handler: domain.SetFXParameterHandler(client)},
		{tool: domain.CreateTrackWithFXTool(), handler: domain.CreateTrackWithFXHandler(client)},
	}
	return registerAll(registrar, registrations)
}

func registerMarkerTools(registrar mcpRegistrationTarget, client reaper.Client) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.AddMarkerTool(), handler: domain.AddMarkerHandler(client)},
		{tool: domain.AddRegionTool(), handler: domain.AddRegionHandler(client)},
		{tool: domain.GetMarkersTool(), handler: domain.GetMarkersHandler(client)},
	}
	return registerAll(registrar, registrations)
}

func registerAll(registrar mcpRegistrationTarget, registrations []struct {
	tool    *mcp.Tool
	handler any
}) error {
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	return registrar.AddTool(tool, handler)
}
