package mcp

import (
	"context"
	"fmt"

	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alanyang/listingcraft/internal/domain/generation"
	promptsvc "github.com/alanyang/listingcraft/internal/service/prompt"
)

// RegisterPrompts exposes the rendered prompt pairs so MCP clients can run the
// generation against their own model.
func RegisterPrompts(s *mcpserver.MCPServer) {
	s.AddPrompt(
		mcpmcp.NewPrompt("listing",
			mcpmcp.WithPromptDescription("Listing description prompt. First message carries the system instructions."),
			mcpmcp.WithArgument("propertyType", mcpmcp.RequiredArgument()),
			mcpmcp.WithArgument("tone", mcpmcp.RequiredArgument()),
			mcpmcp.WithArgument("address"),
			mcpmcp.WithArgument("bedrooms"),
			mcpmcp.WithArgument("bathrooms"),
			mcpmcp.WithArgument("features"),
		),
		promptHandler(generation.KindListing, promptsvc.BuildListing),
	)
	s.AddPrompt(
		mcpmcp.NewPrompt("email",
			mcpmcp.WithPromptDescription("Marketing email prompt. First message carries the system instructions."),
			mcpmcp.WithArgument("emailType", mcpmcp.RequiredArgument(), mcpmcp.ArgumentDescription("broadcast, follow-up, or transactional")),
			mcpmcp.WithArgument("tone", mcpmcp.RequiredArgument()),
			mcpmcp.WithArgument("broadcastPurpose"),
			mcpmcp.WithArgument("includeSignature", mcpmcp.ArgumentDescription("true or false")),
		),
		promptHandler(generation.KindEmail, promptsvc.BuildEmail),
	)
	s.AddPrompt(
		mcpmcp.NewPrompt("social_post",
			mcpmcp.WithPromptDescription("Social media post prompt. First message carries the system instructions."),
			mcpmcp.WithArgument("platform", mcpmcp.RequiredArgument()),
			mcpmcp.WithArgument("tone", mcpmcp.RequiredArgument()),
			mcpmcp.WithArgument("includeHashtags", mcpmcp.ArgumentDescription("true or false")),
			mcpmcp.WithArgument("includeEmojis", mcpmcp.ArgumentDescription("true or false")),
		),
		promptHandler(generation.KindSocialPost, promptsvc.BuildSocialPost),
	)
}

func promptHandler[R any](kind generation.Kind, build func(R) generation.PromptPair) mcpserver.PromptHandlerFunc {
	return func(_ context.Context, req mcpmcp.GetPromptRequest) (*mcpmcp.GetPromptResult, error) {
		var r R
		if err := decodeArgs(promptArgs(req.Params.Arguments), &r); err != nil {
			return nil, fmt.Errorf("invalid %s prompt arguments: %w", kind.Label(), err)
		}

		pair := build(r)
		return mcpmcp.NewGetPromptResult(
			fmt.Sprintf("Prompt pair for %s generation", kind.Label()),
			[]mcpmcp.PromptMessage{
				mcpmcp.NewPromptMessage(mcpmcp.RoleUser, mcpmcp.NewTextContent(pair.SystemPrompt)),
				mcpmcp.NewPromptMessage(mcpmcp.RoleUser, mcpmcp.NewTextContent(pair.UserPrompt)),
			},
		), nil
	}
}

// promptArgs converts string prompt arguments, turning "true"/"false" into booleans.
func promptArgs(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		switch v {
		case "true", "false":
			out[k] = v == "true"
		default:
			out[k] = v
		}
	}
	return out
}
