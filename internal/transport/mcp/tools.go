package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin/binding"
	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alanyang/listingcraft/internal/domain/generation"
	gensvc "github.com/alanyang/listingcraft/internal/service/generation"
)

// RegisterTools registers the three generation tools. Arguments use the same
// camelCase names as the HTTP request bodies.
func RegisterTools(s *mcpserver.MCPServer, svc *gensvc.Service) {
	listing := []mcpmcp.ToolOption{
		mcpmcp.WithDescription("Generate three property listing descriptions at increasing creativity. Pass projectId with a bearer token to save them to that project."),
		mcpmcp.WithString("propertyType", mcpmcp.Required(), mcpmcp.Description("e.g. Single Family Home, Condo")),
		mcpmcp.WithString("tone", mcpmcp.Required(), mcpmcp.Description("e.g. professional, luxury, friendly")),
	}
	listing = append(listing, stringArgs(
		"address", "bedrooms", "bathrooms", "squareFeet", "features",
		"sellingPoints", "targetBuyer", "askingPrice", "hoaFees", "projectId",
	)...)
	s.AddTool(mcpmcp.NewTool("generate_listing", listing...),
		generateHandler(generation.KindListing, svc.GenerateListing, svc.SaveListing))

	email := []mcpmcp.ToolOption{
		mcpmcp.WithDescription("Generate three marketing emails (broadcast, follow-up, or transactional). Broadcast emails take a broadcastPurpose and its fields. Results are saved for the bearer token's user."),
		mcpmcp.WithString("emailType", mcpmcp.Required(), mcpmcp.Enum("broadcast", "follow-up", "transactional")),
		mcpmcp.WithString("tone", mcpmcp.Required()),
		mcpmcp.WithString("broadcastPurpose", mcpmcp.Enum(
			"new-listing", "open-house", "just-sold", "price-reduction", "market-update",
			"neighborhood", "home-tips", "client-event", "holiday", "newsletter", "promotion",
		)),
		mcpmcp.WithBoolean("includeSignature"),
	}
	email = append(email, stringArgs(
		"propertyAddress", "listingPrice", "propertyHighlights", "openHouseDate", "openHouseTime",
		"soldPrice", "daysOnMarket", "originalPrice", "newPrice", "marketArea", "marketStats",
		"neighborhoodName", "neighborhoodHighlights", "tipsTopic", "eventName", "eventDate",
		"eventLocation", "holidayName", "newsletterTopics", "promotionDetails",
		"followUpReason", "recipientName", "lastInteraction",
		"transactionStage", "keyDates", "nextSteps",
		"subject", "targetAudience", "agentName", "agentPhone", "brokerage", "callToAction",
		"emailLength", "specialInstructions", "projectId",
	)...)
	s.AddTool(mcpmcp.NewTool("generate_email", email...),
		generateHandler(generation.KindEmail, svc.GenerateEmail, svc.SaveEmail))

	social := []mcpmcp.ToolOption{
		mcpmcp.WithDescription("Generate three social media posts for a platform. Pass projectId with a bearer token to save them to that project."),
		mcpmcp.WithString("platform", mcpmcp.Required(), mcpmcp.Description("instagram, facebook, linkedin, twitter or x, tiktok")),
		mcpmcp.WithString("tone", mcpmcp.Required()),
		mcpmcp.WithBoolean("includeHashtags"),
		mcpmcp.WithBoolean("includeEmojis"),
	}
	social = append(social, stringArgs(
		"postType", "propertyType", "address", "bedrooms", "bathrooms", "price",
		"features", "callToAction", "projectId",
	)...)
	s.AddTool(mcpmcp.NewTool("generate_social_post", social...),
		generateHandler(generation.KindSocialPost, svc.GenerateSocialPost, svc.SaveSocialPost))
}

func stringArgs(names ...string) []mcpmcp.ToolOption {
	opts := make([]mcpmcp.ToolOption, 0, len(names))
	for _, n := range names {
		opts = append(opts, mcpmcp.WithString(n))
	}
	return opts
}

// ── Tool handlers ─────────────────────────────────────────────────────────────

func generateHandler[R any](
	kind generation.Kind,
	gen func(ctx context.Context, req R) ([]generation.Variation, error),
	save func(ctx context.Context, token string, req R, vs []generation.Variation),
) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, call mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		var req R
		if err := decodeArgs(call.GetArguments(), &req); err != nil {
			return mcpmcp.NewToolResultError("error: " + err.Error()), nil
		}

		vs, err := gen(ctx, req)
		if err != nil {
			return mcpmcp.NewToolResultError("Failed to generate " + kind.Label()), nil
		}

		out, err := json.Marshal(map[string]any{"variations": generation.Texts(vs)})
		if err != nil {
			return nil, fmt.Errorf("marshal variations: %w", err)
		}

		save(ctx, sessionToken(ctx), req, vs)
		return mcpmcp.NewToolResultText(string(out)), nil
	}
}

// decodeArgs maps tool arguments onto a request struct through its json tags and
// applies the same validation the HTTP handlers use.
func decodeArgs(args map[string]any, dst any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode arguments: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(dst)
}
