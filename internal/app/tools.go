package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/models"
)

// registerTools adds the papertrade tools to the MCP server
func (a *App) registerTools() {
	a.MCPServer.AddTool(createGetVersionTool(), handleGetVersion())
	a.MCPServer.AddTool(createGetInsightsTool(), a.handleGetInsights)
	a.MCPServer.AddTool(createDismissInsightTool(), a.handleDismissInsight)
	a.MCPServer.AddTool(createAskAdvisorTool(), a.handleAskAdvisor)
	a.MCPServer.AddTool(createGetQuoteTool(), a.handleGetQuote)
}

func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the papertrade server version and build information."),
	)
}

func createGetInsightsTool() mcp.Tool {
	return mcp.NewTool("get_insights",
		mcp.WithDescription("Evaluate portfolio insights for a user. By default dismissed insights are hidden and the list is truncated for display."),
		mcp.WithString("user_id",
			mcp.Description("Backend user id. Defaults to the authenticated user."),
		),
		mcp.WithBoolean("all",
			mcp.Description("Return every triggered insight, ignoring dismissals and the display limit"),
		),
	)
}

func createDismissInsightTool() mcp.Tool {
	return mcp.NewTool("dismiss_insight",
		mcp.WithDescription("Hide an insight for a user until dismissals are reset."),
		mcp.WithString("user_id",
			mcp.Description("Backend user id. Defaults to the authenticated user."),
		),
		mcp.WithString("insight_id",
			mcp.Required(),
			mcp.Description("Insight id, e.g. concentration-AAPL"),
		),
	)
}

func createAskAdvisorTool() mcp.Tool {
	return mcp.NewTool("ask_advisor",
		mcp.WithDescription("Send a message to the scripted investment advisor and get its reply."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Message to the advisor"),
		),
		mcp.WithString("session_id",
			mcp.Description("Existing chat session id. Omit to start a new session."),
		),
	)
}

func createGetQuoteTool() mcp.Tool {
	return mcp.NewTool("get_quote",
		mcp.WithDescription("Get the latest quote for a symbol with change and percent change."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Ticker symbol, e.g. AAPL or BINANCE:BTCUSDT"),
		),
	)
}

func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return textResult(fmt.Sprintf("Papertrade Server\nVersion: %s\nBuild: %s\nCommit: %s",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())), nil
	}
}

// resolveToolUser picks the user a tool acts for. The authenticated caller is the
// default; naming a different user requires the admin role.
func resolveToolUser(ctx context.Context, request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	userID := common.ResolveUserID(ctx, "")
	if requested := request.GetString("user_id", ""); requested != "" {
		if !common.CanActAs(ctx, requested) {
			return "", errorResult("Error: cannot access another user's data")
		}
		userID = requested
	}
	if userID == "" {
		return "", errorResult("Error: user_id parameter is required")
	}
	return userID, nil
}

func (a *App) handleGetInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, denied := resolveToolUser(ctx, request)
	if denied != nil {
		return denied, nil
	}

	list, err := a.InsightService.ForUser(ctx, userID, request.GetBool("all", false))
	if err != nil {
		return errorResult(fmt.Sprintf("Insight error: %v", err)), nil
	}

	return textResult(formatInsights(list)), nil
}

func (a *App) handleDismissInsight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, denied := resolveToolUser(ctx, request)
	if denied != nil {
		return denied, nil
	}
	insightID, err := request.RequireString("insight_id")
	if err != nil || insightID == "" {
		return errorResult("Error: insight_id parameter is required"), nil
	}

	if err := a.InsightService.Dismiss(ctx, userID, insightID); err != nil {
		return errorResult(fmt.Sprintf("Dismiss error: %v", err)), nil
	}

	return textResult(fmt.Sprintf("Dismissed %s", insightID)), nil
}

func (a *App) handleAskAdvisor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return errorResult("Error: message parameter is required"), nil
	}

	transcript, err := a.AdvisorService.Ask(request.GetString("session_id", ""), message)
	if err != nil {
		return errorResult(fmt.Sprintf("Advisor error: %v", err)), nil
	}

	reply := transcript.Messages[len(transcript.Messages)-1]
	return textResult(fmt.Sprintf("%s\n\n(session: %s)", reply.Content, transcript.SessionID)), nil
}

func (a *App) handleGetQuote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := request.RequireString("symbol")
	if err != nil || symbol == "" {
		return errorResult("Error: symbol parameter is required"), nil
	}

	quote, err := a.MarketService.Quote(ctx, symbol)
	if err != nil {
		return errorResult(fmt.Sprintf("Quote error: %v", err)), nil
	}

	data, err := json.MarshalIndent(quote, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("Error encoding quote: %v", err)), nil
	}
	return textResult(string(data)), nil
}

// formatInsights renders an insight list as markdown
func formatInsights(list *models.InsightList) string {
	var sb strings.Builder
	sb.WriteString("# Portfolio Insights\n\n")

	if len(list.Insights) == 0 {
		sb.WriteString("No insights to show.\n")
	}
	for _, ins := range list.Insights {
		sb.WriteString(fmt.Sprintf("## %s (%s)\n\n", ins.Title, ins.Type))
		sb.WriteString(ins.ShortText + "\n\n")
		sb.WriteString(ins.FullText + "\n\n")
		sb.WriteString(fmt.Sprintf("id: `%s` | learn more: %s\n\n", ins.ID, ins.LearnMoreLink))
	}

	sb.WriteString(fmt.Sprintf("_%d triggered, %d dismissed_\n", list.Total, list.Hidden))
	return sb.String()
}

// textResult creates a successful text result
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// errorResult creates an error result
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
