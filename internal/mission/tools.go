package mission

// ToolID names a defensive action.
type ToolID string

const (
	ToolDisableClipboard ToolID = "disable_clipboard"
	ToolBlockIP          ToolID = "block_ip"
	ToolStartSnort       ToolID = "start_snort"
	ToolPacketCapture    ToolID = "packet_capture"
	ToolEnableLogging    ToolID = "enable_logging"
)

// Tool describes a defensive action for display.
type Tool struct {
	ID          ToolID `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var tools = []Tool{
	{ID: ToolDisableClipboard, Label: "Disable Clipboard", Description: "Block clipboard sharing"},
	{ID: ToolBlockIP, Label: "Block IP", Description: "Temporary IP ban"},
	{ID: ToolStartSnort, Label: "Start Snort", Description: "IDS detection"},
	{ID: ToolPacketCapture, Label: "Packet Capture", Description: "Network monitoring"},
	{ID: ToolEnableLogging, Label: "Enable Logging", Description: "Enhanced audit logs"},
}

// Tools returns the known defensive actions in display order.
func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

// LookupTool returns display data for id. Unknown ids get their id as label.
func LookupTool(id ToolID) Tool {
	for _, t := range tools {
		if t.ID == id {
			return t
		}
	}
	return Tool{ID: id, Label: string(id)}
}
