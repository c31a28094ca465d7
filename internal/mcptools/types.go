package mcptools

// --- MCP Tool Input/Output Types ---
// The MCP Go SDK derives each tool's JSON schema from these structs.

// GetCapabilitiesInput is the input for the get_capabilities tool.
type GetCapabilitiesInput struct{}

// CapabilityOutput describes one optional capability.
type CapabilityOutput struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Detail    string `json:"detail,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// GetCapabilitiesOutput is the result of the get_capabilities tool.
type GetCapabilitiesOutput struct {
	Level        string             `json:"level"`
	Capabilities []CapabilityOutput `json:"capabilities"`
}

// ExtractTextInput is the input for the extract_text tool.
type ExtractTextInput struct {
	Path     string `json:"path" jsonschema:"absolute path to a .pdf, .docx, .txt or .md file"`
	MaxRunes int    `json:"maxRunes,omitempty" jsonschema:"truncate the returned text to this many characters (default: no limit)"`
}

// ExtractTextOutput is the result of the extract_text tool.
type ExtractTextOutput struct {
	Name      string `json:"name"`
	Format    string `json:"format"`
	Pages     int    `json:"pages,omitempty"`
	Text      string `json:"text"`
	Truncated bool   `json:"truncated,omitempty"`
}

// RenderPreviewInput is the input for the render_preview tool.
type RenderPreviewInput struct {
	Path string `json:"path" jsonschema:"absolute path to the document to preview"`
}

// RenderPreviewOutput is the result of the render_preview tool.
type RenderPreviewOutput struct {
	Mode  string   `json:"mode"`
	Dir   string   `json:"dir"`
	Files []string `json:"files"`
	Pages int      `json:"pages"`
	Note  string   `json:"note,omitempty"`
}

// SummarizeInput is the input for the summarize_document tool.
type SummarizeInput struct {
	Path string `json:"path" jsonschema:"absolute path to the document to summarize"`
}

// SummarizeOutput is the result of the summarize_document tool.
type SummarizeOutput struct {
	Document string `json:"document"`
	Mode     string `json:"mode"`
	Model    string `json:"model,omitempty"`
	Summary  string `json:"summary"`
}
