package models

// LLMMode reports which collaborator backend is active. Mode "local" runs
// against Ollama, "web" against Gemini.
type LLMMode struct {
	Mode     string `json:"mode"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}
