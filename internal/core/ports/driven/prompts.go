package driven

// PromptStore provides access to LLM prompt templates.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptOutreachSystem is the system prompt for outreach generation.
	// Users describe their product here. No format placeholders.
	PromptOutreachSystem = "outreach_system"

	// PromptOutreachRequest wraps the prospect batch. The template expects a
	// single %s placeholder for the JSON-encoded batch.
	PromptOutreachRequest = "outreach_request"
)
