package domain

// Model is a benchmarked language model in the catalog.
// OpenAIEndpoint and APIToken are the system-level connection details used by
// the test runner; they are only meaningful to staff operators.
type Model struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	OpenAIEndpoint string `json:"openai_link,omitempty"`
	APIToken       string `json:"api_token,omitempty"`
}

// Credential grants one user programmatic access to one model through the
// OpenAI-compatible gateway. At most one Credential may exist per
// (user, model) pair; credentials never expire and are append-only.
type Credential struct {
	ID      int64  `json:"id"`
	ModelID int64  `json:"llm"`
	UserID  int64  `json:"user"`
	Secret  string `json:"token"`
}
