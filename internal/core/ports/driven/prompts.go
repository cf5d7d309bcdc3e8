package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// Templates are Go text/template sources rendered with the tender metadata.
const (
	// PromptSystem is the system message sent with every analysis request.
	// This prompt has no placeholders.
	PromptSystem = "system"

	// PromptAnalyseSingle analyses a corpus that fits in one request.
	// Fields: .Tender, .Text.
	PromptAnalyseSingle = "analyse_single"

	// PromptAnalyseChunk analyses one part of a multi-chunk corpus.
	// Fields: .Tender, .Text, .Part, .Total.
	PromptAnalyseChunk = "analyse_chunk"

	// PromptReduce combines per-chunk answers into one final answer.
	// Fields: .Tender, .Text, .Total.
	PromptReduce = "reduce"
)

// PromptNames lists every prompt the application loads.
func PromptNames() []string {
	return []string{PromptSystem, PromptAnalyseSingle, PromptAnalyseChunk, PromptReduce}
}

// PromptStoreAware is an optional interface for services that can use custom prompts.
// Services implementing this interface can have their prompt templates customised
// by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
