// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor: Pulls plain text out of one file format
//   - ExtractorRegistry: Dispatches files to extractors, never fails outward
//   - TextProcessor / TextPipeline: Compresses extracted text
//   - ChunkPlanner: Splits the corpus into model requests
//   - LLMService: Language model completions
//   - PromptStore: Prompt templates
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
