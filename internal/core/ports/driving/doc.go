// Package driving holds the ports the CLI and MCP adapters call into.
//
// AnalysisService runs the document pipeline (extract, compress, plan,
// summarise, reduce) and exposes search-query extraction on its own.
// SettingsService reads and validates LLM and analysis settings.
package driving
