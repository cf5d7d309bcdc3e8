package domain

import "fmt"

// notSpecified is shown in prompts for empty tender fields.
const notSpecified = "Не указано"

// TenderInfo is the fixed tender metadata passed alongside the documents.
// It is provided by the tender-registry collaborator and passed through
// unchanged to the AnalysisResult.
type TenderInfo struct {
	// Number is the registry number of the tender.
	Number string

	// Customer is the procuring organisation.
	Customer string

	// Subject is the subject of the procurement.
	Subject string

	// Price is the initial maximum contract price, as displayed.
	Price string

	// PublicationDate is when the tender was published.
	PublicationDate string

	// SubmissionDeadline is the application deadline.
	SubmissionDeadline string

	// Status is the registry status of the tender.
	Status string

	// DeliveryPlace is the place of delivery.
	DeliveryPlace string

	// DeliveryTerms is the delivery schedule.
	DeliveryTerms string

	// Raw holds the untouched registry record.
	Raw map[string]any
}

// Field returns value or a placeholder when it is empty.
func (t TenderInfo) Field(value string) string {
	if value == "" {
		return notSpecified
	}
	return value
}

// AnalysisQuality describes how much of the request could be analysed.
type AnalysisQuality string

// Analysis quality levels.
const (
	// QualityComplete means every chunk produced a model answer.
	QualityComplete AnalysisQuality = "complete"

	// QualityPartial means at least one chunk failed and was replaced by an
	// inline error string.
	QualityPartial AnalysisQuality = "partial"

	// QualityNoDocuments means no analysable text was found.
	QualityNoDocuments AnalysisQuality = "no_documents"
)

// SearchQuery is one supplier-search query extracted from the final answer.
type SearchQuery struct {
	// Label is the procurement line item.
	Label string

	// Query is the search string for that item.
	Query string
}

// AnalysisResult is returned to the caller for one analysis request.
// It is never cached by the pipeline.
type AnalysisResult struct {
	// Summary is the free-form model answer, or an explanation of why no
	// analysis was possible.
	Summary string

	// SearchQueries holds the parsed queries in model order.
	SearchQueries []SearchQuery

	// Input is the tender metadata the analysis was run for.
	Input TenderInfo

	// DocumentCount is the number of documents that contributed text.
	DocumentCount int

	// ChunkCount is the number of chunk-level model requests.
	ChunkCount int

	// Quality describes how complete the analysis is.
	Quality AnalysisQuality
}

// QueriesMap returns the item label to search query mapping.
// Later duplicates of a label overwrite earlier ones.
func (r *AnalysisResult) QueriesMap() map[string]string {
	m := make(map[string]string, len(r.SearchQueries))
	for _, q := range r.SearchQueries {
		m[q.Label] = q.Query
	}
	return m
}

// HasQueries reports whether structured queries are available.
func (r *AnalysisResult) HasQueries() bool {
	return len(r.SearchQueries) > 0
}

// LLMResult is the outcome of one model call: either text or an error.
type LLMResult struct {
	// Text is the model answer when Err is nil.
	Text string

	// Err is the failure contacting the model, if any.
	Err error

	// Part is the 1-based chunk number the result belongs to (0 for reduce).
	Part int
}

// OK reports whether the call succeeded.
func (r LLMResult) OK() bool {
	return r.Err == nil
}

// Display returns the model text, or a visible error string standing in for
// the answer so that downstream steps can treat it as degraded input.
func (r LLMResult) Display() string {
	if r.Err == nil {
		return r.Text
	}
	if r.Part > 0 {
		return fmt.Sprintf("[Ошибка анализа части %d: %v]", r.Part, r.Err)
	}
	return fmt.Sprintf("[Ошибка анализа: %v]", r.Err)
}
