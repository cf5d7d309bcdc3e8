package domain

// ProgressStage identifies a step of one analysis request.
type ProgressStage string

// Progress stages in the order they are emitted.
const (
	// StageExtracting is emitted before text extraction starts.
	StageExtracting ProgressStage = "extracting"

	// StagePlanning is emitted once the corpus is assembled, before any
	// model request is submitted.
	StagePlanning ProgressStage = "planning"

	// StageChunk is emitted before each chunk is submitted.
	StageChunk ProgressStage = "chunk"

	// StageReducing is emitted before the combining request.
	StageReducing ProgressStage = "reducing"

	// StageDone is emitted when the result is ready.
	StageDone ProgressStage = "done"
)

// ProgressEvent is a human-readable status notification for the front-end.
type ProgressEvent struct {
	Stage ProgressStage

	// Part is the 1-based chunk number for StageChunk.
	Part int

	// Total is the number of chunks in the plan, when known.
	Total int

	// Message is a ready-to-display status line.
	Message string
}
