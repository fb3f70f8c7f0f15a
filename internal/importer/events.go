package importer

// Stage describes a per-file pipeline phase.
type Stage string

const (
	// StageLoad is the module-file loading stage.
	StageLoad Stage = "load"
	// StageImport is the measurement-line import stage.
	StageImport Stage = "import"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is currently being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished successfully.
	StatusDone Status = "done"
	// StatusError indicates the file was skipped with an error.
	StatusError Status = "error"
)

// Event reports progress for one module file.
type Event struct {
	File   string
	Stage  Stage
	Status Status
	Err    error
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, file string, stage Stage, status Status, err error) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err})
}
