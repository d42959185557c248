package driver

import "time"

// Stage describes a phase of checking one dump.
type Stage string

const (
	// StageRead is the dump file read stage.
	StageRead Stage = "read"
	// StageDecode is the HIR dump decode stage.
	StageDecode Stage = "decode"
	// StageCheck is the attribute pass stage.
	StageCheck Stage = "check"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is currently being checked.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished without errors.
	StatusDone Status = "done"
	// StatusError indicates the file produced errors.
	StatusError Status = "error"
)

// Event reports progress for one dump file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
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

func emitEvent(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageRead, Status: StatusQueued})
	}
}
