package threadpool

// Job is a unit of work. It is called exactly once by a single worker.
type Job func()

type MessageKind int

const (
	MessageJob MessageKind = iota
	MessageTerminate
)

func (k MessageKind) String() string {
	switch k {
	case MessageJob:
		return "job"
	case MessageTerminate:
		return "terminate"
	default:
		return "unknown"
	}
}

// Message is what travels through the queue: either a job to run or a
// terminate token addressed to whichever worker pops it.
type Message struct {
	Kind MessageKind
	Job  Job
}

func jobMessage(j Job) Message {
	return Message{Kind: MessageJob, Job: j}
}

func terminateMessage() Message {
	return Message{Kind: MessageTerminate}
}
