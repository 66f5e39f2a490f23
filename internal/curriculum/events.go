package curriculum

import (
	"errors"

	"curriculum/internal/qerrors"

	"github.com/golang/glog"
)

type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

type EntityKind string

const (
	KindModule  EntityKind = "module"
	KindContent EntityKind = "content"
)

// Event describes the outcome of a single mutation for whoever renders confirmations.
type Event struct {
	Operation Operation  `json:"operation"`
	Kind      EntityKind `json:"entity_kind"`
	EntityID  string     `json:"entity_id,omitempty"`
	Success   bool       `json:"success"`
	Reason    string     `json:"reason,omitempty"`
	// Removed is the number of content items removed along with a deleted module.
	Removed int `json:"removed,omitempty"`
}

// Notifier receives an Event after each mutation attempt the store reports on.
type Notifier interface {
	Notify(e Event)
}

// NotifierFunc adapts a plain function to a Notifier.
type NotifierFunc func(e Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// LogNotifier writes every event to glog.
type LogNotifier struct{}

func (LogNotifier) Notify(e Event) {
	if e.Success {
		glog.Infof("%s %s %s succeeded\n", e.Operation, e.Kind, e.EntityID)
		return
	}
	glog.Warningf("%s %s %s failed: %s\n", e.Operation, e.Kind, e.EntityID, e.Reason)
}

func succeeded(op Operation, kind EntityKind, id string) Event {
	return Event{Operation: op, Kind: kind, EntityID: id, Success: true}
}

func failed(op Operation, kind EntityKind, id string, err error) Event {
	reason := err.Error()
	if errors.Is(err, qerrors.NotFoundError) {
		reason = "not_found"
	} else if errors.Is(err, qerrors.InvalidParentError) {
		reason = "invalid_parent"
	}
	return Event{Operation: op, Kind: kind, EntityID: id, Success: false, Reason: reason}
}
