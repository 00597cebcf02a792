// Package bridge forwards create, update and delete operations to the
// platform and reconciles the local list with the outcome.
package bridge

// Kind is the severity of a notification.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Notification is a user-facing outcome message.
type Notification struct {
	Kind    Kind
	Message string
}

// Notifier receives outcome messages. Delivery is fire-and-forget.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Messages is the copy shown for one operation.
type Messages struct {
	Success string
	Failure string
}

func (m Messages) succeeded() Notification {
	return Notification{Kind: Success, Message: m.Success}
}

func (m Messages) failed(err error) Notification {
	msg := m.Failure
	if err != nil && err.Error() != "" {
		msg += ": " + err.Error()
	}
	return Notification{Kind: Error, Message: msg}
}

var (
	TokenDeleted = Messages{"Token was deleted successfully", "Failed to delete token"}
	TokenCreated = Messages{"Token was generated successfully", "Failed to generate token"}
	TokenStatus  = Messages{"Token status updated", "Failed to update token status"}

	LabelCreated = Messages{"Label was created successfully", "Failed to create label"}
	LabelUpdated = Messages{"Label was updated successfully", "Failed to update label"}
	LabelDeleted = Messages{"Label was deleted successfully", "Failed to delete label"}

	OrgCreated = Messages{"Organization was created successfully", "Failed to create organization"}
	OrgRenamed = Messages{"Organization was renamed successfully", "Failed to rename organization"}
	OrgDeleted = Messages{"Organization was deleted successfully", "Failed to delete organization"}

	BucketCreated = Messages{"Bucket was created successfully", "Failed to create bucket"}
	BucketUpdated = Messages{"Bucket was updated successfully", "Failed to update bucket"}
)
