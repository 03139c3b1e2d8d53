package ports

import "context"

// NotificationTypeOrderArrived tags a broadcast announcing a newly paid
// order to operator clients.
const NotificationTypeOrderArrived = 1

// Notification is the flat JSON payload pushed to connected clients.
// Consumers treat it as a hint prompting a re-fetch, not as authoritative
// order state: by the time it is read the order may have advanced further.
type Notification struct {
	Type    int    `json:"type"`
	OrderID int64  `json:"orderId"`
	Content string `json:"content"`
}

// Notifier fans a notification out to live operator connections.
// Delivery is best effort: failures are logged by the implementation and
// never surfaced to the state transition that triggered the broadcast.
type Notifier interface {
	// Broadcast attempts delivery to every currently registered connection.
	Broadcast(ctx context.Context, notification Notification)

	// SendTo attempts delivery to one connection; absent or closed
	// connections are silently skipped.
	SendTo(ctx context.Context, connectionID string, notification Notification)
}
