package notifier

import "context"

// PublishCall records the arguments of one Publish invocation.
type PublishCall struct {
	Subject string
	Message string
}

// MockNotifier is a mock implementation of the Notifier interface for testing.
type MockNotifier struct {
	PublishFunc func(ctx context.Context, subject, message string) (string, error)

	Calls []PublishCall
}

// NewMockNotifier creates a new MockNotifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{
		PublishFunc: func(ctx context.Context, subject, message string) (string, error) {
			return "msg-1", nil
		},
	}
}

// Publish calls the PublishFunc.
func (m *MockNotifier) Publish(ctx context.Context, subject, message string) (string, error) {
	m.Calls = append(m.Calls, PublishCall{Subject: subject, Message: message})
	return m.PublishFunc(ctx, subject, message)
}
