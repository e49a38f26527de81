package reputation

import "context"

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	LookupFunc func(ctx context.Context, number string) (*LineInfo, error)

	LookupCount int
}

// NewMockClient creates a new MockClient.
func NewMockClient() *MockClient {
	return &MockClient{
		LookupFunc: func(ctx context.Context, number string) (*LineInfo, error) {
			return &LineInfo{
				Valid:       true,
				Number:      number,
				CountryName: "Australia",
				Carrier:     "Telstra",
				LineType:    "mobile",
			}, nil
		},
	}
}

// Lookup calls the LookupFunc.
func (m *MockClient) Lookup(ctx context.Context, number string) (*LineInfo, error) {
	m.LookupCount++
	return m.LookupFunc(ctx, number)
}
