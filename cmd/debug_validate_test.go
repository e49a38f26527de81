package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugValidateCmd(t *testing.T) {
	validEvent := `
messageVersion: "1.0"
actionGroup: caller-agent
apiPath: /check-spam/+14155550100
httpMethod: GET
parameters:
  - name: phoneNumber
    type: string
    value: "+14155550100"
`

	missingPathEvent := `
messageVersion: "1.0"
httpMethod: GET
`

	badMethodEvent := `
apiPath: /call-record
httpMethod: TELEPORT
`

	badParameterEvent := `
apiPath: /check-spam/+14155550100
httpMethod: GET
parameters:
  - name: phoneNumber
`

	for _, tc := range []struct {
		name        string
		content     string
		expectError bool
		errContains string
	}{
		{name: "valid event", content: validEvent},
		{name: "missing api path", content: missingPathEvent, expectError: true, errContains: "apiPath"},
		{name: "unknown http method", content: badMethodEvent, expectError: true, errContains: "httpMethod"},
		{name: "parameter without a value", content: badParameterEvent, expectError: true, errContains: "value"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			eventFile := writeEventFile(t, "event.yaml", tc.content)

			var out bytes.Buffer
			rootCmd.SetArgs([]string{"debug", "validate", eventFile})
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&out)

			err := rootCmd.Execute()
			if tc.expectError {
				require.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), tc.errContains),
					"expected error to mention %q, got %q", tc.errContains, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), "OK")
		})
	}

	t.Run("file not found", func(t *testing.T) {
		rootCmd.SetArgs([]string{"debug", "validate", "/nonexistent/event.yaml"})
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetErr(&bytes.Buffer{})

		require.Error(t, rootCmd.Execute())
	})
}
