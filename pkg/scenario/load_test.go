package scenario

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
scenarios:
  - name: fan-sign-up
    steps:
      - type: navigate
        url: /sign-up
        fallbacks: ["/", "/login"]
      - type: wait
        duration: 3s
      - type: fill
        selector: 'input[type="email"]'
        alt_selectors: ['input[name="email"]']
        value: test
      - type: click
        selector: 'button[type="submit"]'
        required: true
      - type: scroll
        delta_y: -600
    assert:
      texts: ["Exclusive Fan Content Access"]
      mode: visible
      timeout: 30000
  - name: invalid-sign-in
    steps:
      - type: navigate
        url: /sign-in
    assert:
      texts: ["Authentication Successful"]
      mode: absent
      timeout: 1000
`

func TestParse_FullDocument(t *testing.T) {
	scenarios, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	signUp := scenarios[0]
	assert.Equal(t, "fan-sign-up", signUp.Name)
	require.Len(t, signUp.Steps, 5)

	assert.Equal(t, StepNavigate, signUp.Steps[0].Type)
	assert.Equal(t, []string{"/", "/login"}, signUp.Steps[0].Fallbacks)

	assert.Equal(t, StepWait, signUp.Steps[1].Type)
	assert.Equal(t, 3*time.Second, signUp.Steps[1].Duration.Std())

	assert.Equal(t, []string{`input[name="email"]`}, signUp.Steps[2].AltSelectors)
	assert.True(t, signUp.Steps[3].Required)
	assert.Equal(t, -600.0, signUp.Steps[4].DeltaY)

	assert.Equal(t, ExpectVisible, signUp.FinalAssertion.Mode)
	assert.Equal(t, 30000.0, signUp.FinalAssertion.Timeout)

	assert.Equal(t, ExpectAbsent, scenarios[1].FinalAssertion.Mode)
}

func TestParse_NumericDuration(t *testing.T) {
	doc := `
scenarios:
  - name: numeric-wait
    steps:
      - type: wait
        duration: 2
      - type: wait
        duration: 1.5
    assert:
      texts: ["done"]
`
	scenarios, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, scenarios[0].Steps[0].Duration.Std())
	assert.Equal(t, 1500*time.Millisecond, scenarios[0].Steps[1].Duration.Std())
}

func TestParse_RejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "empty document",
			doc:     "scenarios: []",
			wantErr: "no scenarios",
		},
		{
			name: "duplicate names",
			doc: `
scenarios:
  - name: dup
    steps: [{type: scroll}]
    assert: {texts: ["x"]}
  - name: dup
    steps: [{type: scroll}]
    assert: {texts: ["x"]}
`,
			wantErr: "duplicate scenario name",
		},
		{
			name: "invalid step",
			doc: `
scenarios:
  - name: broken
    steps: [{type: fill, value: v}]
    assert: {texts: ["x"]}
`,
			wantErr: "fill step needs a selector",
		},
		{
			name:    "not yaml",
			doc:     "{{{",
			wantErr: "failed to parse",
		},
		{
			name: "bad duration string",
			doc: `
scenarios:
  - name: bad-wait
    steps: [{type: wait, duration: soon}]
    assert: {texts: ["x"]}
`,
			wantErr: "invalid duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0600))

	scenarios, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, scenarios, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
