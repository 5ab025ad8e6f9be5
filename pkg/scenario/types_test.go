package scenario

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_Validate(t *testing.T) {
	valid := Scenario{
		Name: "ok",
		Steps: []Step{
			Navigate("/sign-up", "/", "/login"),
			Fill("#email", "test"),
			Click("#submit"),
			Settle(time.Second),
			Scroll(),
		},
		FinalAssertion: VisibleWithin(1000, "marker"),
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantErr string
	}{
		{
			name:    "missing name",
			mutate:  func(s *Scenario) { s.Name = "" },
			wantErr: "no name",
		},
		{
			name:    "navigate without url",
			mutate:  func(s *Scenario) { s.Steps[0].URL = "" },
			wantErr: "navigate step needs a url",
		},
		{
			name:    "fill without selector",
			mutate:  func(s *Scenario) { s.Steps[1].Selector = "" },
			wantErr: "fill step needs a selector",
		},
		{
			name:    "click without selector",
			mutate:  func(s *Scenario) { s.Steps[2].Selector = "" },
			wantErr: "click step needs a selector",
		},
		{
			name:    "wait without duration",
			mutate:  func(s *Scenario) { s.Steps[3].Duration = 0 },
			wantErr: "positive duration",
		},
		{
			name:    "unknown step type",
			mutate:  func(s *Scenario) { s.Steps[4].Type = "hover" },
			wantErr: "unknown step type",
		},
		{
			name:    "no assertion target",
			mutate:  func(s *Scenario) { s.FinalAssertion = Assertion{} },
			wantErr: "no final assertion target",
		},
		{
			name:    "bad assertion mode",
			mutate:  func(s *Scenario) { s.FinalAssertion.Mode = "maybe" },
			wantErr: "unknown assertion mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := valid
			sc.Steps = append([]Step(nil), valid.Steps...)
			tt.mutate(&sc)
			err := sc.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStepBuilders(t *testing.T) {
	nav := Navigate("/sign-up", "/", "/login")
	assert.Equal(t, StepNavigate, nav.Type)
	assert.Equal(t, []string{"/", "/login"}, nav.Fallbacks)

	fill := Fill("#email", "test", "#alt").WithTimeout(2500).AsRequired()
	assert.Equal(t, StepFill, fill.Type)
	assert.Equal(t, []string{"#alt"}, fill.AltSelectors)
	assert.Equal(t, 2500.0, fill.Timeout)
	assert.True(t, fill.Required)

	// Builders return copies; the original stays exploratory.
	plain := Fill("#email", "test")
	_ = plain.AsRequired()
	assert.False(t, plain.Required)

	wait := Settle(3 * time.Second)
	assert.Equal(t, 3*time.Second, wait.Duration.Std())

	probe := Scroll()
	assert.Zero(t, probe.DeltaY)

	back := ScrollBy(0, -600)
	assert.Equal(t, -600.0, back.DeltaY)
}

func TestAssertionBuilders(t *testing.T) {
	present := VisibleWithin(30000, "Exclusive Fan Content Access")
	assert.Equal(t, ExpectVisible, present.Mode)
	assert.Equal(t, 30000.0, present.Timeout)

	absent := AbsentWithin(1000, "Authentication Successful")
	assert.Equal(t, ExpectAbsent, absent.Mode)
}

func TestOutcome_Passed(t *testing.T) {
	assert.True(t, Outcome{Status: StatusPassed}.Passed())
	assert.False(t, Outcome{Status: StatusFailed}.Passed())
	assert.False(t, Outcome{Status: StatusErrored}.Passed())
}
