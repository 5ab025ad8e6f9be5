package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_AllScenariosValid(t *testing.T) {
	catalog := Catalog()
	require.NotEmpty(t, catalog)

	seen := map[string]bool{}
	for _, sc := range catalog {
		assert.NoError(t, sc.Validate(), "scenario %q", sc.Name)
		assert.False(t, seen[sc.Name], "duplicate name %q", sc.Name)
		seen[sc.Name] = true
	}
}

func TestCatalog_FanSignUpShape(t *testing.T) {
	sc := byName(t, "fan-sign-up-success")

	// The sign-up route carries its discovery fallbacks in authored order.
	var nav *Step
	for i := range sc.Steps {
		if sc.Steps[i].Type == StepNavigate && sc.Steps[i].URL == "/sign-up" {
			nav = &sc.Steps[i]
			break
		}
	}
	require.NotNil(t, nav)
	assert.Equal(t, []string{"/", "/login"}, nav.Fallbacks)

	assert.Equal(t, ExpectVisible, sc.FinalAssertion.Mode)
	assert.Equal(t, []string{"Exclusive Fan Content Access"}, sc.FinalAssertion.Texts)
	assert.Equal(t, 30000.0, sc.FinalAssertion.Timeout)
}

func TestCatalog_InvalidSignInKeepsRecordedPolarity(t *testing.T) {
	sc := byName(t, "invalid-sign-in")

	// The recorded flow asserts the success banner and relies on it never
	// appearing; the polarity is preserved rather than reinterpreted.
	assert.Equal(t, ExpectVisible, sc.FinalAssertion.Mode)
	assert.Equal(t, []string{"Authentication Successful"}, sc.FinalAssertion.Texts)
	assert.Equal(t, 1000.0, sc.FinalAssertion.Timeout)
}

func TestCatalog_CrossRoleAccessAssertsBothMarkers(t *testing.T) {
	sc := byName(t, "cross-role-access-prevented")
	assert.Len(t, sc.FinalAssertion.Texts, 2)

	var probed bool
	for _, step := range sc.Steps {
		if step.Type == StepNavigate && step.URL == "/artist/dashboard" {
			probed = true
		}
	}
	assert.True(t, probed, "must probe the artist dashboard route")
}

func TestCatalog_RoleLessRedirect(t *testing.T) {
	sc := byName(t, "unrouted-role-redirect")
	assert.Equal(t, []string{"User role selection required"}, sc.FinalAssertion.Texts)
	assert.Equal(t, 1000.0, sc.FinalAssertion.Timeout)
}

func byName(t *testing.T, name string) Scenario {
	t.Helper()
	for _, sc := range Catalog() {
		if sc.Name == name {
			return sc
		}
	}
	t.Fatalf("scenario %q not in catalog", name)
	return Scenario{}
}
