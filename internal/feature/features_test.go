package feature_test

import (
	"strings"
	"testing"

	"github.com/restic/fhbackup/internal/feature"
	rtest "github.com/restic/fhbackup/internal/test"
)

var (
	alpha      = feature.FlagName("alpha-feature")
	beta       = feature.FlagName("beta-feature")
	stable     = feature.FlagName("stable-feature")
	deprecated = feature.FlagName("deprecated-feature")
)

func buildTestFlagSet() *feature.FlagSet {
	flags := feature.New()
	flags.SetFlags(map[feature.FlagName]feature.FlagDesc{
		alpha:      {Type: feature.Alpha, Description: "alpha"},
		beta:       {Type: feature.Beta, Description: "beta"},
		stable:     {Type: feature.Stable, Description: "stable"},
		deprecated: {Type: feature.Deprecated, Description: "deprecated"},
	})
	return flags
}

func noWarning(t *testing.T) func(string) {
	return func(msg string) {
		t.Errorf("unexpected warning %q", msg)
	}
}

func TestFeatureDefaults(t *testing.T) {
	flags := buildTestFlagSet()
	for _, exp := range []struct {
		flag  feature.FlagName
		value bool
	}{
		{alpha, false},
		{beta, true},
		{stable, true},
		{deprecated, false},
	} {
		rtest.Assert(t, flags.Enabled(exp.flag) == exp.value, "expected flag %v to have value %v got %v", exp.flag, exp.value, flags.Enabled(exp.flag))
	}
}

func TestFeatureApply(t *testing.T) {
	flags := buildTestFlagSet()
	rtest.OK(t, flags.Apply("", noWarning(t)))
	rtest.Assert(t, !flags.Enabled(alpha), "expected alpha feature to be disabled")

	rtest.OK(t, flags.Apply(string(alpha), noWarning(t)))
	rtest.Assert(t, flags.Enabled(alpha), "expected alpha feature to be enabled")

	rtest.OK(t, flags.Apply("alpha-feature=false, beta-feature=false", noWarning(t)))
	rtest.Assert(t, !flags.Enabled(alpha), "expected alpha feature to be disabled")
	rtest.Assert(t, !flags.Enabled(beta), "expected beta feature to be disabled")
}

func TestFeatureApplyFixedPhases(t *testing.T) {
	flags := buildTestFlagSet()

	var warnings []string
	logWarning := func(msg string) { warnings = append(warnings, msg) }

	rtest.OK(t, flags.Apply("stable-feature=false", logWarning))
	rtest.OK(t, flags.Apply("deprecated-feature=true", logWarning))

	rtest.Assert(t, flags.Enabled(stable), "stable feature must stay enabled")
	rtest.Assert(t, !flags.Enabled(deprecated), "deprecated feature must stay disabled")
	rtest.Equals(t, 2, len(warnings))
	rtest.Assert(t, strings.Contains(warnings[0], "always enabled"), "unexpected warning %q", warnings[0])
}

func TestFeatureApplyInvalid(t *testing.T) {
	flags := buildTestFlagSet()

	err := flags.Apply("invalid-flag", noWarning(t))
	rtest.Assert(t, err != nil && strings.Contains(err.Error(), "unknown feature flag"), "expected unknown flag error, got %v", err)

	err = flags.Apply("alpha-feature=yes-please", noWarning(t))
	rtest.Assert(t, err != nil && strings.Contains(err.Error(), "failed to parse value"), "expected parse error, got %v", err)
}

func TestFeatureList(t *testing.T) {
	flags := buildTestFlagSet()

	rtest.Equals(t, []feature.Help{
		{Name: string(alpha), Type: "alpha", Default: false, Description: "alpha"},
		{Name: string(beta), Type: "beta", Default: true, Description: "beta"},
		{Name: string(deprecated), Type: "deprecated", Default: false, Description: "deprecated"},
		{Name: string(stable), Type: "stable", Default: true, Description: "stable"},
	}, flags.List())
}

func TestSetFeatureFlag(t *testing.T) {
	flags := buildTestFlagSet()

	t.Run("set", func(t *testing.T) {
		feature.TestSetFlag(t, flags, alpha, true)
		rtest.Assert(t, flags.Enabled(alpha), "expected alpha feature to be enabled")
	})

	rtest.Assert(t, !flags.Enabled(alpha), "expected alpha feature to be disabled again")
}
