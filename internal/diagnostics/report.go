package diagnostics

import (
	"context"
	"strings"

	"github.com/jonesrussell/north-cloud/postbot/internal/content"
	"github.com/jonesrussell/north-cloud/postbot/internal/publisher"
)

// SecretCheck is one line of the configuration checklist.
type SecretCheck struct {
	Name string
	Set  bool
}

// Secret pairs an environment variable name with its loaded value.
type Secret struct {
	Name  string
	Value string
}

// Checklist reports which secrets are present, in the given order.
func Checklist(secrets []Secret) []SecretCheck {
	out := make([]SecretCheck, 0, len(secrets))
	for _, s := range secrets {
		out = append(out, SecretCheck{Name: s.Name, Set: strings.TrimSpace(s.Value) != ""})
	}
	return out
}

// Missing returns the names of unset secrets.
func Missing(checks []SecretCheck) []string {
	var names []string
	for _, c := range checks {
		if !c.Set {
			names = append(names, c.Name)
		}
	}
	return names
}

// Generator produces a sample post.
type Generator interface {
	Generate(ctx context.Context, c content.Category) content.Content
}

// Report is the full diagnostics outcome.
type Report struct {
	Secrets    []SecretCheck
	Missing    []string
	Credential *CredentialResult
	// CredentialErr is an unexpected failure of the credential check.
	CredentialErr error
	Sample        *content.Content
}

// Healthy reports whether every step passed.
func (r *Report) Healthy() bool {
	return len(r.Missing) == 0 &&
		r.CredentialErr == nil &&
		r.Credential != nil && r.Credential.OK() &&
		r.Sample != nil && !r.Sample.UsedFallback
}

// FixSteps returns what to do about a failed credential check.
func (r *Report) FixSteps() []string {
	if r.Credential == nil || r.Credential.OK() {
		return nil
	}
	if !r.Credential.Authenticated {
		return []string{"Check the TWITTER_* credentials in your .env file"}
	}
	return []string{
		"Go to " + publisher.DeveloperPortalURL,
		"Select your app",
		"Go to 'App permissions' section",
		"Change from 'Read' to 'Read and Write'",
		"Save changes",
		"Go to 'Keys and tokens' section",
		"Regenerate your Access Token & Secret",
		"Update your .env file with the new tokens",
		"Run this test again",
	}
}

// Run checks the secrets and stops if any is missing. Otherwise it checks
// the platform credentials and generates a coding_tip sample.
func Run(ctx context.Context, secrets []Secret, checker *Checker, gen Generator) *Report {
	report := &Report{Secrets: Checklist(secrets)}
	report.Missing = Missing(report.Secrets)
	if len(report.Missing) > 0 {
		return report
	}

	res, err := checker.Check(ctx)
	report.Credential = &res
	report.CredentialErr = err

	sample := gen.Generate(ctx, content.CodingTip)
	report.Sample = &sample

	return report
}
