package scan

import (
	"net/url"

	"github.com/tracepoint/tracepoint/internal/compliance"
	"github.com/tracepoint/tracepoint/internal/model"
	"github.com/tracepoint/tracepoint/internal/risk"
)

// Demo identifiers short-circuit the orchestrator at the CLI and
// server boundaries with a canned, fully enriched result. This is
// distinct from adapter-local degraded mode: demo seeding skips the
// pipeline entirely so the walkthrough works offline and instantly.
const (
	DemoEmail  = "demo@tracepoint.com"
	DemoHandle = "demo_user"
)

// DemoResult returns the canned result for the two demo identifiers,
// or false for everything else. The result matches byte-for-byte what
// a degraded-mode scan of the same identifier would produce.
func DemoResult(identifier string) (*model.ScanResult, bool) {
	target := model.NewTarget(identifier, "")

	switch target.Identifier {
	case DemoEmail:
		return demoResult(target,
			demoGitHub(target),
			demoPastebin(target),
			demoHIBP(),
		), true
	case DemoHandle:
		return demoResult(target,
			demoGitHub(target),
			demoPastebin(target),
			demoReddit(target),
		), true
	default:
		return nil, false
	}
}

// demoResult assembles the canned exposures the way enrichment would:
// none of the simulated descriptions contain concrete sensitive-data
// patterns, so every exposure carries the generic compliance note and
// contributes one baseline finding to the score.
func demoResult(target model.Target, exposures ...model.Exposure) *model.ScanResult {
	result := model.NewScanResult(target)
	findings := make([]model.Finding, 0, len(exposures))
	for _, exposure := range exposures {
		exposure.AddComplianceNote(compliance.GenericNote)
		result.Exposures = append(result.Exposures, exposure)
		findings = append(findings, model.Finding{
			Category:   model.CategoryGeneralExposure,
			Confidence: model.ConfidenceLow,
		})
	}
	result.TotalLeaks = len(result.Exposures)
	result.RiskScore = risk.Score(findings)

	return result
}

func demoGitHub(target model.Target) model.Exposure {
	return model.Exposure{
		Platform:    "GitHub (Simulated)",
		RiskLevel:   model.RiskHigh,
		Description: "Exposed API keys and personal email found in 'test-repo' commits.",
		PIIFound:    []string{"Email", "AWS Access Key (Simulated)", "Commit History"},
		URL:         "https://github.com/search?q=" + url.QueryEscape(target.Identifier) + "&type=commits",
	}
}

func demoPastebin(target model.Target) model.Exposure {
	return model.Exposure{
		Platform:  "Pastebin (Simulated Dork)",
		RiskLevel: model.RiskCritical,
		Description: "Identifier found in a recent 'combolist' text dump. " +
			"This means hackers are actively trying to use these credentials.",
		PIIFound: []string{"Email", "Plaintext Password", "Username"},
		URL:      "https://www.google.com/search?q=" + url.QueryEscape(`site:pastebin.com "`+target.Identifier+`"`),
	}
}

func demoReddit(target model.Target) model.Exposure {
	return model.Exposure{
		Platform:    "Reddit (Simulated)",
		RiskLevel:   model.RiskMedium,
		Description: "Profile found. User has posted in r/cybersecurity and r/hyderabad. Possible location leakage.",
		PIIFound:    []string{"Username", "Geographic Location (Inferred)"},
		URL:         "https://www.reddit.com/user/" + url.PathEscape(target.Username),
	}
}

func demoHIBP() model.Exposure {
	return model.Exposure{
		Platform:    "HaveIBeenPwned (Historical Breaches)",
		RiskLevel:   model.RiskCritical,
		Description: "Email and password hash exposed in 2012 LinkedIn and 2019 Canva data breaches.",
		PIIFound:    []string{"Email", "Password Hash", "IP Address", "Geographic Location"},
		URL:         "https://haveibeenpwned.com/PwnedWebsites#LinkedIn",
	}
}
