package detector

import (
	"fmt"

	"github.com/vulnverified/sweep/internal/catalog"
)

// buildVerificationSteps emits Stage 10's ordered, human-actionable
// instructions for any non-SAFE, non-ERROR verdict. NS takeover gets a
// dedicated script; everything else defers to the matched provider's
// catalog.Provider.ClaimHint, so adding a provider never touches this
// function.
func buildVerificationSteps(f *Finding, provider *catalog.Provider) []string {
	if f.NSTakeover {
		return []string{
			fmt.Sprintf("Register or otherwise take control of the dead nameserver domain(s): %v", f.DanglingNS),
			fmt.Sprintf("Configure that nameserver to answer authoritatively for %s", f.Subdomain),
			"Serve a canary record and confirm it resolves through the victim's delegation before reporting",
		}
	}

	if provider != nil {
		return []string{
			provider.ClaimHint,
			fmt.Sprintf("Re-probe %s after claiming the resource and confirm the response no longer matches the dangling pattern", f.Subdomain),
		}
	}

	return []string{
		fmt.Sprintf("Manually confirm the resource %s delegates to is unclaimed before treating this as exploitable", f.Subdomain),
	}
}
