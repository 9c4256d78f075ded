// Package detector is the per-subdomain orchestrator: it drives DNS and
// HTTP/TLS probes, folds their outputs into a confidence score, and
// classifies the result into a six-level verdict lattice. It never
// returns an error to its caller — every failure becomes evidence on
// the Finding instead.
package detector

import (
	"time"

	"github.com/vulnverified/sweep/internal/catalog"
)

// Verdict is the final classification of a Finding.
type Verdict string

const (
	VerdictConfirmed    Verdict = "CONFIRMED"
	VerdictHighlyLikely Verdict = "HIGHLY_LIKELY"
	VerdictLikely       Verdict = "LIKELY"
	VerdictPossible     Verdict = "POSSIBLE"
	VerdictUnlikely     Verdict = "UNLIKELY"
	VerdictSafe         Verdict = "SAFE"
	VerdictError        Verdict = "ERROR"
)

// maxEvidenceItems bounds the evidence trail aggregate() builds (§4.4):
// past this many signal lines, additional ones are dropped rather than
// grown without limit.
const maxEvidenceItems = 20

// Finding is the frozen record of one analyzed hostname. Fields are
// populated in-order by Detector.Analyze and never mutated afterward.
type Finding struct {
	Subdomain string `json:"subdomain"`

	// DNS signals.
	CNAME                   string   `json:"cname,omitempty"`
	CNAMEChain              []string `json:"cname_chain,omitempty"`
	ARecords                []string `json:"a_records,omitempty"`
	NSRecords               []string `json:"ns_records,omitempty"`
	DanglingNS              []string `json:"dangling_ns,omitempty"`
	DanglingCNAMEChainLinks []string `json:"dangling_cname_chain_links,omitempty"`

	// HTTP signals.
	HTTPStatus   int               `json:"http_status,omitempty"`
	HTTPSStatus  int               `json:"https_status,omitempty"`
	FinalURL     string            `json:"final_url,omitempty"`
	Body         string            `json:"-"`
	PageTitle    string            `json:"page_title,omitempty"`
	ResponseTime time.Duration     `json:"response_time_ns,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	IsLive       bool              `json:"is_live"`

	// TLS signals.
	SSLCertCN   string `json:"ssl_cert_cn,omitempty"`
	SSLMismatch bool   `json:"ssl_mismatch,omitempty"`

	// Derived.
	Provider          string            `json:"provider,omitempty"`
	ProviderRisk      catalog.RiskLevel `json:"provider_risk,omitempty"`
	HeaderFingerprint string            `json:"header_fingerprint,omitempty"`
	DanglingARecord   bool              `json:"dangling_a_record,omitempty"`
	NXDOMAINCName     bool              `json:"nxdomain_cname,omitempty"`
	NSTakeover        bool              `json:"ns_takeover,omitempty"`
	Confidence        int               `json:"confidence"`
	Verdict           Verdict           `json:"verdict"`
	RiskLevel         catalog.RiskLevel `json:"risk_level,omitempty"`
	Evidence          []string          `json:"evidence,omitempty"`
	VerificationSteps []string          `json:"verification_steps,omitempty"`
}
