package catalog

import "testing"

func TestIdentifyByCNAME(t *testing.T) {
	tests := []struct {
		name  string
		cname string
		chain []string
		want  string // provider name, "" for no match
	}{
		{"s3 direct", "missing-xyz.s3.amazonaws.com", nil, "aws_s3"},
		{"github pages", "someorg.github.io", nil, "github_pages"},
		{"heroku case-insensitive", "OLD-APP.HEROKUAPP.COM", nil, "heroku"},
		{"match via chain when head doesn't match", "alias.example.net", []string{"alias.example.net", "target.netlify.app"}, "netlify"},
		{"no match", "cdn.example.com", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdentifyByCNAME(tt.cname, tt.chain)
			if tt.want == "" {
				if got != nil {
					t.Errorf("expected no match, got %s", got.Name)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %s, got no match", tt.want)
			}
			if got.Name != tt.want {
				t.Errorf("provider = %s, want %s", got.Name, tt.want)
			}
		})
	}
}

func TestIdentifyByHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"s3 server header", map[string]string{"server": "AmazonS3"}, "aws_s3"},
		{"vercel presence-only header", map[string]string{"x-vercel-error": "DEPLOYMENT_NOT_FOUND"}, "vercel"},
		{"partial fingerprint does not match", map[string]string{"server": "nginx"}, ""},
		{"empty headers", map[string]string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdentifyByHeaders(tt.headers)
			if tt.want == "" {
				if got != nil {
					t.Errorf("expected no match, got %s", got.Name)
				}
				return
			}
			if got == nil || got.Name != tt.want {
				t.Errorf("got %v, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyIP(t *testing.T) {
	tests := []struct {
		ip   string
		want string
	}{
		{"52.10.20.30", "aws"},
		{"20.1.2.3", "azure"},
		{"104.16.1.1", "cloudflare"},
		{"198.51.100.1", ""},
		{"not-an-ip", ""},
	}

	for _, tt := range tests {
		got := ClassifyIP(tt.ip)
		if got != tt.want {
			t.Errorf("ClassifyIP(%q) = %q, want %q", tt.ip, got, tt.want)
		}
	}
}

func TestProvidersHaveNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range Providers {
		if p.Name == "" {
			t.Error("provider with empty name")
		}
		if seen[p.Name] {
			t.Errorf("duplicate provider name %s", p.Name)
		}
		seen[p.Name] = true
		if len(p.CNAMEPatterns) == 0 {
			t.Errorf("provider %s has no CNAME patterns", p.Name)
		}
	}
}
