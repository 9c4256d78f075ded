package catalog

// Providers is the ordered, build-time catalog of hijack-prone services.
// Order matters: IdentifyByCNAME and IdentifyByHeaders both return the
// first match, so more specific or higher-confidence entries should sort
// ahead of broader ones.
var Providers = []Provider{
	{
		Name:              "aws_s3",
		CNAMEPatterns:     []string{".s3.amazonaws.com", ".s3-website", ".s3.dualstack.amazonaws.com"},
		ErrorMarkers:      []string{"NoSuchBucket", "The specified bucket does not exist"},
		ExpectedStatus:    map[int]bool{404: true},
		HeaderFingerprint: map[string]string{"server": "AmazonS3"},
		Risk:              RiskCritical,
		CanTakeover:       true,
		ClaimHint:         "create an S3 bucket with this exact name in the AWS S3 console",
	},
	{
		Name:              "aws_cloudfront",
		CNAMEPatterns:     []string{".cloudfront.net"},
		ErrorMarkers:      []string{"ERROR: The request could not be satisfied", "Bad request"},
		ExpectedStatus:    map[int]bool{403: true},
		HeaderFingerprint: map[string]string{"via": "CloudFront"},
		Risk:              RiskHigh,
		CanTakeover:       false,
		ClaimHint:         "CloudFront distributions are not claimable by arbitrary third parties; confirm the origin account before treating this as exploitable",
	},
	{
		Name:           "aws_elasticbeanstalk",
		CNAMEPatterns:  []string{".elasticbeanstalk.com"},
		ErrorMarkers:   []string{"404 Not Found"},
		ExpectedStatus: map[int]bool{404: true},
		Risk:           RiskHigh,
		CanTakeover:    true,
		ClaimHint:      "create an Elastic Beanstalk environment with the exact name referenced by the CNAME",
	},
	{
		Name:              "github_pages",
		CNAMEPatterns:     []string{".github.io"},
		ErrorMarkers:      []string{"There isn't a GitHub Pages site here", "404 File not found"},
		ExpectedStatus:    map[int]bool{404: true},
		HeaderFingerprint: map[string]string{"server": "GitHub.com"},
		Risk:              RiskHigh,
		CanTakeover:       true,
		ClaimHint:         "create a GitHub repository <org>.github.io matching the CNAME target and enable Pages",
	},
	{
		Name:           "gitlab_pages",
		CNAMEPatterns:  []string{".gitlab.io"},
		ErrorMarkers:   []string{"The page you're looking for could not be found"},
		ExpectedStatus: map[int]bool{404: true},
		Risk:           RiskHigh,
		CanTakeover:    true,
		ClaimHint:      "create a GitLab project <group>.gitlab.io matching the CNAME target",
	},
	{
		Name:              "heroku",
		CNAMEPatterns:     []string{".herokuapp.com", ".herokudns.com"},
		ErrorMarkers:      []string{"No such app", "herokucdn.com/error-pages/no-such-app.html"},
		ExpectedStatus:    map[int]bool{404: true},
		HeaderFingerprint: map[string]string{"server": "cowboy"},
		Risk:              RiskHigh,
		CanTakeover:       true,
		ClaimHint:         "create a Heroku app with the exact name referenced by the CNAME",
	},
	{
		Name:              "netlify",
		CNAMEPatterns:     []string{".netlify.app", ".netlify.com"},
		ErrorMarkers:      []string{"Not Found - Request ID"},
		ExpectedStatus:    map[int]bool{404: true},
		HeaderFingerprint: map[string]string{"server": "Netlify"},
		Risk:              RiskMedium,
		CanTakeover:       true,
		ClaimHint:         "add the dangling hostname as a custom domain on a Netlify site you control",
	},
	{
		Name:              "vercel",
		CNAMEPatterns:     []string{".vercel.app"},
		ErrorMarkers:      []string{"DEPLOYMENT_NOT_FOUND", "The deployment could not be found"},
		ClaimedMarkers:    []string{"Powered by Vercel"},
		ExpectedStatus:    map[int]bool{404: true},
		HeaderFingerprint: map[string]string{"x-vercel-error": ""},
		Risk:              RiskMedium,
		CanTakeover:       true,
		ClaimHint:         "assign the hostname as a custom domain on a Vercel project you control",
	},
	{
		Name:           "surge_sh",
		CNAMEPatterns:  []string{".surge.sh"},
		ErrorMarkers:   []string{"project not found"},
		ExpectedStatus: map[int]bool{404: true},
		Risk:           RiskMedium,
		CanTakeover:    true,
		ClaimHint:      "publish a new surge.sh project under the dangling subdomain",
	},
	{
		Name:           "ghost_io",
		CNAMEPatterns:  []string{".ghost.io"},
		ErrorMarkers:   []string{"The thing you were looking for is no longer here"},
		ExpectedStatus: map[int]bool{404: true},
		Risk:           RiskMedium,
		CanTakeover:    true,
		ClaimHint:      "create a Ghost(Pro) site and add the dangling hostname as its custom domain",
	},
	{
		Name:           "shopify",
		CNAMEPatterns:  []string{".myshopify.com"},
		ErrorMarkers:   []string{"Sorry, this shop is currently unavailable"},
		ExpectedStatus: map[int]bool{404: true},
		Risk:           RiskMedium,
		CanTakeover:    false,
		ClaimHint:      "Shopify requires DNS-based domain verification before a shop claim succeeds; confirm manually before treating as exploitable",
	},
	{
		Name:           "pantheon",
		CNAMEPatterns:  []string{".pantheonsite.io"},
		ErrorMarkers:   []string{"The gods are wise, but do not know of the site which you seek"},
		ExpectedStatus: map[int]bool{404: true},
		Risk:           RiskMedium,
		CanTakeover:    true,
		ClaimHint:      "create a Pantheon site and add the dangling hostname as an environment domain",
	},
	{
		Name:           "azure_webapps",
		CNAMEPatterns:  []string{".azurewebsites.net"},
		ErrorMarkers:   []string{"404 Web Site not found"},
		ExpectedStatus: map[int]bool{404: true},
		Risk:           RiskHigh,
		CanTakeover:    true,
		ClaimHint:      "create an Azure App Service with the exact name referenced by the CNAME",
	},
	{
		Name:          "azure_trafficmanager",
		CNAMEPatterns: []string{".trafficmanager.net"},
		Risk:          RiskHigh,
		CanTakeover:   true,
		ClaimHint:     "create an Azure Traffic Manager profile with the exact name referenced by the CNAME",
	},
	{
		Name:           "azure_blob",
		CNAMEPatterns:  []string{".blob.core.windows.net"},
		ErrorMarkers:   []string{"BlobNotFound", "The specified container does not exist"},
		ExpectedStatus: map[int]bool{404: true},
		Risk:           RiskHigh,
		CanTakeover:    true,
		ClaimHint:      "create a storage account and container matching the exact name referenced by the CNAME",
	},
	{
		Name:          "azure_cdn",
		CNAMEPatterns: []string{".azureedge.net"},
		Risk:          RiskMedium,
		CanTakeover:   true,
		ClaimHint:     "create an Azure CDN endpoint with the exact name referenced by the CNAME",
	},
	{
		Name:           "fastly",
		CNAMEPatterns:  []string{".fastly.net", ".fastlylb.net"},
		ErrorMarkers:   []string{"Fastly error: unknown domain"},
		ExpectedStatus: map[int]bool{404: true},
		Risk:           RiskHigh,
		CanTakeover:    false,
		ClaimHint:      "Fastly requires the exact domain to be configured on a service you control; verify ownership before assuming exploitability",
	},
	{
		Name:           "cloudflare_workers",
		CNAMEPatterns:  []string{".workers.dev"},
		ErrorMarkers:   []string{"worker not found"},
		ExpectedStatus: map[int]bool{404: true},
		Risk:           RiskLow,
		CanTakeover:    false,
		ClaimHint:      "workers.dev subdomains are account-scoped and cannot be reclaimed without the original Cloudflare account; treat as low severity",
	},
	{
		Name:           "zendesk",
		CNAMEPatterns:  []string{".zendesk.com"},
		ErrorMarkers:   []string{"Help Center Closed"},
		ExpectedStatus: map[int]bool{404: true},
		Risk:           RiskMedium,
		CanTakeover:    true,
		ClaimHint:      "create a Zendesk account and add the dangling hostname as a host mapping",
	},
	{
		Name:          "uservoice",
		CNAMEPatterns: []string{".uservoice.com"},
		Risk:          RiskLow,
		CanTakeover:   true,
		ClaimHint:     "create a UserVoice account and map the dangling hostname to it",
	},
}

// CloudRanges flags A records that resolve into a transient cloud IP pool,
// a signal used independently of CNAME-based provider identification. The
// blocks below are illustrative samples of each provider's published
// ranges, not an exhaustive mirror of them.
var CloudRanges = []CloudRange{
	{
		Name:  "aws",
		CIDRs: []string{"3.0.0.0/8", "52.0.0.0/8", "54.0.0.0/8", "13.32.0.0/15"},
	},
	{
		Name:  "azure",
		CIDRs: []string{"20.0.0.0/8", "40.64.0.0/10", "52.224.0.0/11"},
	},
	{
		Name:  "gcp",
		CIDRs: []string{"34.0.0.0/9", "35.184.0.0/13", "104.154.0.0/15"},
	},
	{
		Name:  "cloudflare",
		CIDRs: []string{"104.16.0.0/12", "172.64.0.0/13"},
	},
}
