package notegrab

// User agents presented to the site.
const (
	MobileUserAgent  = "Mozilla/5.0 (Linux; Android 6.0; Nexus 5 Build/MRA58N) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Mobile Safari/537.36 Edg/142.0.0.0"
	DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36 Edg/142.0.0.0"
)

// HeaderProfile is the set of request headers a fetcher presents.
// The site serves different page templates per profile.
type HeaderProfile struct {
	Name    string
	Headers map[string]string
}

// UserAgent returns the profile's User-Agent header.
func (p HeaderProfile) UserAgent() string {
	return p.Headers["User-Agent"]
}

// MobileProfile returns the headers of a mobile browser.
func MobileProfile() HeaderProfile {
	return HeaderProfile{
		Name: "mobile",
		Headers: map[string]string{
			"User-Agent":      MobileUserAgent,
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "zh-CN,zh;q=0.9",
		},
	}
}

// DesktopProfile returns the headers of a desktop browser.
// Accept-Encoding is left to the transport.
func DesktopProfile() HeaderProfile {
	return HeaderProfile{
		Name: "desktop",
		Headers: map[string]string{
			"User-Agent":                DesktopUserAgent,
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7",
			"Accept-Language":           "zh-CN,zh;q=0.9",
			"sec-ch-ua":                 `"Chromium";v="142", "Microsoft Edge";v="142", "Not_A Brand";v="99"`,
			"sec-ch-ua-mobile":          "?0",
			"sec-ch-ua-platform":        `"Windows"`,
			"upgrade-insecure-requests": "1",
		},
	}
}
