package siteaudit

import "context"

// GeoLocation is a coarse server location from an IP-geolocation provider.
type GeoLocation struct {
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	Region      string `json:"region"`
	ISP         string `json:"isp"`
}

// GeoRequest identifies one geo lookup.
type GeoRequest struct {
	Host      string
	SkipCache bool
}

// GeoService resolves a hostname to a coarse geographic location.
type GeoService interface {
	// Lookup returns the host's location, or (nil, nil) when the lookup
	// fails for any reason. Geo data is advisory and never fails a run.
	Lookup(ctx context.Context, req GeoRequest) (*GeoLocation, error)
}
