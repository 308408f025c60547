package upstream

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

var ErrNotConfigured = errors.New("provider not configured")

// ImageSearch finds images through SerpAPI's Google Images engine.
type ImageSearch struct {
	gw       *Gateway
	apiKey   string
	denylist []string
}

func NewImageSearch(baseURL, apiKey string, denylist []string, opts Options) *ImageSearch {
	opts.Name = "serpapi"
	opts.BaseURL = baseURL
	opts.Query = url.Values{"api_key": {apiKey}}

	hosts := make([]string, 0, len(denylist))
	for _, h := range denylist {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hosts = append(hosts, h)
		}
	}
	return &ImageSearch{gw: NewGateway(opts), apiKey: apiKey, denylist: hosts}
}

type imageSearchParams struct {
	Engine string `url:"engine"`
	Query  string `url:"q"`
	Safe   string `url:"safe"`
}

type imageResult struct {
	Original  string `json:"original"`
	Thumbnail string `json:"thumbnail"`
}

// FirstImage returns the first result not hosted on a denylisted domain, or
// "" when there is none.
func (s *ImageSearch) FirstImage(ctx context.Context, q string) (string, error) {
	if s.apiKey == "" {
		return "", ErrNotConfigured
	}

	var body struct {
		Images []imageResult `json:"images_results"`
	}
	params := imageSearchParams{Engine: "google_images", Query: q, Safe: "active"}
	if err := s.gw.Get(ctx, "search.json", params, &body); err != nil {
		return "", err
	}

	for _, img := range body.Images {
		link := img.Original
		if link == "" {
			link = img.Thumbnail
		}
		if link == "" || s.denied(link) {
			continue
		}
		return link, nil
	}
	return "", nil
}

func (s *ImageSearch) denied(link string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return true
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range s.denylist {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
