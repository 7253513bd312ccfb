package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/config"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/logger"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/internal/utils"
	"github.com/skjdghsdjgsdj/pyportal-titano-pictureframe/models"
)

// maxManifestPages bounds the paging loop so a middleware bug that keeps
// returning page tokens cannot spin the client forever.
const maxManifestPages = 100

type httpFrameServer struct {
	client  *resty.Client
	timeout time.Duration
	logger  *logger.Logger
}

// NewHTTPFrameServer constructs an HTTP/REST implementation of [FrameServer].
// It normalises and validates the base URL from adapterCfg.EndpointURL and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// The timeout deliberately does not use the client-wide http.Client.Timeout:
// that one keeps counting while a response body is read, which would cut off
// a large bitmap streaming onto a slow medium. Instead the transport bounds
// connect and response headers, whole manifest requests get a per-call
// deadline, and download bodies are bounded only by the caller's ctx.
//
// Returns an error if adapterCfg.EndpointURL is empty or cannot be parsed as
// a valid URL.
func NewHTTPFrameServer(adapterCfg config.FrameAdapter, log *logger.Logger) (FrameServer, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.EndpointURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter endpoint url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTransport(&http.Transport{
			DialContext:           (&net.Dialer{Timeout: adapterCfg.RequestTimeout}).DialContext,
			ResponseHeaderTimeout: adapterCfg.RequestTimeout,
		})

	return &httpFrameServer{client: client, timeout: adapterCfg.RequestTimeout, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// FetchManifest implements [FrameServer]. It GETs /api/assets and follows
// next_page_token until the final page, merging the pages into one Manifest.
// Any transport failure, non-2xx status, undecodable body, or entry that is
// not a UUID→hash pair fails the whole call; no partial manifest is ever
// returned.
func (h *httpFrameServer) FetchManifest(ctx context.Context) (models.Manifest, error) {
	manifest := make(models.Manifest)

	token := ""
	for page := 0; ; page++ {
		if page == maxManifestPages {
			return nil, fmt.Errorf("%w: more than %d pages", ErrManifest, maxManifestPages)
		}

		// Manifest pages are small, so the whole request fits under one
		// deadline; streamed downloads get no such bound.
		pageCtx, cancel := context.WithTimeout(ctx, h.timeout)
		req := h.client.R().SetContext(pageCtx)
		if token != "" {
			req.SetQueryParam("page_token", token)
		}

		resp, err := req.Get("/api/assets")
		cancel()
		if err != nil {
			return nil, fmt.Errorf("manifest request: %w", err)
		}
		if err = mapHTTPError(resp); err != nil {
			return nil, fmt.Errorf("manifest request: %w", err)
		}

		var body models.ManifestPage
		if err = json.Unmarshal(resp.Body(), &body); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrManifest, err)
		}
		if body.Assets == nil {
			return nil, fmt.Errorf("%w: page carries no asset map", ErrManifest)
		}

		for id, hash := range body.Assets {
			if !utils.IsAssetID(id) || !utils.IsContentHash(hash) {
				return nil, fmt.Errorf("%w: entry %q=%q", ErrManifest, id, hash)
			}
			manifest[id] = hash
		}

		if body.NextPageToken == "" {
			h.logger.Debug().
				Int("assets", len(manifest)).
				Int("pages", page+1).
				Msg("manifest fetched")
			return manifest, nil
		}
		token = body.NextPageToken
	}
}

// DownloadAsset implements [FrameServer]. The response body is handed to the
// caller unread so the bitmap can be streamed straight to storage without
// ever being resident in memory.
func (h *httpFrameServer) DownloadAsset(ctx context.Context, id string) (io.ReadCloser, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get("/api/image/" + id)
	if err != nil {
		return nil, fmt.Errorf("image request for %s: %w", id, err)
	}

	if resp.StatusCode() != http.StatusOK {
		if body := resp.RawBody(); body != nil {
			_ = body.Close()
		}
		return nil, fmt.Errorf("image request for %s: http %d", id, resp.StatusCode())
	}

	return resp.RawBody(), nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}
