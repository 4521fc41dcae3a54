package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quantmind-br/ado2tf/internal/domain"
	"github.com/quantmind-br/ado2tf/internal/fetcher"
	"github.com/quantmind-br/ado2tf/internal/utils"
	"github.com/tidwall/gjson"
)

// ContinuationParam is the query parameter carrying the continuation token
const ContinuationParam = "continuationToken"

// DefaultAPIVersion is sent in the Accept header when none is configured
const DefaultAPIVersion = "7.1-preview.1"

// PageInfo describes one fetched page
type PageInfo struct {
	Number    int
	URL       string
	Items     int
	Total     int
	Rule      string
	FromCache bool
}

// PaginatorOptions configures a Paginator
type PaginatorOptions struct {
	// Token is the personal access token; required
	Token string
	// APIVersion is pinned in the Accept header
	APIVersion string
	// OnPage is called after each page is normalized
	OnPage func(PageInfo)
	Logger *utils.Logger
}

// Paginator walks a continuation-token paginated listing
type Paginator struct {
	getter  domain.PageGetter
	headers map[string]string
	onPage  func(PageInfo)
	logger  *utils.Logger
}

// NewPaginator creates a Paginator issuing requests through getter
func NewPaginator(getter domain.PageGetter, opts PaginatorOptions) (*Paginator, error) {
	if opts.Token == "" {
		return nil, domain.NewConfigurationError("auth.token", domain.ErrMissingToken)
	}
	if opts.APIVersion == "" {
		opts.APIVersion = DefaultAPIVersion
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.Nop()
	}

	return &Paginator{
		getter:  getter,
		headers: fetcher.APIHeaders(opts.Token, opts.APIVersion),
		onPage:  opts.OnPage,
		logger:  logger.WithComponent("extractor"),
	}, nil
}

// FetchAll requests baseURL and every continuation page, returning all items in arrival order.
// Any failure discards the partial result.
func (p *Paginator) FetchAll(ctx context.Context, baseURL string) ([]json.RawMessage, error) {
	all := make([]json.RawMessage, 0)
	requestURL := baseURL

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, domain.NewTransportError(requestURL, 0, err)
		}

		resp, err := p.getter.GetWithHeaders(ctx, requestURL, p.headers)
		if err != nil {
			var transportErr *domain.TransportError
			if !errors.As(err, &transportErr) {
				err = domain.NewTransportError(requestURL, 0, err)
			}
			return nil, err
		}

		body := bytes.TrimSpace(resp.Body)
		if !gjson.ValidBytes(body) {
			return nil, domain.NewDecodeError(requestURL, nil)
		}

		items, rule := NormalizeWithRule(gjson.ParseBytes(body))
		for _, item := range items {
			all = append(all, json.RawMessage(item.Raw))
		}

		p.logger.Debug().
			Int("page", page).
			Str("url", utils.RedactURL(requestURL)).
			Int("items", len(items)).
			Str("rule", rule).
			Bool("cached", resp.FromCache).
			Msg("Fetched page")

		if p.onPage != nil {
			p.onPage(PageInfo{
				Number:    page,
				URL:       requestURL,
				Items:     len(items),
				Total:     len(all),
				Rule:      rule,
				FromCache: resp.FromCache,
			})
		}

		token := ContinuationToken(resp.Headers)
		if token == "" {
			return all, nil
		}
		requestURL = NextPageURL(baseURL, token)
	}
}

// ContinuationToken reads the token from the primary header, then the alternate spelling
func ContinuationToken(headers http.Header) string {
	if token := headers.Get(fetcher.HeaderContinuationToken); token != "" {
		return token
	}
	return headers.Get(fetcher.HeaderContinuationTokenAlt)
}

// NextPageURL appends the continuation token to the original listing URL
func NextPageURL(baseURL, token string) string {
	return utils.AppendQueryParam(baseURL, ContinuationParam, token)
}
