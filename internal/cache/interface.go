package cache

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// ListKey concatenates every listing parameter so that each distinct query has its own entry.
// Free-form components are escaped, so a ':' inside them cannot shift the fields.
func ListKey(prefix, scope string, p models.ListParams) string {
	return strings.Join([]string{
		prefix,
		"list",
		url.QueryEscape(scope),
		url.QueryEscape(strings.ToLower(p.Search)),
		strconv.Itoa(p.Page),
		strconv.Itoa(p.PageSize),
		url.QueryEscape(p.SortField),
		url.QueryEscape(string(p.SortOrder)),
	}, ":")
}

const (
	ProductKeyPrefix  = "product"
	CategoryKeyPrefix = "category"
	OrderKeyPrefix    = "order"
)
