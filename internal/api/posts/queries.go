package posts

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"blog-api/internal/domain/blog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimestampLayout is the accepted form of after/before: a naive UTC time with
// one to six fractional digits.
const TimestampLayout = "2006-01-02T15:04:05.999999"

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{1,6}$`)

// StrippedFilter holds the parsed query of GET /stripped-post.
type StrippedFilter struct {
	After       *time.Time
	Before      *time.Time
	CategoryIDs []string
	Search      string
	Count       int
	Asc         bool
}

// ParseStrippedFilter reads after, before, category_id (repeatable), search,
// count and asc. Malformed values are reported as validation errors.
func ParseStrippedFilter(q url.Values) (StrippedFilter, error) {
	var f StrippedFilter
	var err error

	if f.After, err = parseTimestamp("after", q.Get("after")); err != nil {
		return f, err
	}
	if f.Before, err = parseTimestamp("before", q.Get("before")); err != nil {
		return f, err
	}
	if f.CategoryIDs, err = parseCategoryIDs(q["category_id"]); err != nil {
		return f, err
	}
	if f.Count, err = ParseCount(q.Get("count")); err != nil {
		return f, err
	}
	f.Search = q.Get("search")
	f.Asc = parseAsc(q.Get("asc"))
	return f, nil
}

func parseTimestamp(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if !timestampPattern.MatchString(raw) {
		return nil, blog.Invalid(field, "expected format YYYY-MM-DDTHH:MM:SS.ffffff")
	}
	t, err := time.ParseInLocation(TimestampLayout, raw, time.UTC)
	if err != nil {
		return nil, blog.Invalid(field, "invalid timestamp %q", raw)
	}
	return &t, nil
}

func parseCategoryIDs(raw []string) ([]string, error) {
	var ids []string
	seen := make(map[string]bool, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, blog.Invalid("category_id", "%q is not a valid UUID", v)
		}
		if !seen[id.String()] {
			seen[id.String()] = true
			ids = append(ids, id.String())
		}
	}
	return ids, nil
}

// ParseCount reads the count parameter. Zero and negative values mean no limit.
func ParseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, blog.Invalid("count", "a valid integer is required")
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

// parseAsc is true for any non-empty value, "false" and "0" included.
func parseAsc(raw string) bool {
	return raw != ""
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Apply narrows q (a query on posts) in a fixed order: ordering, date bounds,
// category union, title search, then the limit.
func (f StrippedFilter) Apply(q *gorm.DB) *gorm.DB {
	if f.Asc {
		q = q.Order("posts.created_at ASC").Order("posts.id ASC")
	} else {
		q = q.Order("posts.created_at DESC").Order("posts.id DESC")
	}

	if f.After != nil {
		q = q.Where("posts.created_at > ?", *f.After)
	}
	if f.Before != nil {
		q = q.Where("posts.created_at < ?", *f.Before)
	}

	if len(f.CategoryIDs) > 0 {
		linked := q.Session(&gorm.Session{NewDB: true}).
			Model(&blog.PostCategoryLink{}).
			Select("post_id").
			Where("post_category_id IN ?", f.CategoryIDs)
		q = q.Where("posts.id IN (?)", linked)
	}

	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(f.Search)) + "%"
		q = q.Where(`LOWER(posts.title) LIKE ? ESCAPE '\'`, pattern)
	}

	return withLimit(q, f.Count)
}

func withLimit(q *gorm.DB, count int) *gorm.DB {
	if count > 0 {
		return q.Limit(count)
	}
	return q
}

// postsQuery is the base query for every post listing, with categories loaded
// in name order.
func postsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&blog.Post{}).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("post_categories.category_name ASC")
		})
}
