// Package usecases contains application business rules.
// Usecases orchestrate entities and depend on port interfaces only.
package usecases

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Code-with-pranav/esg-rag-app/internal/domain/entities"
)

// Fallbacks applied to missing news fields. The news producer writes the
// same placeholders, so records stay non-empty whichever side fills them in.
const (
	FallbackTitle       = "No Title"
	FallbackDescription = "No Description"
	FallbackPublishedAt = "2023-01-01T00:00:00Z"
	FallbackNewsSource  = "Unknown Source"
	FallbackURL         = "#"
)

// AdaptESG normalizes a raw ESG report into an IndexableRecord.
// Pure function of its input; the embedding is attached later.
func AdaptESG(report entities.ESGReport) (entities.IndexableRecord, error) {
	company := strings.TrimSpace(report.Company)
	date := strings.TrimSpace(report.Date)
	if company == "" || date == "" {
		return entities.IndexableRecord{}, fmt.Errorf("%w: esg report needs company and date", entities.ErrMalformedRecord)
	}

	emissions := strconv.Itoa(report.Emissions)
	return entities.IndexableRecord{
		Text:     company + " emissions: " + emissions + " tons on " + date,
		Metadata: company + "|" + emissions + "|" + date,
		Source:   entities.SourceESG,
	}, nil
}

// AdaptNews normalizes a raw news article into an IndexableRecord.
// Every field has a non-empty fallback; an article with neither title nor
// description carries no retrievable text and is rejected as malformed.
func AdaptNews(article entities.NewsArticle) (entities.IndexableRecord, error) {
	title := strings.TrimSpace(article.Title)
	description := strings.TrimSpace(article.Description)
	if title == "" && description == "" {
		return entities.IndexableRecord{}, fmt.Errorf("%w: news article needs a title or description", entities.ErrMalformedRecord)
	}

	if title == "" {
		title = FallbackTitle
	}
	if description == "" {
		description = FallbackDescription
	}
	publishedAt := strings.TrimSpace(article.PublishedAt)
	if publishedAt == "" {
		publishedAt = FallbackPublishedAt
	}
	source := strings.TrimSpace(article.Source)
	if source == "" {
		source = FallbackNewsSource
	}
	url := strings.TrimSpace(article.URL)
	if url == "" {
		url = FallbackURL
	}

	return entities.IndexableRecord{
		Text:     title + " " + description,
		Metadata: title + "|" + description + "|" + publishedAt + "|" + source + "|" + url,
		Source:   entities.SourceNews,
	}, nil
}
