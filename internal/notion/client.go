package notion

import (
	"context"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"

	"github.com/kumarnilima1512-bit/redcat-chatbot/internal/core"
)

// FAQ is a knowledge-base entry as exposed by the search-faq glue endpoint.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

// Service is one entry of the services database.
type Service struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ShortDesc   string `json:"shortDesc"`
	Pricing     string `json:"pricing"`
	Timeline    string `json:"timeline"`
	Category    string `json:"category"`
}

// CompanyInfo is a single company-information record.
type CompanyInfo struct {
	Category        string `json:"category"`
	Information     string `json:"information"`
	ChatbotResponse string `json:"chatbotResponse"`
}

// Client reads the FAQ, services and company-info databases. The store's
// loosely-typed page properties are mapped into strict structs here; a
// missing or differently-typed property becomes an empty string, never an
// error.
type Client struct {
	api        *notionapi.Client
	faqDB      notionapi.DatabaseID
	servicesDB notionapi.DatabaseID
	companyDB  notionapi.DatabaseID
	logger     *zap.Logger
}

func NewClient(apiKey, faqDB, servicesDB, companyDB string, logger *zap.Logger, opts ...notionapi.ClientOption) *Client {
	return &Client{
		api:        notionapi.NewClient(notionapi.Token(apiKey), opts...),
		faqDB:      notionapi.DatabaseID(faqDB),
		servicesDB: notionapi.DatabaseID(servicesDB),
		companyDB:  notionapi.DatabaseID(companyDB),
		logger:     logger,
	}
}

// ActiveFAQs returns every FAQ entry with Status = Active as a core document.
// Implements core.FAQProvider.
func (c *Client) ActiveFAQs(ctx context.Context) ([]core.FAQDocument, error) {
	pages, err := c.queryAll(ctx, c.faqDB, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Status",
			Select:   &notionapi.SelectFilterCondition{Equals: "Active"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query FAQ database: %w", err)
	}

	docs := make([]core.FAQDocument, 0, len(pages))
	for _, page := range pages {
		docs = append(docs, core.FAQDocument{
			Question: titleText(page.Properties["Question"]),
			Answer:   richTextValue(page.Properties["Answer"]),
			Category: selectName(page.Properties["Category"]),
		})
	}
	c.logger.Debug("fetched FAQ corpus", zap.Int("entries", len(docs)))
	return docs, nil
}

// SearchFAQs performs the keyword search used by the search-faq endpoint: an
// entry matches when its question or alternative phrasings contain the query,
// or the query contains one of its keywords.
func (c *Client) SearchFAQs(ctx context.Context, query string) ([]FAQ, error) {
	pages, err := c.queryAll(ctx, c.faqDB, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Status",
			Select:   &notionapi.SelectFilterCondition{Equals: "Active"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query FAQ database: %w", err)
	}

	term := strings.ToLower(strings.TrimSpace(query))
	faqs := make([]FAQ, 0)
	for _, page := range pages {
		question := titleText(page.Properties["Question"])
		altPhrases := richTextValue(page.Properties["Alternative Phrasings"])

		matched := strings.Contains(strings.ToLower(question), term) ||
			strings.Contains(strings.ToLower(altPhrases), term)
		if !matched {
			for _, keyword := range multiSelectNames(page.Properties["Keywords"]) {
				if keyword != "" && strings.Contains(term, strings.ToLower(keyword)) {
					matched = true
					break
				}
			}
		}
		if !matched {
			continue
		}

		faqs = append(faqs, FAQ{
			Question: question,
			Answer:   richTextValue(page.Properties["Answer"]),
			Category: selectName(page.Properties["Category"]),
			Priority: selectName(page.Properties["Priority"]),
		})
	}
	return faqs, nil
}

// ActiveServices returns every service with the Active checkbox set.
func (c *Client) ActiveServices(ctx context.Context) ([]Service, error) {
	pages, err := c.queryAll(ctx, c.servicesDB, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Active",
			Checkbox: &notionapi.CheckboxFilterCondition{Equals: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query services database: %w", err)
	}

	services := make([]Service, 0, len(pages))
	for _, page := range pages {
		services = append(services, Service{
			Name:        titleText(page.Properties["Service Name"]),
			Description: richTextValue(page.Properties["Detailed Description"]),
			ShortDesc:   richTextValue(page.Properties["Short Description"]),
			Pricing:     richTextValue(page.Properties["Base Price Range"]),
			Timeline:    richTextValue(page.Properties["Typical Timeline"]),
			Category:    selectName(page.Properties["Category"]),
		})
	}
	return services, nil
}

// GetCompanyInfo returns the first company-info record of the given category
// type, or nil when none exists.
func (c *Client) GetCompanyInfo(ctx context.Context, infoType string) (*CompanyInfo, error) {
	pages, err := c.queryAll(ctx, c.companyDB, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Category Type",
			Select:   &notionapi.SelectFilterCondition{Equals: infoType},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query company info database: %w", err)
	}
	if len(pages) == 0 {
		return nil, nil
	}

	page := pages[0]
	return &CompanyInfo{
		Category:        titleText(page.Properties["Info Category"]),
		Information:     richTextValue(page.Properties["Information"]),
		ChatbotResponse: richTextValue(page.Properties["Chatbot Response"]),
	}, nil
}

// queryAll drains a database query, following pagination cursors. The FAQ
// corpus is small (<100 entries) so this stays cheap.
func (c *Client) queryAll(ctx context.Context, db notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) ([]notionapi.Page, error) {
	var pages []notionapi.Page
	for {
		resp, err := c.api.Database.Query(ctx, db, req)
		if err != nil {
			return nil, err
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore {
			return pages, nil
		}
		req.StartCursor = resp.NextCursor
	}
}

func titleText(prop notionapi.Property) string {
	tp, ok := prop.(*notionapi.TitleProperty)
	if !ok || len(tp.Title) == 0 {
		return ""
	}
	return tp.Title[0].PlainText
}

func richTextValue(prop notionapi.Property) string {
	rp, ok := prop.(*notionapi.RichTextProperty)
	if !ok || len(rp.RichText) == 0 {
		return ""
	}
	return rp.RichText[0].PlainText
}

func selectName(prop notionapi.Property) string {
	sp, ok := prop.(*notionapi.SelectProperty)
	if !ok {
		return ""
	}
	return sp.Select.Name
}

func multiSelectNames(prop notionapi.Property) []string {
	mp, ok := prop.(*notionapi.MultiSelectProperty)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(mp.MultiSelect))
	for _, option := range mp.MultiSelect {
		names = append(names, option.Name)
	}
	return names
}
