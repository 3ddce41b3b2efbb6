package api

import (
	"context"
	"fmt"

	"github.com/gigcompliance/anj-resolver/pkg/engine"
	"github.com/gigcompliance/anj-resolver/pkg/kit"
	"github.com/gigcompliance/anj-resolver/pkg/locale"
	"github.com/gigcompliance/anj-resolver/pkg/sheet"
)

// Shared request/response types used by both HTTP and MCP transports.

type resolveReq struct {
	Sport     string
	Query     string
	Threshold int
}

type resolveResponse struct {
	Sport   string         `json:"sport"`
	Query   string         `json:"query"`
	Outcome string         `json:"outcome"` // not_found, resolved, ambiguous
	Matches []engine.Match `json:"matches"`
}

func outcomeFor(matches []engine.Match) string {
	switch len(matches) {
	case 0:
		return "not_found"
	case 1:
		return "resolved"
	default:
		return "ambiguous"
	}
}

type batchReq struct {
	Sport     string
	Queries   []string
	Threshold int
}

type batchResponse struct {
	Sport   string            `json:"sport"`
	Results []resolveResponse `json:"results"`
}

type verdictReq struct {
	Sport      string
	Name       string
	Category   string
	Discipline string
	Lang       string
}

// verdictResponse carries the canonical verdict plus its localized
// rendering, so clients never re-implement the translation tables.
type verdictResponse struct {
	engine.Verdict
	Lang                 string `json:"lang"`
	RestrictionLocalized string `json:"restriction_localized"`
	PhasesLocalized      string `json:"phases_localized"`
	CountryEmoji         string `json:"country_emoji"`
}

type sheetsResponse struct {
	Sheets []sheet.Info `json:"sheets"`
}

// Endpoints returns the core kit.Endpoints backed by the registry.

func resolveEndpoint(reg *sheet.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*resolveReq)
		if req.Query == "" {
			return nil, fmt.Errorf("empty query")
		}
		matches, err := reg.Resolve(req.Sport, req.Query, req.Threshold)
		if err != nil {
			return nil, err
		}
		if matches == nil {
			matches = []engine.Match{}
		}
		return resolveResponse{
			Sport:   req.Sport,
			Query:   req.Query,
			Outcome: outcomeFor(matches),
			Matches: matches,
		}, nil
	}
}

func resolveBatchEndpoint(reg *sheet.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*batchReq)
		if len(req.Queries) == 0 {
			return nil, fmt.Errorf("queries array is empty")
		}
		if len(req.Queries) > 100 {
			return nil, fmt.Errorf("too many queries (max 100, got %d)", len(req.Queries))
		}
		results := make([]resolveResponse, len(req.Queries))
		for i, q := range req.Queries {
			matches, err := reg.Resolve(req.Sport, q, req.Threshold)
			if err != nil {
				return nil, err
			}
			if matches == nil {
				matches = []engine.Match{}
			}
			results[i] = resolveResponse{
				Sport:   req.Sport,
				Query:   q,
				Outcome: outcomeFor(matches),
				Matches: matches,
			}
		}
		return batchResponse{Sport: req.Sport, Results: results}, nil
	}
}

func verdictEndpoint(reg *sheet.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*verdictReq)
		v, err := reg.Verdict(req.Sport, req.Name, req.Category, req.Discipline)
		if err != nil {
			return nil, err
		}
		return localizeVerdict(v, req.Lang), nil
	}
}

func listSheetsEndpoint(reg *sheet.Registry) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return sheetsResponse{Sheets: reg.ListSheets()}, nil
	}
}

func localizeVerdict(v engine.Verdict, lang string) verdictResponse {
	if !locale.Supported(lang) {
		lang = locale.Langs[0]
	}
	return verdictResponse{
		Verdict:              v,
		Lang:                 lang,
		RestrictionLocalized: locale.Localize(v.Restriction, lang, locale.KindRestrictions),
		PhasesLocalized:      locale.Localize(v.Phases, lang, locale.KindPhases),
		CountryEmoji:         locale.Emoji(v.Country),
	}
}
